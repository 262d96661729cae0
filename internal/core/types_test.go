package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArguments_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Arguments
	}{
		{name: "string form", raw: `{"name":"f","arguments":"{\"a\":1}"}`, want: `{"a":1}`},
		{name: "object form", raw: `{"name":"f","arguments":{"a":1}}`, want: `{"a":1}`},
		{name: "null", raw: `{"name":"f","arguments":null}`, want: ""},
		{name: "missing", raw: `{"name":"f"}`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fc FunctionCall
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &fc))
			assert.Equal(t, tt.want, fc.Arguments)
		})
	}
}

func TestArguments_MarshalAsString(t *testing.T) {
	out, err := json.Marshal(FunctionCall{Name: "f", Arguments: `{"a":1}`})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"f","arguments":"{\"a\":1}"}`, string(out))
}
