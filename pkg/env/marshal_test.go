package env

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleConfig struct {
	Provider    string        `env:"LLM_PROVIDER"`
	Token       string        `env:"HF_TOKEN,required"`
	MaxTokens   int           `env:"LLM_MAX_TOKENS"`
	Temperature float64       `env:"LLM_TEMPERATURE"`
	Timeout     time.Duration `env:"LLM_TIMEOUT"`
	Enabled     bool          `env:"CALENDAR_ENABLED"`
	Prompt      string        `env:"PROMPT"`
	Empty       string        `env:"EMPTY"`
	NoTag       string
	hidden      string `env:"HIDDEN"`
}

func TestMarshalEnv(t *testing.T) {
	cfg := &sampleConfig{
		Provider:    "huggingface",
		Token:       "hf_abc",
		MaxTokens:   1000,
		Temperature: 0.7,
		Timeout:     90 * time.Second,
		Enabled:     true,
		Prompt:      "hola mundo #1",
		NoTag:       "ignored",
		hidden:      "ignored",
	}

	out, err := MarshalEnv(cfg)
	require.NoError(t, err)

	assert.Equal(t, "LLM_PROVIDER=huggingface\n"+
		"HF_TOKEN=hf_abc\n"+
		"LLM_MAX_TOKENS=1000\n"+
		"LLM_TEMPERATURE=0.7\n"+
		"LLM_TIMEOUT=1m30s\n"+
		"CALENDAR_ENABLED=true\n"+
		"PROMPT=\"hola mundo #1\"\n", out)

	// The output must be readable by the loader used at startup.
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(out), 0o600))
	values, err := godotenv.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "hola mundo #1", values["PROMPT"])
	assert.Equal(t, "1m30s", values["LLM_TIMEOUT"])
}

func TestMarshalEnv_MultipleAndInvalid(t *testing.T) {
	out, err := MarshalEnv(&sampleConfig{Provider: "openai"}, &sampleConfig{Token: "x"})
	require.NoError(t, err)
	assert.Equal(t, "LLM_PROVIDER=openai\nHF_TOKEN=x\n", out)

	_, err = MarshalEnv(sampleConfig{})
	assert.Error(t, err)

	out, err = MarshalEnv(&sampleConfig{})
	require.NoError(t, err)
	assert.Empty(t, out)
}
