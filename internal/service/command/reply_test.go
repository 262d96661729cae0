package command

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReply(t *testing.T) {
	tests := []struct {
		name  string
		reply *Reply
		want  string
	}{
		{
			name:  "title only",
			reply: NewReply("Modelos"),
			want:  "⚙️ **Modelos**\n",
		},
		{
			name:  "fields share a block",
			reply: NewReply("Modelo actual").Field("Proveedor", "openai").Field("Total", 3),
			want:  "⚙️ **Modelo actual**\n\n**Proveedor**  ›  `openai`\n**Total**  ›  `3`\n",
		},
		{
			name:  "fields then items",
			reply: NewReply("Herramientas").Field("Disponibles", 2).Items("uno", "dos"),
			want:  "⚙️ **Herramientas**\n\n**Disponibles**  ›  `2`\n\n› uno\n› dos\n",
		},
		{
			name:  "empty items are skipped",
			reply: NewReply("Modelos").Items().Hint("revisa la clave"),
			want:  "⚙️ **Modelos**\n\n**Consejo**: revisa la clave\n",
		},
		{
			name:  "usage with examples",
			reply: NewReply("Modelo").Usage("/modelo [nombre]", "/modelo a", "/modelo b"),
			want:  "⚙️ **Modelo**\n\n**Uso**: `/modelo [nombre]`\n\n**Ejemplos**:\n`/modelo a`\n`/modelo b`\n",
		},
		{
			name:  "usage without examples",
			reply: NewReply("Modelo").Usage("/modelo"),
			want:  "⚙️ **Modelo**\n\n**Uso**: `/modelo`\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.reply.String())
		})
	}
}

func TestConfirmAndFailure(t *testing.T) {
	assert.Equal(t, "✅ **Modelo cambiado**\n", Confirm("Modelo cambiado"))
	assert.Equal(t, "❌ **Error**: modelo desconocido\n", Failure(errors.New("modelo desconocido")))
}
