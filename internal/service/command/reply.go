package command

import (
	"fmt"
	"strings"
)

// Reply accumulates the markdown answer of a slash command. Blocks are
// separated by a blank line.
type Reply struct {
	blocks []string
	fields []string
}

func NewReply(title string) *Reply {
	return &Reply{blocks: []string{fmt.Sprintf("⚙️ **%s**", title)}}
}

// Field adds a label and value line. Consecutive fields share a block.
func (r *Reply) Field(label string, value any) *Reply {
	r.fields = append(r.fields, fmt.Sprintf("**%s**  ›  `%v`", label, value))
	return r
}

func (r *Reply) Items(items ...string) *Reply {
	if len(items) == 0 {
		return r
	}
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "› " + item
	}
	return r.block(lines...)
}

// Usage shows the command syntax followed by examples, if any.
func (r *Reply) Usage(syntax string, examples ...string) *Reply {
	r.block(fmt.Sprintf("**Uso**: `%s`", syntax))
	return r.examples("Ejemplos", examples...)
}

func (r *Reply) examples(heading string, examples ...string) *Reply {
	if len(examples) == 0 {
		return r
	}
	lines := []string{"**" + heading + "**:"}
	for _, ex := range examples {
		lines = append(lines, "`"+ex+"`")
	}
	return r.block(lines...)
}

func (r *Reply) Hint(text string) *Reply {
	return r.block("**Consejo**: " + text)
}

func (r *Reply) String() string {
	r.flush()
	return strings.Join(r.blocks, "\n\n") + "\n"
}

func (r *Reply) block(lines ...string) *Reply {
	r.flush()
	r.blocks = append(r.blocks, strings.Join(lines, "\n"))
	return r
}

func (r *Reply) flush() {
	if len(r.fields) > 0 {
		r.blocks = append(r.blocks, strings.Join(r.fields, "\n"))
		r.fields = nil
	}
}

// Confirm renders a one-line success message.
func Confirm(message string) string {
	return "✅ **" + message + "**\n"
}

// Failure renders a command error for the terminal.
func Failure(err error) string {
	return "❌ **Error**: " + err.Error() + "\n"
}
