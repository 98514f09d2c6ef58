package ai

import (
	"strings"

	"github.com/eaglechat/eaglechat/internal/model/persona"
)

// BuildSystemInstruction renders the fixed instruction placed before every
// user message.
func BuildSystemInstruction(p persona.Persona) string {
	var builder strings.Builder
	builder.WriteString("You are ")
	builder.WriteString(p.Name)
	builder.WriteString(", a ")
	builder.WriteString(p.Title)
	builder.WriteString(".")
	if p.Mission != "" {
		builder.WriteString(" ")
		builder.WriteString(p.Mission)
	}
	for _, directive := range p.Directives {
		builder.WriteString("\n- ")
		builder.WriteString(directive)
	}
	if p.Identity != "" {
		builder.WriteString("\n- ")
		builder.WriteString(p.Identity)
	}
	return builder.String()
}

// ComposePrompt joins the system instruction and the single user message.
// No earlier turns are included.
func ComposePrompt(systemInstruction, message string) string {
	return systemInstruction + "\nUser: " + message
}
