package review

import (
	"fmt"
	"strings"

	"pm-studio-be/pkg/store"
)

// PromptBuilder assembles the generation prompt for one reviewer persona.
type PromptBuilder struct {
	persona  store.ReviewerPersona
	document string
}

func NewPromptBuilder(persona store.ReviewerPersona, document string) *PromptBuilder {
	return &PromptBuilder{persona: persona, document: document}
}

// SystemPrompt frames the persona for the chat backend.
func (b *PromptBuilder) SystemPrompt() string {
	return fmt.Sprintf(
		"You are %s, a %s reviewing a colleague's planning document. Stay in character and judge the document from your %s perspective.",
		b.persona.Name, b.persona.Role, b.persona.Role,
	)
}

// Build creates the review prompt. The response contract is strict JSON so
// the extractor can recover structured feedback.
func (b *PromptBuilder) Build() string {
	var prompt strings.Builder

	prompt.WriteString("<document>\n")
	prompt.WriteString(b.document)
	prompt.WriteString("\n</document>\n\n")

	prompt.WriteString("<task_instructions>\n")
	prompt.WriteString("Review the document above and leave inline feedback.\n\n")
	prompt.WriteString("RESPONSE FORMAT (MUST FOLLOW):\n")
	prompt.WriteString("1. Respond with a single JSON object, nothing else.\n")
	prompt.WriteString("2. Shape: {\"comments\": [{\"text_excerpt\": \"...\", \"comment\": \"...\"}]}\n")
	prompt.WriteString("3. text_excerpt must be copied VERBATIM from the document so the comment can be anchored.\n")
	prompt.WriteString("4. Keep excerpts short (under 15 words) and comments to 1-2 sentences.\n")
	prompt.WriteString("5. Give 2 to 4 comments reflecting your role's concerns.\n")
	prompt.WriteString("</task_instructions>")

	return prompt.String()
}
