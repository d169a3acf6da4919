package llm

import "strings"

// ChatML control markers used by the small instruction-tuned models
// this service hosts locally.
const (
	TurnStart = "<|im_start|>"
	TurnEnd   = "<|im_end|>"
)

// StopWords are the sequences that end an assistant turn. Passed as
// Params.Stop on every local generation.
var StopWords = []string{TurnEnd}

// RenderChat renders a chat exchange through the ChatML template and
// appends the assistant turn opener, so generation continues as the
// assistant's reply.
func RenderChat(msgs []Message) string {
	var b strings.Builder
	for _, m := range msgs {
		b.WriteString(TurnStart)
		b.WriteString(m.Role)
		b.WriteByte('\n')
		b.WriteString(m.Content)
		b.WriteString(TurnEnd)
		b.WriteByte('\n')
	}
	b.WriteString(TurnStart)
	b.WriteString(RoleAssistant)
	b.WriteByte('\n')
	return b.String()
}

// ExtractCompletion reduces a raw model emission to the newly
// generated reply: any echo of the rendered prompt is cut, the text is
// truncated at the first turn end, and leftover control markers are
// removed. The prompt itself is never part of the result.
func ExtractCompletion(raw, prompt string) string {
	out := strings.TrimPrefix(raw, prompt)
	if i := strings.Index(out, TurnEnd); i >= 0 {
		out = out[:i]
	}
	out = strings.ReplaceAll(out, TurnStart, "")
	out = strings.ReplaceAll(out, TurnEnd, "")
	out = strings.TrimPrefix(strings.TrimLeft(out, " \n"), RoleAssistant+"\n")
	return strings.TrimSpace(out)
}
