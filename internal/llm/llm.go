// Package llm is the boundary to the locally hosted model: a chat
// template renderer, a tokenizer and a bounded-length generator. The
// real runtime binds llama.cpp and is only compiled with the 'llama'
// build tag; default builds get a fail-fast stub.
package llm

import "context"

// Chat roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a chat exchange.
type Message struct {
	Role    string
	Content string
}

// Params carries the generation settings for a single call.
type Params struct {
	// Sampling temperature. Ignored when Sample is false.
	Temperature float64
	// Nucleus sampling probability mass.
	TopP float64
	// Maximum number of new tokens to generate.
	MaxTokens int
	// Whether to sample; false means greedy decoding.
	Sample bool
	// Sequences that terminate generation when emitted.
	Stop []string
}

// Model is a loaded local model. Implementations own the underlying
// weights; Close releases them. Methods other than Close may be called
// concurrently only after loading completed.
type Model interface {
	// Tokenize returns the token ids of text under the model's
	// vocabulary. Used for context-budget accounting, not generation.
	Tokenize(text string) ([]int32, error)
	// Generate runs bounded-length generation for the rendered prompt
	// and returns the raw emission. The emission may include an echo
	// of the prompt and template control markers; callers are expected
	// to pass it through ExtractCompletion.
	Generate(ctx context.Context, prompt string, p Params) (string, error)
	// Close frees the model. Idempotent.
	Close() error
}
