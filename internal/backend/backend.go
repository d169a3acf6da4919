// Package backend defines the fixed set of model backends a question
// can be routed to, with the generation configuration for each.
package backend

// Name identifies one of the configured backends.
type Name string

// The full set of routable backends. Fixed at startup, not
// user-extensible at runtime.
const (
	// LocalSmall runs a small instruction-tuned model in-process.
	LocalSmall Name = "local-small"
	// RemoteLarge delegates to a large model hosted by a remote
	// inference daemon.
	RemoteLarge Name = "remote-large"
)

// Default is the backend used when a submission does not pick one.
const Default = RemoteLarge

// GenParams carries the generation settings of one backend.
type GenParams struct {
	// Sampling temperature (higher = more random).
	Temperature float64
	// Nucleus sampling probability mass.
	TopP float64
	// Maximum number of new tokens to generate.
	MaxTokens int
	// Whether to sample; false means greedy decoding. Only the local
	// runtime honors this, the remote daemon always samples.
	Sample bool
}

// Descriptor describes one backend: stable name, underlying model
// identifier, system instruction and generation configuration.
// Descriptors are immutable once defined.
type Descriptor struct {
	Name   Name
	Model  string
	System string
	Gen    GenParams
}

const localSystem = "/no_think You are a helpful librarian who works in a " +
	"planetarium. Provide clear, accurate, and concise responses. " +
	"Keep answers focused and informative.\n\n" +
	"Examples:\n" +
	"Q: What is gravity?\n" +
	"A: Gravity is the force that attracts objects with mass " +
	"toward each other.\n\n" +
	"Q: How hot is the sun?\n" +
	"A: The sun's surface temperature is about 5,500°C, " +
	"while its core reaches 15 million°C."

const remoteSystem = "You are a helpful librarian who works in a " +
	"planetarium. Provide thoughtful, concise responses while " +
	"remaining clear and engaging. Draw connections between " +
	"topics when relevant.\n\n"

// Stable order: Names() and error messages list backends in this order.
var descriptors = [...]Descriptor{
	{
		Name:   LocalSmall,
		Model:  "smollm3-3b",
		System: localSystem,
		Gen:    GenParams{Temperature: 0.7, TopP: 0.9, MaxTokens: 128, Sample: true},
	},
	{
		Name:   RemoteLarge,
		Model:  "gpt-oss:20b",
		System: remoteSystem,
		Gen:    GenParams{Temperature: 0.7, TopP: 0.9, MaxTokens: 100},
	},
}

// Lookup returns the descriptor for name, and whether it exists.
func Lookup(name Name) (Descriptor, bool) {
	for _, d := range descriptors {
		if d.Name == name {
			return d, true
		}
	}
	return Descriptor{}, false
}

// All returns a copy of every descriptor in stable order.
func All() []Descriptor {
	out := make([]Descriptor, len(descriptors))
	copy(out, descriptors[:])
	return out
}

// Names returns every backend name in stable order.
func Names() []string {
	out := make([]string, len(descriptors))
	for i, d := range descriptors {
		out[i] = string(d.Name)
	}
	return out
}
