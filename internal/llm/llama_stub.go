//go:build !llama

package llm

// Compiled when the 'llama' build tag is NOT set, keeping default
// builds and CI CGO-free. Load fails fast; no mocked behavior in
// production binaries built without the binding.

// Load refuses to run without the 'llama' build tag.
func Load(path string, ctxSize, threads int) (Model, error) {
	return nil, ErrUnavailable("llama support not built (missing 'llama' build tag)")
}
