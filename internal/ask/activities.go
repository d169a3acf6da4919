package ask

import (
	"context"

	"askd/internal/backend"
	"askd/internal/infer"
)

// Activities hosts the worker-side activity implementations with
// their injected dependencies.
type Activities struct {
	inv *infer.Invoker
}

// NewActivities builds the activity set around an Invoker.
func NewActivities(inv *infer.Invoker) *Activities {
	return &Activities{inv: inv}
}

// AskQuestion runs one inference invocation. Errors are returned
// as-is; the workflow's retry policy decides what happens next.
func (a *Activities) AskQuestion(ctx context.Context, q Question) (string, error) {
	name := backend.Name(q.Backend)
	if q.Backend == "" {
		name = backend.Default
	}
	return a.inv.Invoke(ctx, q.Prompt, name)
}
