package gateway

import "askd/internal/backend"

// notReadyError signals a backend whose resources are absent, either
// because Initialize has not run or because it left the backend
// degraded.
type notReadyError struct{ name backend.Name }

func (e notReadyError) Error() string {
	return "backend not initialized: " + string(e.name)
}

// ErrNotReady constructs a notReadyError for name.
func ErrNotReady(name backend.Name) error { return notReadyError{name: name} }

// IsNotReady reports whether err indicates an uninitialized backend.
func IsNotReady(err error) bool {
	_, ok := err.(notReadyError)
	return ok
}
