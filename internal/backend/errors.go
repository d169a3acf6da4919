package backend

import (
	"fmt"
	"strings"
)

// unknownError signals a backend name outside the configured set.
type unknownError struct{ name string }

func (e unknownError) Error() string {
	return fmt.Sprintf("unknown backend: %s (valid backends: %s)", e.name, strings.Join(Names(), ", "))
}

// ErrUnknown returns an error for a backend name outside the
// configured set; the message lists the valid names.
func ErrUnknown(name string) error { return unknownError{name: name} }

// IsUnknown reports whether err indicates an unrecognized backend name.
func IsUnknown(err error) bool {
	_, ok := err.(unknownError)
	return ok
}
