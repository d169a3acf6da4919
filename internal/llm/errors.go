package llm

// unavailableError signals a missing runtime dependency (the llama.cpp
// binding) so callers can tell build-level absence from load failures.
type unavailableError struct{ msg string }

func (e unavailableError) Error() string { return e.msg }

// ErrUnavailable constructs an unavailableError.
func ErrUnavailable(msg string) error { return unavailableError{msg: msg} }

// IsUnavailable reports whether err indicates the local runtime is not
// compiled into this binary.
func IsUnavailable(err error) bool {
	_, ok := err.(unavailableError)
	return ok
}
