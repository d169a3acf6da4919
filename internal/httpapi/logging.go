package httpapi

import "github.com/rs/zerolog"

// zlog is the package logger. It discards everything until the binary
// installs a real one, which keeps handlers free of nil checks.
var zlog = zerolog.Nop()

// SetLogger installs a structured logger used by the HTTP layer.
func SetLogger(l zerolog.Logger) { zlog = l.With().Str("component", "httpapi").Logger() }
