package obs

import (
	"io"

	"github.com/rs/zerolog"
)

// NewLogger builds the root logger. Components receive scoped children via
// Component; nothing in this module logs through a process-wide singleton.
func NewLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// Component returns l scoped with a component name.
func Component(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}
