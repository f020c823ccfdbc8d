package history

import (
	"fmt"

	"github.com/rs/zerolog"
)

// pebbleLogger routes pebble's own logging through zerolog, demoting its
// informational chatter to debug.
type pebbleLogger struct {
	logger zerolog.Logger
}

func (l pebbleLogger) Infof(format string, args ...any) {
	l.logger.Debug().Str("component", "pebble").Msg(fmt.Sprintf(format, args...))
}

func (l pebbleLogger) Fatalf(format string, args ...any) {
	l.logger.Fatal().Str("component", "pebble").Msg(fmt.Sprintf(format, args...))
}
