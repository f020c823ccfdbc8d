// Package logging configures the global zerolog logger for the command-line
// front end.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultLevel is used when no verbosity flag is given.
const DefaultLevel = zerolog.WarnLevel

// LevelFromFlags maps the standard verbosity flags to a log level.
//
// Each -v lowers the level by one step from warn (info, debug, trace).
// --debug is the same as -vv. --quiet wins over everything else and only
// lets errors through.
func LevelFromFlags(verbose int, debug, quiet bool) zerolog.Level {
	if quiet {
		return zerolog.ErrorLevel
	}
	if debug && verbose < 2 {
		verbose = 2
	}

	level := DefaultLevel - zerolog.Level(verbose)
	if level < zerolog.TraceLevel {
		level = zerolog.TraceLevel
	}
	return level
}

// Init initializes the global logger, writing human readable output to stderr.
func Init(level zerolog.Level) {
	InitWriter(os.Stderr, level)
}

// InitWriter is like Init with a custom destination.
func InitWriter(w io.Writer, level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()
}
