// Package debug provides conditional debug logging for dv.
//
// Debug logging is enabled by setting the DV_DEBUG environment variable:
//
//	DV_DEBUG=1 dv
//
// When enabled, debug messages are written to stderr with timestamps.
// When disabled (default), all debug functions are no-ops with zero overhead.
// The TUI owns stdout, so stderr is the only safe sink; redirect it to a
// file when debugging interactively (DV_DEBUG=1 dv 2>dv.log).
package debug

import (
	"log"
	"os"
	"time"
)

var (
	// enabled is true when DV_DEBUG env var is set
	enabled bool
	// logger writes to stderr with [DV_DEBUG] prefix
	logger *log.Logger
)

func init() {
	if os.Getenv("DV_DEBUG") != "" {
		enabled = true
		logger = log.New(os.Stderr, "[DV_DEBUG] ", log.Ltime|log.Lmicroseconds)
	}
}

// Enabled returns whether debug logging is enabled.
func Enabled() bool {
	return enabled
}

// SetEnabled allows programmatic control of debug logging.
func SetEnabled(e bool) {
	enabled = e
	if e && logger == nil {
		logger = log.New(os.Stderr, "[DV_DEBUG] ", log.Ltime|log.Lmicroseconds)
	}
}

// Log writes a debug message if debug logging is enabled.
// Uses printf-style formatting.
func Log(format string, args ...any) {
	if !enabled {
		return
	}
	logger.Printf(format, args...)
}

// LogTiming writes a timing message if debug logging is enabled.
func LogTiming(name string, d time.Duration) {
	if !enabled {
		return
	}
	logger.Printf("%s took %v", name, d)
}

// Dump logs a value with its type for debugging complex structures.
func Dump(name string, v any) {
	if !enabled {
		return
	}
	logger.Printf("%s: %T = %+v", name, v, v)
}
