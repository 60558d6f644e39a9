// Package debug provides conditional debug logging for rv.
//
// Debug logging is enabled by setting the RV_DEBUG environment variable:
//
//	RV_DEBUG=1 rv result
//
// The interactive voting screen owns the terminal, so during a session debug
// output should go to a file instead of stderr:
//
//	RV_DEBUG=1 RV_DEBUG_LOG=/tmp/rv.log rv
//
// When disabled (default), all debug functions are no-ops.
package debug

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"
)

var (
	// enabled is true when RV_DEBUG env var is set
	enabled bool
	// logger writes with [RV_DEBUG] prefix
	logger *log.Logger
	// logFile is the RV_DEBUG_LOG file, if one was opened
	logFile *os.File
)

func init() {
	if os.Getenv("RV_DEBUG") == "" {
		return
	}
	enabled = true
	var out io.Writer = os.Stderr
	if path := os.Getenv("RV_DEBUG_LOG"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err == nil {
			logFile = f
			out = f
		}
	}
	logger = newLogger(out)
}

func newLogger(w io.Writer) *log.Logger {
	return log.New(w, "[RV_DEBUG] ", log.Ltime|log.Lmicroseconds)
}

// Enabled returns whether debug logging is enabled.
func Enabled() bool {
	return enabled
}

// SetEnabled allows programmatic control of debug logging.
func SetEnabled(e bool) {
	enabled = e
	if e && logger == nil {
		logger = newLogger(os.Stderr)
	}
}

// SetOutput redirects debug output, e.g. to a buffer in tests.
func SetOutput(w io.Writer) {
	logger = newLogger(w)
}

// Close releases the RV_DEBUG_LOG file.
func Close() error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
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

// Assert logs a message and panics if the condition is false.
// Only active when debug is enabled.
func Assert(cond bool, msg string) {
	if !enabled {
		return
	}
	if !cond {
		logger.Printf("ASSERTION FAILED: %s", msg)
		panic(fmt.Sprintf("debug assertion failed: %s", msg))
	}
}

// AssertNoError logs and panics if err is not nil.
// Only active when debug is enabled.
func AssertNoError(err error, context string) {
	if !enabled {
		return
	}
	if err != nil {
		logger.Printf("ASSERTION FAILED: %s: %v", context, err)
		panic(fmt.Sprintf("debug assertion failed: %s: %v", context, err))
	}
}
