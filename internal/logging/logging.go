// Package logging builds the structured loggers used across levelgen.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// New returns a logger writing to stderr with timestamps, the given prefix
// and a level parsed from levelName. Unknown level names fall back to info.
func New(prefix, levelName string) *log.Logger {
	return NewTo(os.Stderr, prefix, levelName)
}

// NewTo is New with an explicit writer.
func NewTo(w io.Writer, prefix, levelName string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	logger.SetLevel(ParseLevel(levelName))
	return logger
}

// ParseLevel maps a level name to a log.Level.
func ParseLevel(name string) log.Level {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Discard returns a logger that drops everything. Used as the zero value
// for components constructed without a logger.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
