// Package logging configures the process-wide logrus logger.
package logging

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// Init points the standard logrus logger at w with the given level.
// Diagnostics never share stdout with rendered records, so callers pass
// stderr. JSON formatting is used when json is true.
func Init(w io.Writer, level logrus.Level, json bool) {
	logrus.SetOutput(w)
	logrus.SetLevel(level)
	if json {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}
}

// ParseLevel converts a string ("debug", "info", "warn", "error") to a
// logrus level. Unknown strings default to InfoLevel.
func ParseLevel(s string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace", "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}
