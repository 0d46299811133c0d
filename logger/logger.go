// Package logger provides the two loggers this module uses: a
// package-level logrus logger for lifecycle/HTTP-client logging (Log),
// and a zerolog constructor for the WebSocket session hot path, where
// structured per-message fields (venue, topic, symbol) are logged on
// every line and allocation overhead matters.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"
)

// Log is the shared lifecycle/HTTP logger. Bootstrap, config and the HTTP
// client base all log through this by reference.
var Log = logrus.New()

func init() {
	Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	Log.SetLevel(logrus.InfoLevel)
}

// SetLevel parses a level string ("debug", "info", "warn", "error") and
// applies it to Log; unrecognized values leave the current level in place.
func SetLevel(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		Log.Warnf("unrecognized log level %q, keeping %s", level, Log.GetLevel())
		return
	}
	Log.SetLevel(lvl)
}

// NewSession builds a zerolog.Logger for one WebSocket session, tagging
// every line with venue/market/topic so the reader/ping/liveness/worker
// loops never have to repeat those fields by hand.
func NewSession(venue, market, topic string) zerolog.Logger {
	return NewSessionWriter(os.Stderr, venue, market, topic)
}

// NewSessionWriter is NewSession with an explicit writer, used by tests
// to assert on log output.
func NewSessionWriter(w io.Writer, venue, market, topic string) zerolog.Logger {
	return zerolog.New(w).With().
		Timestamp().
		Str("venue", venue).
		Str("market", market).
		Str("topic", topic).
		Logger()
}
