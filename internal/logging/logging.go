// Package logging builds the logrus logger shared by the driver and
// the dispatcher. Per-step fetch/decode/execute detail lives at Debug,
// the header summary at Info, and fatal load/run errors at Error, per
// the log surface documented for this interpreter: not bit-stable,
// not a machine interface.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New builds a logger writing to stderr with a full-timestamp text
// formatter. verbosity 0 is Info, 1 is Debug, 2+ is Trace.
func New(verbosity int) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	switch {
	case verbosity >= 2:
		log.SetLevel(logrus.TraceLevel)
	case verbosity == 1:
		log.SetLevel(logrus.DebugLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}

	return log
}
