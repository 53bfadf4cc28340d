// Package logging provides the module-wide structured logger.
package logging

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	once sync.Once
	base *logrus.Logger
)

// Log returns the shared emulator logger, constructing it on first use.
func Log() *logrus.Logger {
	once.Do(func() {
		base = logrus.New()
		base.SetOutput(os.Stderr)
		base.SetLevel(logrus.InfoLevel)
		base.Formatter = &logrus.TextFormatter{
			DisableColors:    true,
			DisableTimestamp: false,
			FullTimestamp:    true,
		}
	})
	return base
}

// SetLevel adjusts the shared logger's verbosity, e.g. to logrus.DebugLevel
// when trace output is requested.
func SetLevel(level logrus.Level) {
	Log().SetLevel(level)
}
