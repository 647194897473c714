package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the global logger instance shared by the whole application.
var Log *logrus.Logger

// Init configures the global logger. Call once at startup; packages that
// may run before Init (tests) get a default logger via ensure().
func Init() {
	Log = logrus.New()

	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	Log.SetOutput(os.Stdout)
}

func ensure() *logrus.Logger {
	if Log == nil {
		Init()
	}
	return Log
}

// Get returns the global logger, initialising it with defaults if needed.
func Get() *logrus.Logger {
	return ensure()
}
