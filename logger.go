package main

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var logg = logrus.New()

// initLogger configures the shared logrus instance from LOG_LEVEL and
// ENVIRONMENT. Production gets JSON lines, everything else readable text.
func initLogger() {
	logg.SetOutput(os.Stdout)

	levelStr := strings.ToLower(os.Getenv("LOG_LEVEL"))
	if levelStr == "" {
		levelStr = "info"
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		logg.Warnf("Invalid log level '%s', defaulting to 'info'. Error: %v", levelStr, err)
		level = logrus.InfoLevel
	}
	logg.SetLevel(level)

	env := strings.ToLower(os.Getenv("ENVIRONMENT"))
	if env == "production" || env == "staging" {
		logg.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	} else {
		logg.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}
}
