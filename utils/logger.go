package utils

import (
	"os"

	"github.com/sirupsen/logrus"
)

var (
	InfoLogger  = logrus.New()
	ErrorLogger = logrus.New()
)

// InitLogger configures both loggers. level is a logrus level name; empty means info.
func InitLogger(level ...string) {
	InfoLogger = logrus.New()
	ErrorLogger = logrus.New()

	// Set output untuk InfoLogger ke stdout
	InfoLogger.SetOutput(os.Stdout)
	InfoLogger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	// Set output untuk ErrorLogger ke stderr
	ErrorLogger.SetOutput(os.Stderr)
	ErrorLogger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	InfoLogger.SetLevel(logrus.InfoLevel)
	if len(level) > 0 && level[0] != "" {
		if lvl, err := logrus.ParseLevel(level[0]); err == nil {
			InfoLogger.SetLevel(lvl)
		} else {
			ErrorLogger.Printf("unknown log level %q, using info", level[0])
		}
	}
	ErrorLogger.SetLevel(logrus.ErrorLevel)
}
