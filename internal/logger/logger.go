package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var (
	stdLogger *logrus.Logger
	std       *logrus.Entry
)

func init() {
	stdLogger = logrus.New()
	stdLogger.SetOutput(os.Stdout)
	stdLogger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	stdLogger.SetLevel(logrus.InfoLevel)
	std = stdLogger.WithField("app", "vulnassess")
}

// SetDebug switches the process logger to debug level.
func SetDebug(on bool) {
	if on {
		stdLogger.SetLevel(logrus.DebugLevel)
		return
	}
	stdLogger.SetLevel(logrus.InfoLevel)
}

func SetOutput(w io.Writer) {
	stdLogger.SetOutput(w)
}

// WithFields returns an entry tagged with the given fields, e.g. request data.
func WithFields(fields map[string]interface{}) *logrus.Entry {
	return std.WithFields(logrus.Fields(fields))
}

func Debugf(format string, v ...interface{}) {
	std.Debugf(format, v...)
}

func Infof(format string, v ...interface{}) {
	std.Infof(format, v...)
}

func Warnf(format string, v ...interface{}) {
	std.Warnf(format, v...)
}

func Errorf(format string, v ...interface{}) {
	std.Errorf(format, v...)
}

func Fatalf(format string, v ...interface{}) {
	std.Fatalf(format, v...)
}
