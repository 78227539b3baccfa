package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Level maps the --log-level flag to a logrus level. Unknown values fall
// back to info.
func Level(level string) logrus.Level {
	switch level {
	case "error":
		return logrus.ErrorLevel
	case "debug":
		return logrus.DebugLevel
	case "fatal":
		return logrus.FatalLevel
	case "warning":
		return logrus.WarnLevel
	default:
		return logrus.InfoLevel
	}
}

// Configure sets up the global logrus logger. Logs are JSON; when file is
// set they go to a rotated file instead of stderr.
func Configure(level, file string) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(Output(file))
	logrus.SetLevel(Level(level))
}

func Output(file string) io.Writer {
	if file == "" {
		return os.Stderr
	}
	return &lumberjack.Logger{
		Filename:   file,
		MaxSize:    2, // megabytes
		MaxBackups: 3,
		Compress:   true,
	}
}
