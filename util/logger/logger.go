package logger

import (
	stdlog "log"
	"os"
	"path"

	"github.com/op/go-logging"
)

/*
InitLogger creates and returns a logger suitable for logging
human-readable messages. Output goes to stderr so it never mixes
with manifest text on stdout.
*/
func InitLogger(logLevel logging.Level) *logging.Logger {
	processName := path.Base(os.Args[0])
	log := logging.MustGetLogger(processName)
	format := logging.MustStringFormatter("[%{level}] %{message}")
	logging.SetFormatter(format)
	logging.SetLevel(logLevel, processName)
	logBackend := logging.NewLogBackend(os.Stderr, "", stdlog.LstdFlags|stdlog.LUTC)
	logging.SetBackend(logBackend)
	return log
}
