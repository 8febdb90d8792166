// Package logger configures logrus for the whole process.
package logger

import (
    "io"
    "os"
    "time"

    logrus "github.com/sirupsen/logrus"
    "gopkg.in/natefinch/lumberjack.v2"
)

// Setup points the standard logrus logger at a rotating file (or stderr when
// file is empty) and applies the named level.  Unknown levels fall back to
// info.
func Setup(file, level string) {
    logrus.SetOutput(Writer(file))
    logrus.SetFormatter(&logrus.TextFormatter{
        FullTimestamp:   true,
        TimestampFormat: time.RFC3339,
    })
    lvl, err := logrus.ParseLevel(level)
    if err != nil {
        lvl = logrus.InfoLevel
    }
    logrus.SetLevel(lvl)
}

// Writer returns a size-rotated file writer for path.  The console still
// receives a copy so container logs keep working.
func Writer(path string) io.Writer {
    if path == "" {
        return os.Stderr
    }
    rotator := &lumberjack.Logger{
        Filename:   path,
        MaxSize:    10, // megabytes
        MaxBackups: 7,
        MaxAge:     7, // days
        Compress:   true,
    }
    return io.MultiWriter(os.Stderr, rotator)
}

// New builds a standalone logger writing JSON lines to w.  Used for audit
// trails that must not mix with the application log.
func New(w io.Writer) *logrus.Logger {
    l := logrus.New()
    l.SetOutput(w)
    l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
    l.SetLevel(logrus.InfoLevel)
    return l
}
