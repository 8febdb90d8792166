package logger

import (
    "bytes"
    "encoding/json"
    "os"
    "testing"

    logrus "github.com/sirupsen/logrus"
)

func TestNewWritesJSONLines(t *testing.T) {
    var buf bytes.Buffer
    l := New(&buf)
    l.WithField("reservation_id", "r1").Info("reservation.created")

    var line map[string]any
    if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
        t.Fatalf("not json: %v (%q)", err, buf.String())
    }
    if line["msg"] != "reservation.created" || line["reservation_id"] != "r1" {
        t.Fatalf("unexpected fields: %v", line)
    }
}

func TestSetupLevelFallback(t *testing.T) {
    defer logrus.SetOutput(os.Stderr)
    Setup("", "nonsense")
    if logrus.GetLevel() != logrus.InfoLevel {
        t.Fatalf("level = %s, want info", logrus.GetLevel())
    }
    Setup("", "debug")
    if logrus.GetLevel() != logrus.DebugLevel {
        t.Fatalf("level = %s, want debug", logrus.GetLevel())
    }
    logrus.SetLevel(logrus.InfoLevel)
}

func TestWriterEmptyPathIsStderr(t *testing.T) {
    if Writer("") != os.Stderr {
        t.Fatal("empty path should log to stderr")
    }
}
