package queue

import (
    "bytes"
    "encoding/json"
    "strings"
    "testing"
    "time"

    logrus "github.com/sirupsen/logrus"
)

func newTestConsumer() (*Consumer, *bytes.Buffer) {
    var buf bytes.Buffer
    audit := logrus.New()
    audit.SetOutput(&buf)
    audit.SetFormatter(&logrus.JSONFormatter{})
    return NewConsumer("amqp://unused", "reservation.events", audit), &buf
}

func TestHandleMessageWritesAuditEntry(t *testing.T) {
    c, buf := newTestConsumer()
    ev := ReservationEvent{
        Type:            EventReservationUpdated,
        ReservationID:   "r1",
        TrainID:         "t2",
        UserNIC:         "123v",
        Seats:           3,
        PreviousTrainID: "t1",
        PreviousSeats:   2,
        TrainSeatsLeft:  47,
        OccurredAt:      time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
    }
    body, _ := json.Marshal(ev)
    if err := c.handleMessage(body); err != nil {
        t.Fatal(err)
    }

    var line map[string]any
    if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
        t.Fatalf("audit line not json: %v", err)
    }
    if line["msg"] != EventReservationUpdated || line["previous_train_id"] != "t1" || line["occurred_at"] != "2026-01-02T03:04:05Z" {
        t.Fatalf("audit line = %v", line)
    }
}

func TestHandleMessageRejectsBadPayloads(t *testing.T) {
    c, buf := newTestConsumer()
    for _, body := range []string{"not json", `{"type":"reservation.created"}`} {
        if err := c.handleMessage([]byte(body)); err == nil {
            t.Errorf("handleMessage(%q) succeeded", body)
        }
    }
    if strings.TrimSpace(buf.String()) != "" {
        t.Fatalf("rejected messages must not be audited: %q", buf.String())
    }
}
