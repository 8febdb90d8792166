package queue

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
    logrus "github.com/sirupsen/logrus"
)

// Consumer reads reservation events and appends one audit entry per event to
// its logger.
type Consumer struct {
    URL   string
    Queue string
    Audit *logrus.Logger
}

// NewConsumer builds a consumer that writes to audit.
func NewConsumer(url, queue string, audit *logrus.Logger) *Consumer {
    return &Consumer{URL: url, Queue: queue, Audit: audit}
}

// Run connects to RabbitMQ and consumes until ctx is cancelled.  Broker
// failures trigger a reconnect with capped exponential backoff; a message
// that cannot be decoded is rejected without requeue so it cannot loop.
func (c *Consumer) Run(ctx context.Context) error {
    backoff := time.Second
    for {
        if err := ctx.Err(); err != nil {
            return err
        }
        conn, err := amqp.Dial(c.URL)
        if err != nil {
            logrus.WithError(err).Warnf("reservation-consumer: dial failed; retrying in %s", backoff)
            if !sleep(ctx, backoff) {
                return ctx.Err()
            }
            if backoff < 30*time.Second {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second

        err = c.consumeLoop(ctx, conn)
        _ = conn.Close()
        if ctx.Err() != nil {
            return ctx.Err()
        }
        logrus.WithError(err).Warn("reservation-consumer: consume loop ended; reconnecting")
        if !sleep(ctx, 2*time.Second) {
            return ctx.Err()
        }
    }
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(50, 0, false); err != nil {
        logrus.WithError(err).Warn("reservation-consumer: set QoS failed")
    }
    if err := declare(ch, c.Queue); err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }
    msgs, err := ch.Consume(c.Queue, "", false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue consume: %w", err)
    }

    for {
        select {
        case <-ctx.Done():
            return ctx.Err()
        case d, ok := <-msgs:
            if !ok {
                return errors.New("deliveries channel closed")
            }
            if err := c.handleMessage(d.Body); err != nil {
                logrus.WithError(err).Warn("reservation-consumer: handle message failed")
                _ = d.Nack(false, false)
                continue
            }
            _ = d.Ack(false)
        }
    }
}

// handleMessage decodes one delivery and writes its audit entry.
func (c *Consumer) handleMessage(body []byte) error {
    var ev ReservationEvent
    if err := json.Unmarshal(body, &ev); err != nil {
        return fmt.Errorf("unmarshal: %w", err)
    }
    if ev.Type == "" || ev.ReservationID == "" {
        return errors.New("event missing type or reservation id")
    }
    fields := logrus.Fields{
        "reservation_id":   ev.ReservationID,
        "train_id":         ev.TrainID,
        "user_nic":         ev.UserNIC,
        "seats":            ev.Seats,
        "train_seats_left": ev.TrainSeatsLeft,
        "occurred_at":      ev.OccurredAt.UTC().Format(time.RFC3339),
    }
    if ev.Type == EventReservationUpdated {
        fields["previous_train_id"] = ev.PreviousTrainID
        fields["previous_seats"] = ev.PreviousSeats
    }
    c.Audit.WithFields(fields).Info(ev.Type)
    return nil
}

func sleep(ctx context.Context, d time.Duration) bool {
    t := time.NewTimer(d)
    defer t.Stop()
    select {
    case <-ctx.Done():
        return false
    case <-t.C:
        return true
    }
}
