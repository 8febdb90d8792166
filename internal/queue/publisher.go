package queue

import (
    "context"
    "encoding/json"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
    logrus "github.com/sirupsen/logrus"
)

// Publisher sends reservation events to a durable RabbitMQ queue.  Each
// publish opens its own connection; reservation writes are infrequent and
// this keeps the publisher free of reconnect state.  Errors are logged and
// returned so callers may ignore them without interrupting the request.
type Publisher struct {
    URL   string
    Queue string
}

// NewPublisher returns a publisher for queue on the broker at url.
func NewPublisher(url, queue string) *Publisher {
    return &Publisher{URL: url, Queue: queue}
}

// Publish delivers ev as a persistent JSON message.
func (p *Publisher) Publish(ctx context.Context, ev ReservationEvent) error {
    log := logrus.WithFields(logrus.Fields{"queue": p.Queue, "event": ev.Type, "reservation_id": ev.ReservationID})

    conn, err := amqp.Dial(p.URL)
    if err != nil {
        log.WithError(err).Warn("rabbitmq: dial failed")
        return err
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        log.WithError(err).Warn("rabbitmq: channel open failed")
        return err
    }
    defer func() { _ = ch.Close() }()

    if err := declare(ch, p.Queue); err != nil {
        log.WithError(err).Warn("rabbitmq: queue declare failed")
        return err
    }

    body, err := json.Marshal(ev)
    if err != nil {
        return err
    }
    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent,
        Timestamp:    time.Now().UTC(),
        Type:         ev.Type,
        Body:         body,
    }
    if err := ch.PublishWithContext(ctx, "", p.Queue, false, false, pub); err != nil {
        log.WithError(err).Warn("rabbitmq: publish failed")
        return err
    }
    return nil
}

// declare ensures the queue exists.  Durable so messages survive broker
// restarts.
func declare(ch *amqp.Channel, name string) error {
    _, err := ch.QueueDeclare(name, true, false, false, false, nil)
    return err
}
