// Package queue defines the reservation events exchanged over RabbitMQ and
// the publisher and consumer that move them.
package queue

import "time"

// Event types.
const (
    EventReservationCreated = "reservation.created"
    EventReservationUpdated = "reservation.updated"
    EventReservationDeleted = "reservation.deleted"
)

// ReservationEvent is published after a reservation change commits.  It
// carries enough for downstream consumers to audit or notify without
// querying the primary database.
type ReservationEvent struct {
    Type            string    `json:"type"`
    ReservationID   string    `json:"reservation_id"`
    TrainID         string    `json:"train_id"`
    UserNIC         string    `json:"user_nic"`
    Seats           int       `json:"seats"`
    PreviousTrainID string    `json:"previous_train_id,omitempty"` // edits only
    PreviousSeats   int       `json:"previous_seats,omitempty"`    // edits only
    TrainSeatsLeft  int       `json:"train_seats_left"`
    OccurredAt      time.Time `json:"occurred_at"`
}
