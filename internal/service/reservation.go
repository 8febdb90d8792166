package service

import (
    "context"
    "errors"
    "fmt"
    "strings"
    "time"

    logrus "github.com/sirupsen/logrus"

    "github.com/iliyamo/train-ticket-reservation/internal/model"
    "github.com/iliyamo/train-ticket-reservation/internal/policy"
    "github.com/iliyamo/train-ticket-reservation/internal/queue"
    "github.com/iliyamo/train-ticket-reservation/internal/repository"
    "github.com/iliyamo/train-ticket-reservation/internal/validator"
)

// ReservationService moves seats between trains and reservations.  For every
// train, its available seats plus the seats of all reservations against it
// stay equal to the seats it was created with.
type ReservationService struct {
    store  *repository.Store
    authz  Authorizer
    events EventPublisher
    now    func() time.Time
}

func NewReservationService(store *repository.Store, authz Authorizer, events EventPublisher) *ReservationService {
    if events == nil {
        events = NopPublisher{}
    }
    return &ReservationService{store: store, authz: authz, events: events, now: time.Now}
}

func (s *ReservationService) List(ctx context.Context) ([]model.Reservation, error) {
    return s.store.Reservations.FindAll(ctx)
}

func (s *ReservationService) Get(ctx context.Context, id string) (*model.Reservation, error) {
    r, err := s.store.Reservations.FindByKey(ctx, id)
    if errors.Is(err, repository.ErrNotFound) {
        return nil, fail(ErrNotFound, "Reservation not found")
    }
    return r, err
}

func (s *ReservationService) ByNIC(ctx context.Context, nic string) ([]model.Reservation, error) {
    return s.store.Reservations.FindByNIC(ctx, strings.TrimSpace(nic))
}

func (s *ReservationService) ByTrain(ctx context.Context, trainID string) ([]model.Reservation, error) {
    return s.store.Reservations.FindByTrain(ctx, trainID)
}

func loadTrain(ctx context.Context, tx *repository.Store, id string) (*model.Train, error) {
    t, err := tx.Trains.FindByKey(ctx, id)
    if err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return nil, fail(ErrNotFound, "Train not found")
        }
        return nil, fmt.Errorf("load train: %w", err)
    }
    return t, nil
}

func loadReservation(ctx context.Context, tx *repository.Store, id string) (*model.Reservation, error) {
    r, err := tx.Reservations.FindByKey(ctx, id)
    if err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return nil, fail(ErrNotFound, "Reservation not found")
        }
        return nil, fmt.Errorf("load reservation: %w", err)
    }
    return r, nil
}

// adjust applies delta to a train's seats.  A refused guarded update means
// another request took the seats first.
func adjust(ctx context.Context, tx *repository.Store, trainID string, delta int) error {
    if delta == 0 {
        return nil
    }
    if err := tx.Trains.AdjustSeats(ctx, trainID, delta); err != nil {
        if errors.Is(err, repository.ErrConflict) {
            return fail(ErrInsufficientCapacity, "Not enough seats")
        }
        return fmt.Errorf("adjust seats: %w", err)
    }
    return nil
}

// Create books seats on a train for a user.
func (s *ReservationService) Create(ctx context.Context, requester string, in validator.ReservationRequest) (*model.Reservation, error) {
    if err := invalid(validator.Reservation(in)); err != nil {
        return nil, err
    }
    res := model.Reservation{TrainID: strings.TrimSpace(in.TrainID), UserNIC: strings.TrimSpace(in.UserNIC), Seats: in.Seats}
    var left int
    err := s.store.InTx(ctx, func(tx *repository.Store) error {
        if _, err := tx.Users.FindByKey(ctx, res.UserNIC); err != nil {
            if errors.Is(err, repository.ErrNotFound) {
                return fail(ErrNotFound, "User not found")
            }
            return fmt.Errorf("load user: %w", err)
        }
        if err := authorize(ctx, s.authz, tx, policy.ActionReservationManage, requester, policy.Resource{UserNIC: res.UserNIC}); err != nil {
            return err
        }
        t, err := loadTrain(ctx, tx, res.TrainID)
        if err != nil {
            return err
        }
        if t.Seats < res.Seats {
            return fail(ErrInsufficientCapacity, "Not enough seats")
        }
        if err := adjust(ctx, tx, t.ID, -res.Seats); err != nil {
            return err
        }
        if err := tx.Reservations.Insert(ctx, &res); err != nil {
            return fmt.Errorf("insert reservation: %w", err)
        }
        left = t.Seats - res.Seats
        return nil
    })
    if err != nil {
        return nil, err
    }
    s.publish(ctx, queue.ReservationEvent{
        Type:           queue.EventReservationCreated,
        ReservationID:  res.ID,
        TrainID:        res.TrainID,
        UserNIC:        res.UserNIC,
        Seats:          res.Seats,
        TrainSeatsLeft: left,
    })
    return &res, nil
}

// Edit moves a reservation to a train and seat count.  On the same train the
// capacity is the old seats plus the train's available seats.  On another
// train the old seats go back to the old train and the capacity is the new
// train's available seats.
func (s *ReservationService) Edit(ctx context.Context, requester, id string, in validator.ReservationRequest) (*model.Reservation, error) {
    if err := invalid(validator.ReservationEdit(in)); err != nil {
        return nil, err
    }
    var prev, next model.Reservation
    var left int
    err := s.store.InTx(ctx, func(tx *repository.Store) error {
        old, err := loadReservation(ctx, tx, id)
        if err != nil {
            return err
        }
        prev = *old
        if err := authorize(ctx, s.authz, tx, policy.ActionReservationManage, requester, policy.Resource{UserNIC: old.UserNIC}); err != nil {
            return err
        }
        t, err := loadTrain(ctx, tx, strings.TrimSpace(in.TrainID))
        if err != nil {
            return err
        }

        if t.ID == old.TrainID {
            if old.Seats+t.Seats < in.Seats {
                return fail(ErrInsufficientCapacity, "Not enough seats")
            }
            if err := adjust(ctx, tx, t.ID, old.Seats-in.Seats); err != nil {
                return err
            }
            left = t.Seats + old.Seats - in.Seats
        } else {
            if t.Seats < in.Seats {
                return fail(ErrInsufficientCapacity, "Not enough seats")
            }
            if err := s.release(ctx, tx, old); err != nil {
                return err
            }
            if err := adjust(ctx, tx, t.ID, -in.Seats); err != nil {
                return err
            }
            left = t.Seats - in.Seats
        }

        next = model.Reservation{ID: old.ID, TrainID: t.ID, UserNIC: old.UserNIC, Seats: in.Seats}
        if err := tx.Reservations.ReplaceByKey(ctx, id, next); err != nil {
            return fmt.Errorf("update reservation: %w", err)
        }
        return nil
    })
    if err != nil {
        return nil, err
    }
    s.publish(ctx, queue.ReservationEvent{
        Type:            queue.EventReservationUpdated,
        ReservationID:   next.ID,
        TrainID:         next.TrainID,
        UserNIC:         next.UserNIC,
        Seats:           next.Seats,
        PreviousTrainID: prev.TrainID,
        PreviousSeats:   prev.Seats,
        TrainSeatsLeft:  left,
    })
    return &next, nil
}

// Delete cancels a reservation and returns its seats.
func (s *ReservationService) Delete(ctx context.Context, requester, id string) error {
    var gone model.Reservation
    err := s.store.InTx(ctx, func(tx *repository.Store) error {
        old, err := loadReservation(ctx, tx, id)
        if err != nil {
            return err
        }
        gone = *old
        if err := authorize(ctx, s.authz, tx, policy.ActionReservationManage, requester, policy.Resource{UserNIC: old.UserNIC}); err != nil {
            return err
        }
        if err := s.release(ctx, tx, old); err != nil {
            return err
        }
        if err := tx.Reservations.DeleteByKey(ctx, id); err != nil {
            return fmt.Errorf("delete reservation: %w", err)
        }
        return nil
    })
    if err != nil {
        return err
    }
    s.publish(ctx, queue.ReservationEvent{
        Type:          queue.EventReservationDeleted,
        ReservationID: gone.ID,
        TrainID:       gone.TrainID,
        UserNIC:       gone.UserNIC,
        Seats:         gone.Seats,
    })
    return nil
}

// release gives the seats of r back to its train.  A train that no longer
// exists is skipped.
func (s *ReservationService) release(ctx context.Context, tx *repository.Store, r *model.Reservation) error {
    if _, err := tx.Trains.FindByKey(ctx, r.TrainID); err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            logrus.WithFields(logrus.Fields{"reservation_id": r.ID, "train_id": r.TrainID}).Warn("train missing; seats not returned")
            return nil
        }
        return fmt.Errorf("load train: %w", err)
    }
    return adjust(ctx, tx, r.TrainID, r.Seats)
}

// publish sends ev after commit.  Failures are logged only.
func (s *ReservationService) publish(ctx context.Context, ev queue.ReservationEvent) {
    ev.OccurredAt = s.now().UTC()
    if err := s.events.Publish(ctx, ev); err != nil {
        logrus.WithError(err).WithFields(logrus.Fields{"event": ev.Type, "reservation_id": ev.ReservationID}).Warn("reservation event not published")
    }
}
