package service

import (
    "errors"
    "testing"

    "github.com/iliyamo/train-ticket-reservation/internal/model"
    "github.com/iliyamo/train-ticket-reservation/internal/queue"
    "github.com/iliyamo/train-ticket-reservation/internal/validator"
)

func reservationEnv(t *testing.T) (*env, *model.Train) {
    e := newEnv(t)
    e.person(t, "agent1v", model.UserTypeTravelAgent)
    e.person(t, "cust1v", model.UserTypeCustomer)
    return e, e.train(t, "agent1v", 10)
}

func TestCreateReservation(t *testing.T) {
    e, tr := reservationEnv(t)

    r, err := e.reservations.Create(e.ctx, "cust1v", validator.ReservationRequest{TrainID: tr.ID, UserNIC: "cust1v", Seats: 4})
    if err != nil {
        t.Fatal(err)
    }
    if got := e.seatsOf(t, tr.ID); got != 6 {
        t.Fatalf("seats = %d, want 6", got)
    }
    if len(e.events.events) != 1 || e.events.events[0].Type != queue.EventReservationCreated ||
        e.events.events[0].ReservationID != r.ID || e.events.events[0].TrainSeatsLeft != 6 {
        t.Fatalf("events = %+v", e.events.events)
    }

    _, err = e.reservations.Create(e.ctx, "cust1v", validator.ReservationRequest{TrainID: tr.ID, UserNIC: "cust1v", Seats: 7})
    wantErr(t, err, ErrInsufficientCapacity)
    if got := e.seatsOf(t, tr.ID); got != 6 {
        t.Fatalf("failed create changed seats to %d", got)
    }
}

func TestCreateReservationErrors(t *testing.T) {
    e, tr := reservationEnv(t)

    _, err := e.reservations.Create(e.ctx, "cust1v", validator.ReservationRequest{TrainID: tr.ID, UserNIC: "cust1v", Seats: 0})
    wantValidation(t, err)

    _, err = e.reservations.Create(e.ctx, "cust1v", validator.ReservationRequest{TrainID: tr.ID, UserNIC: "nobody1v", Seats: 1})
    wantErr(t, err, ErrNotFound)

    _, err = e.reservations.Create(e.ctx, "cust1v", validator.ReservationRequest{TrainID: "missing", UserNIC: "cust1v", Seats: 1})
    wantErr(t, err, ErrNotFound)

    e.person(t, "cust2v", model.UserTypeCustomer)
    _, err = e.reservations.Create(e.ctx, "cust2v", validator.ReservationRequest{TrainID: tr.ID, UserNIC: "cust1v", Seats: 1})
    wantErr(t, err, ErrForbidden)

    if _, err := e.reservations.Create(e.ctx, "agent1v", validator.ReservationRequest{TrainID: tr.ID, UserNIC: "cust1v", Seats: 1}); err != nil {
        t.Fatalf("agent booking for customer: %v", err)
    }
}

func TestEditReservationSameTrain(t *testing.T) {
    e, tr := reservationEnv(t)
    r, err := e.reservations.Create(e.ctx, "cust1v", validator.ReservationRequest{TrainID: tr.ID, UserNIC: "cust1v", Seats: 4})
    if err != nil {
        t.Fatal(err)
    }

    // capacity = 4 held + 6 free
    if _, err := e.reservations.Edit(e.ctx, "cust1v", r.ID, validator.ReservationRequest{TrainID: tr.ID, Seats: 10}); err != nil {
        t.Fatal(err)
    }
    if got := e.seatsOf(t, tr.ID); got != 0 {
        t.Fatalf("seats = %d, want 0", got)
    }
    _, err = e.reservations.Edit(e.ctx, "cust1v", r.ID, validator.ReservationRequest{TrainID: tr.ID, Seats: 11})
    wantErr(t, err, ErrInsufficientCapacity)

    out, err := e.reservations.Edit(e.ctx, "cust1v", r.ID, validator.ReservationRequest{TrainID: tr.ID, Seats: 2})
    if err != nil {
        t.Fatal(err)
    }
    if out.ID != r.ID || out.Seats != 2 || out.UserNIC != "cust1v" {
        t.Fatalf("edited = %+v", out)
    }
    if got := e.seatsOf(t, tr.ID); got != 8 {
        t.Fatalf("seats = %d, want 8", got)
    }
}

func TestEditReservationOtherTrain(t *testing.T) {
    e, a := reservationEnv(t)
    b := e.train(t, "agent1v", 3)
    r, err := e.reservations.Create(e.ctx, "cust1v", validator.ReservationRequest{TrainID: a.ID, UserNIC: "cust1v", Seats: 4})
    if err != nil {
        t.Fatal(err)
    }

    _, err = e.reservations.Edit(e.ctx, "cust1v", r.ID, validator.ReservationRequest{TrainID: b.ID, Seats: 4})
    wantErr(t, err, ErrInsufficientCapacity)
    if e.seatsOf(t, a.ID) != 6 || e.seatsOf(t, b.ID) != 3 {
        t.Fatal("a refused edit must leave both trains untouched")
    }

    if _, err := e.reservations.Edit(e.ctx, "cust1v", r.ID, validator.ReservationRequest{TrainID: b.ID, Seats: 3}); err != nil {
        t.Fatal(err)
    }
    if got := e.seatsOf(t, a.ID); got != 10 {
        t.Fatalf("old train seats = %d, want 10", got)
    }
    if got := e.seatsOf(t, b.ID); got != 0 {
        t.Fatalf("new train seats = %d, want 0", got)
    }
    last := e.events.events[len(e.events.events)-1]
    if last.Type != queue.EventReservationUpdated || last.PreviousTrainID != a.ID || last.PreviousSeats != 4 {
        t.Fatalf("event = %+v", last)
    }

    _, err = e.reservations.Edit(e.ctx, "cust1v", "missing", validator.ReservationRequest{TrainID: b.ID, Seats: 1})
    wantErr(t, err, ErrNotFound)
    _, err = e.reservations.Edit(e.ctx, "cust1v", r.ID, validator.ReservationRequest{TrainID: "missing", Seats: 1})
    wantErr(t, err, ErrNotFound)
}

func TestDeleteReservation(t *testing.T) {
    e, tr := reservationEnv(t)
    r, err := e.reservations.Create(e.ctx, "cust1v", validator.ReservationRequest{TrainID: tr.ID, UserNIC: "cust1v", Seats: 4})
    if err != nil {
        t.Fatal(err)
    }
    if err := e.reservations.Delete(e.ctx, "cust1v", r.ID); err != nil {
        t.Fatal(err)
    }
    if got := e.seatsOf(t, tr.ID); got != 10 {
        t.Fatalf("seats = %d, want 10", got)
    }
    wantErr(t, e.reservations.Delete(e.ctx, "cust1v", r.ID), ErrNotFound)
}

func TestSeatConservation(t *testing.T) {
    e, a := reservationEnv(t)
    b := e.train(t, "agent1v", 5)
    initial := map[string]int{a.ID: 10, b.ID: 5}

    steps := []func() error{
        func() error {
            _, err := e.reservations.Create(e.ctx, "cust1v", validator.ReservationRequest{TrainID: a.ID, UserNIC: "cust1v", Seats: 3})
            return err
        },
        func() error {
            _, err := e.reservations.Create(e.ctx, "agent1v", validator.ReservationRequest{TrainID: b.ID, UserNIC: "cust1v", Seats: 5})
            return err
        },
        func() error {
            _, err := e.reservations.Create(e.ctx, "cust1v", validator.ReservationRequest{TrainID: b.ID, UserNIC: "cust1v", Seats: 1})
            return err
        },
        func() error {
            rs, _ := e.reservations.ByTrain(e.ctx, a.ID)
            _, err := e.reservations.Edit(e.ctx, "cust1v", rs[0].ID, validator.ReservationRequest{TrainID: a.ID, Seats: 7})
            return err
        },
        func() error {
            rs, _ := e.reservations.ByTrain(e.ctx, b.ID)
            _, err := e.reservations.Edit(e.ctx, "cust1v", rs[0].ID, validator.ReservationRequest{TrainID: a.ID, Seats: 3})
            return err
        },
        func() error {
            rs, _ := e.reservations.ByTrain(e.ctx, a.ID)
            return e.reservations.Delete(e.ctx, "cust1v", rs[0].ID)
        },
    }
    for i, step := range steps {
        err := step()
        if err != nil && !errors.Is(err, ErrInsufficientCapacity) {
            t.Fatalf("step %d: %v", i, err)
        }
        for id, want := range initial {
            if got := e.seatsOf(t, id) + e.reserved(t, id); got != want {
                t.Fatalf("step %d: train %s holds %d seats, want %d", i, id, got, want)
            }
        }
    }
}

func TestPublishFailureDoesNotFailRequest(t *testing.T) {
    e, tr := reservationEnv(t)
    e.events.err = errors.New("broker down")
    if _, err := e.reservations.Create(e.ctx, "cust1v", validator.ReservationRequest{TrainID: tr.ID, UserNIC: "cust1v", Seats: 1}); err != nil {
        t.Fatalf("publish failure leaked: %v", err)
    }
}
