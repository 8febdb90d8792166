package service

import (
    "testing"

    "github.com/iliyamo/train-ticket-reservation/internal/model"
    "github.com/iliyamo/train-ticket-reservation/internal/validator"
)

func TestCreateTrain(t *testing.T) {
    e := newEnv(t)
    e.person(t, "agent1v", model.UserTypeTravelAgent)
    e.person(t, "cust1v", model.UserTypeCustomer)

    tr := e.train(t, "agent1v", 50)
    got, err := e.trains.Get(e.ctx, tr.ID)
    if err != nil {
        t.Fatal(err)
    }
    if got.Type != model.TrainTypeIntercity || len(got.Districts) != 5 || got.Districts[4] != model.Jaffna || !got.IsActive {
        t.Fatalf("stored train = %+v", got)
    }

    _, err = e.trains.Create(e.ctx, "cust1v", trainRequest("cust1v", 10))
    wantErr(t, err, ErrForbidden)

    _, err = e.trains.Create(e.ctx, "agent1v", trainRequest("cust1v", 10))
    wantValidation(t, err)

    _, err = e.trains.Create(e.ctx, "agent1v", trainRequest("ghost1v", 10))
    wantErr(t, err, ErrNotFound)

    bad := trainRequest("agent1v", 10)
    bad.EndStation = bad.StartStation
    _, err = e.trains.Create(e.ctx, "agent1v", bad)
    wantValidation(t, err)

    byOwner, err := e.trains.ByOwner(e.ctx, "agent1v")
    if err != nil || len(byOwner) != 1 {
        t.Fatalf("by owner = %v, %v", byOwner, err)
    }
}

func TestUpdateTrain(t *testing.T) {
    e := newEnv(t)
    e.person(t, "agent1v", model.UserTypeTravelAgent)
    e.person(t, "agent2v", model.UserTypeTravelAgent)
    e.person(t, "back1v", model.UserTypeBackoffice)
    tr := e.train(t, "agent1v", 50)

    in := trainRequest("agent1v", 40)
    in.Name = "Yal Devi Express"
    _, err := e.trains.Update(e.ctx, "agent2v", tr.ID, in)
    wantErr(t, err, ErrForbidden)

    out, err := e.trains.Update(e.ctx, "back1v", tr.ID, in)
    if err != nil {
        t.Fatal(err)
    }
    if out.Name != "Yal Devi Express" || e.seatsOf(t, tr.ID) != 40 {
        t.Fatalf("updated = %+v", out)
    }

    _, err = e.trains.Update(e.ctx, "agent1v", "missing", in)
    wantErr(t, err, ErrNotFound)
}

func TestDeleteTrain(t *testing.T) {
    e := newEnv(t)
    e.person(t, "agent1v", model.UserTypeTravelAgent)
    e.person(t, "agent2v", model.UserTypeTravelAgent)
    e.person(t, "back1v", model.UserTypeBackoffice)
    e.person(t, "cust1v", model.UserTypeCustomer)
    busy := e.train(t, "agent1v", 10)
    idle := e.train(t, "agent1v", 10)

    r, err := e.reservations.Create(e.ctx, "cust1v", validator.ReservationRequest{TrainID: busy.ID, UserNIC: "cust1v", Seats: 1})
    if err != nil {
        t.Fatal(err)
    }

    wantErr(t, e.trains.Delete(e.ctx, "agent2v", idle.ID), ErrForbidden)
    wantErr(t, e.trains.Delete(e.ctx, "agent1v", busy.ID), ErrConflict)
    wantErr(t, e.trains.Delete(e.ctx, "agent1v", "missing"), ErrNotFound)

    if err := e.trains.Delete(e.ctx, "agent1v", idle.ID); err != nil {
        t.Fatalf("owner delete: %v", err)
    }
    if err := e.reservations.Delete(e.ctx, "cust1v", r.ID); err != nil {
        t.Fatal(err)
    }
    if err := e.trains.Delete(e.ctx, "back1v", busy.ID); err != nil {
        t.Fatalf("backoffice delete: %v", err)
    }
}
