package service

import (
    "testing"

    "github.com/iliyamo/train-ticket-reservation/internal/model"
    "github.com/iliyamo/train-ticket-reservation/internal/validator"
)

func TestCreateUserRequiresActiveLogin(t *testing.T) {
    e := newEnv(t)
    in := validator.UserRequest{NIC: "111v", Name: "Kamal", Age: 40, UserType: "customer", Gender: "male"}

    _, err := e.users.Create(e.ctx, "111v", in)
    wantErr(t, err, ErrNotFound)

    if _, err := e.auth.Register(e.ctx, validator.CredentialsRequest{NIC: "111v", Password: "password1"}); err != nil {
        t.Fatal(err)
    }
    l, _ := e.store.Logins.FindByKey(e.ctx, "111v")
    l.IsActive = false
    if err := e.store.Logins.ReplaceByKey(e.ctx, "111v", *l); err != nil {
        t.Fatal(err)
    }
    _, err = e.users.Create(e.ctx, "111v", in)
    wantErr(t, err, ErrForbidden)

    l.IsActive = true
    _ = e.store.Logins.ReplaceByKey(e.ctx, "111v", *l)
    u, err := e.users.Create(e.ctx, "111v", in)
    if err != nil {
        t.Fatal(err)
    }
    if u.UserType != model.UserTypeCustomer || u.Gender != model.GenderMale {
        t.Fatalf("user = %+v", u)
    }
    _, err = e.users.Create(e.ctx, "111v", in)
    wantErr(t, err, ErrConflict)

    _, err = e.users.Create(e.ctx, "111v", validator.UserRequest{NIC: "111v"})
    wantValidation(t, err)
}

func TestCreateUserPermissions(t *testing.T) {
    e := newEnv(t)
    e.person(t, "c1v", model.UserTypeCustomer)
    e.person(t, "a1v", model.UserTypeTravelAgent)
    e.person(t, "b1v", model.UserTypeBackoffice)
    for _, nic := range []string{"new1v", "new2v", "new3v"} {
        if _, err := e.auth.Register(e.ctx, validator.CredentialsRequest{NIC: nic, Password: "password1"}); err != nil {
            t.Fatal(err)
        }
    }
    profile := func(nic, ut string) validator.UserRequest {
        return validator.UserRequest{NIC: nic, Name: "N " + nic, Age: 30, UserType: ut, Gender: "Male"}
    }

    _, err := e.users.Create(e.ctx, "new1v", profile("new1v", "Backoffice"))
    wantErr(t, err, ErrForbidden)
    _, err = e.users.Create(e.ctx, "new1v", profile("new1v", "TravelAgent"))
    wantErr(t, err, ErrForbidden)
    _, err = e.users.Create(e.ctx, "c1v", profile("new1v", "Customer"))
    wantErr(t, err, ErrForbidden)
    _, err = e.users.Create(e.ctx, "a1v", profile("new1v", "Customer"))
    wantErr(t, err, ErrForbidden)

    if _, err := e.users.Create(e.ctx, "b1v", profile("new1v", "TravelAgent")); err != nil {
        t.Fatalf("backoffice creates agent: %v", err)
    }
    if _, err := e.users.Create(e.ctx, e.admin(t), profile("new2v", "Backoffice")); err != nil {
        t.Fatalf("admin creates backoffice: %v", err)
    }
    if _, err := e.users.Create(e.ctx, "new3v", profile("new3v", "Customer")); err != nil {
        t.Fatalf("self-service customer: %v", err)
    }
}

func TestPatchUserKeepsAbsentFields(t *testing.T) {
    e := newEnv(t)
    e.person(t, "111v", model.UserTypeCustomer)

    age := 41
    out, err := e.users.Patch(e.ctx, "111v", "111v", validator.UserPatchRequest{Age: &age})
    if err != nil {
        t.Fatal(err)
    }
    if out.Age != 41 || out.Name != "User 111v" || out.Gender != model.GenderFemale {
        t.Fatalf("patched = %+v", out)
    }
    stored, _ := e.users.Get(e.ctx, "111v")
    if *stored != *out {
        t.Fatalf("stored %+v, returned %+v", stored, out)
    }

    bad := "Robot"
    _, err = e.users.Patch(e.ctx, "111v", "111v", validator.UserPatchRequest{Gender: &bad})
    wantValidation(t, err)

    _, err = e.users.Patch(e.ctx, "111v", "222v", validator.UserPatchRequest{Age: &age})
    wantErr(t, err, ErrNotFound)
}

func TestPatchUserPermissions(t *testing.T) {
    e := newEnv(t)
    e.person(t, "c1v", model.UserTypeCustomer)
    e.person(t, "c2v", model.UserTypeCustomer)
    e.person(t, "a1v", model.UserTypeTravelAgent)
    e.person(t, "b1v", model.UserTypeBackoffice)

    staff := "Backoffice"
    _, err := e.users.Patch(e.ctx, "c1v", "c1v", validator.UserPatchRequest{UserType: &staff})
    wantErr(t, err, ErrForbidden)
    inactive := false
    _, err = e.users.Patch(e.ctx, "c1v", "c1v", validator.UserPatchRequest{IsActive: &inactive})
    wantErr(t, err, ErrForbidden)

    name := "Someone Else"
    _, err = e.users.Patch(e.ctx, "c1v", "c2v", validator.UserPatchRequest{Name: &name})
    wantErr(t, err, ErrForbidden)
    _, err = e.users.Patch(e.ctx, "a1v", "c2v", validator.UserPatchRequest{Name: &name})
    wantErr(t, err, ErrForbidden)

    stored, _ := e.users.Get(e.ctx, "c1v")
    if stored.UserType != model.UserTypeCustomer {
        t.Fatalf("denied patch changed type to %v", stored.UserType)
    }

    same := "customer"
    if _, err := e.users.Patch(e.ctx, "c1v", "c1v", validator.UserPatchRequest{UserType: &same, Name: &name}); err != nil {
        t.Fatalf("restating own type is not a change: %v", err)
    }
    out, err := e.users.Patch(e.ctx, "b1v", "c2v", validator.UserPatchRequest{UserType: &staff})
    if err != nil {
        t.Fatal(err)
    }
    if out.UserType != model.UserTypeBackoffice {
        t.Fatalf("patched = %+v", out)
    }
}

func TestDeleteUserRemovesLogin(t *testing.T) {
    e := newEnv(t)
    e.person(t, "111v", model.UserTypeCustomer)

    if err := e.users.Delete(e.ctx, "111v", "111v"); err != nil {
        t.Fatal(err)
    }
    _, err := e.users.Get(e.ctx, "111v")
    wantErr(t, err, ErrNotFound)
    if _, err := e.store.Logins.FindByKey(e.ctx, "111v"); err == nil {
        t.Fatal("login survived user deletion")
    }
    wantErr(t, e.users.Delete(e.ctx, e.admin(t), "111v"), ErrNotFound)
}

func TestDeleteUserPermissions(t *testing.T) {
    e := newEnv(t)
    e.person(t, "c1v", model.UserTypeCustomer)
    e.person(t, "c2v", model.UserTypeCustomer)
    e.person(t, "a1v", model.UserTypeTravelAgent)
    e.person(t, "b1v", model.UserTypeBackoffice)

    wantErr(t, e.users.Delete(e.ctx, "c1v", "c2v"), ErrForbidden)
    wantErr(t, e.users.Delete(e.ctx, "a1v", "c2v"), ErrForbidden)
    wantErr(t, e.users.Delete(e.ctx, "c1v", "a1v"), ErrForbidden)
    if _, err := e.users.Get(e.ctx, "c2v"); err != nil {
        t.Fatalf("denied delete removed the user: %v", err)
    }
    if err := e.users.Delete(e.ctx, "b1v", "c2v"); err != nil {
        t.Fatal(err)
    }
}

func TestDeleteUserRevokesSessions(t *testing.T) {
    e := newEnv(t)
    e.person(t, "c1v", model.UserTypeCustomer)
    e.person(t, "b1v", model.UserTypeBackoffice)
    res, err := e.auth.Login(e.ctx, validator.CredentialsRequest{NIC: "c1v", Password: "password1"})
    if err != nil {
        t.Fatal(err)
    }

    if err := e.users.Delete(e.ctx, "b1v", "c1v"); err != nil {
        t.Fatal(err)
    }
    _, err = e.auth.ValidateSession(e.ctx, res.SessionID)
    wantErr(t, err, ErrSessionExpired)
    if _, err := e.store.Sessions.FindLatestByNIC(e.ctx, "c1v"); err == nil {
        t.Fatal("an open session survived user deletion")
    }
}

func TestUsersByTypeAndDashboard(t *testing.T) {
    e := newEnv(t)
    e.person(t, "c1v", model.UserTypeCustomer)
    e.person(t, "c2v", model.UserTypeCustomer)
    e.person(t, "a1v", model.UserTypeTravelAgent)
    tr := e.train(t, "a1v", 10)
    if _, err := e.reservations.Create(e.ctx, "c1v", validator.ReservationRequest{TrainID: tr.ID, UserNIC: "c1v", Seats: 2}); err != nil {
        t.Fatal(err)
    }

    cs, err := e.users.ByType(e.ctx, "CUSTOMER")
    if err != nil || len(cs) != 2 {
        t.Fatalf("customers = %v, %v", cs, err)
    }
    _, err = e.users.ByType(e.ctx, "pilot")
    wantValidation(t, err)

    got, err := e.dashboard.Counts(e.ctx)
    if err != nil {
        t.Fatal(err)
    }
    want := model.DashboardCounts{CustomerCount: 2, TravelAgentCount: 1, TrainCount: 1, ReservationCount: 1}
    if *got != want {
        t.Fatalf("counts = %+v, want %+v", *got, want)
    }
}
