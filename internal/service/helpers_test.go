package service

import (
    "context"
    "errors"
    "sync"
    "testing"
    "time"

    "github.com/iliyamo/train-ticket-reservation/internal/database"
    "github.com/iliyamo/train-ticket-reservation/internal/model"
    "github.com/iliyamo/train-ticket-reservation/internal/policy"
    "github.com/iliyamo/train-ticket-reservation/internal/queue"
    "github.com/iliyamo/train-ticket-reservation/internal/repository"
    "github.com/iliyamo/train-ticket-reservation/internal/validator"
)

// recorder collects published events.
type recorder struct {
    mu     sync.Mutex
    events []queue.ReservationEvent
    err    error
}

func (r *recorder) Publish(_ context.Context, ev queue.ReservationEvent) error {
    r.mu.Lock()
    defer r.mu.Unlock()
    r.events = append(r.events, ev)
    return r.err
}

// adminNIC is granted admin when it registers.
const adminNIC = "900000000v"

type env struct {
    ctx          context.Context
    store        *repository.Store
    auth         *AuthService
    users        *UserService
    trains       *TrainService
    reservations *ReservationService
    dashboard    *DashboardService
    events       *recorder
    clock        time.Time
}

func newEnv(t *testing.T) *env {
    t.Helper()
    ctx := context.Background()
    db, err := database.OpenSQLite(":memory:")
    if err != nil {
        t.Fatalf("open sqlite: %v", err)
    }
    t.Cleanup(func() { _ = db.Close() })
    if err := database.Migrate(ctx, db, database.DriverSQLite); err != nil {
        t.Fatalf("migrate: %v", err)
    }
    authz, err := policy.New(ctx)
    if err != nil {
        t.Fatalf("policy: %v", err)
    }
    store := repository.NewStore(db)
    e := &env{
        ctx:       ctx,
        store:     store,
        events:    &recorder{},
        clock:     time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
        users:     NewUserService(store, authz),
        trains:    NewTrainService(store, authz),
        dashboard: NewDashboardService(store),
    }
    e.auth = NewAuthService(store, authz, "test-secret", 15*time.Minute).WithAdmins(adminNIC)
    e.auth.now = func() time.Time { return e.clock }
    e.users.now = func() time.Time { return e.clock }
    e.reservations = NewReservationService(store, authz, e.events)
    e.reservations.now = func() time.Time { return e.clock }
    return e
}

// admin registers the bootstrap admin on first use and returns its NIC.
func (e *env) admin(t *testing.T) string {
    t.Helper()
    if _, err := e.store.Logins.FindByKey(e.ctx, adminNIC); err == nil {
        return adminNIC
    }
    if _, err := e.auth.Register(e.ctx, validator.CredentialsRequest{NIC: adminNIC, Password: "password1"}); err != nil {
        t.Fatalf("register admin: %v", err)
    }
    return adminNIC
}

// person registers a login and a user profile.  Customers create their own
// profile; staff profiles are created by the admin.
func (e *env) person(t *testing.T, nic string, ut model.UserType) {
    t.Helper()
    if _, err := e.auth.Register(e.ctx, validator.CredentialsRequest{NIC: nic, Password: "password1"}); err != nil {
        t.Fatalf("register %s: %v", nic, err)
    }
    requester := nic
    if ut != model.UserTypeCustomer {
        requester = e.admin(t)
    }
    if _, err := e.users.Create(e.ctx, requester, validator.UserRequest{
        NIC: nic, Name: "User " + nic, Age: 30, UserType: ut.String(), Gender: "Female",
    }); err != nil {
        t.Fatalf("create user %s: %v", nic, err)
    }
}

func trainRequest(owner string, seats int) validator.TrainRequest {
    return validator.TrainRequest{
        Name:         "Yal Devi",
        Type:         "Intercity",
        StartStation: "Colombo",
        EndStation:   "Jaffna",
        StartTime:    "06:00",
        EndTime:      "13:00",
        Price:        2000,
        Districts:    []string{"Colombo", "Kurunegala", "Anuradhapura", "Vavuniya", "Jaffna"},
        Seats:        seats,
        OwnerNIC:     owner,
    }
}

func (e *env) train(t *testing.T, owner string, seats int) *model.Train {
    t.Helper()
    tr, err := e.trains.Create(e.ctx, owner, trainRequest(owner, seats))
    if err != nil {
        t.Fatalf("create train: %v", err)
    }
    return tr
}

func (e *env) seatsOf(t *testing.T, id string) int {
    t.Helper()
    tr, err := e.store.Trains.FindByKey(e.ctx, id)
    if err != nil {
        t.Fatalf("load train %s: %v", id, err)
    }
    return tr.Seats
}

// reserved sums the seats of every reservation against a train.
func (e *env) reserved(t *testing.T, id string) int {
    t.Helper()
    rs, err := e.store.Reservations.FindByTrain(e.ctx, id)
    if err != nil {
        t.Fatal(err)
    }
    n := 0
    for _, r := range rs {
        n += r.Seats
    }
    return n
}

func wantErr(t *testing.T, err, kind error) {
    t.Helper()
    if !errors.Is(err, kind) {
        t.Fatalf("err = %v, want %v", err, kind)
    }
}

func wantValidation(t *testing.T, err error) *ValidationError {
    t.Helper()
    var ve *ValidationError
    if !errors.As(err, &ve) {
        t.Fatalf("err = %v, want *ValidationError", err)
    }
    return ve
}
