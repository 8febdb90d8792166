package validator

import "github.com/iliyamo/train-ticket-reservation/internal/model"

// Register checks a registration body.
func Register(in CredentialsRequest) Result {
    var r Result
    r.nic("NIC", in.NIC)
    switch {
    case in.Password == "":
        r.add("Password is required.")
    case len(in.Password) < 8:
        r.add("Password must be at least 8 characters.")
    }
    return r
}

// Login checks a password login body.  Only presence is enforced so that a
// short password is reported as bad credentials, not as a format problem.
func Login(in CredentialsRequest) Result {
    var r Result
    r.check(!blank(in.NIC), "NIC is required.")
    r.check(in.Password != "", "Password is required.")
    return r
}

// Activate checks an activation body.
func Activate(in ActivateRequest) Result {
    var r Result
    r.check(!blank(in.NIC), "NIC is required.")
    return r
}

// User checks a user creation body.
func User(in UserRequest) Result {
    var r Result
    r.nic("NIC", in.NIC)
    r.name(in.Name)
    r.age(in.Age)
    r.userType(in.UserType)
    r.gender(in.Gender)
    return r
}

// UserPatch applies the creation rule of every field that is present.
func UserPatch(in UserPatchRequest) Result {
    var r Result
    if in.Name != nil {
        r.name(*in.Name)
    }
    if in.Age != nil {
        r.age(*in.Age)
    }
    if in.UserType != nil {
        r.userType(*in.UserType)
    }
    if in.Gender != nil {
        r.gender(*in.Gender)
    }
    return r
}

func (r *Result) name(v string) { r.check(!blank(v), "Name is required.") }

func (r *Result) age(v int) { r.check(v > 0, "Age must be greater than 0.") }

func (r *Result) userType(v string) {
    _, ok := model.ParseUserType(v)
    r.check(ok, "User type must be one of Backoffice, TravelAgent, Customer.")
}

func (r *Result) gender(v string) {
    _, ok := model.ParseGender(v)
    r.check(ok, "Gender must be Male or Female.")
}

// Train checks a train body.
func Train(in TrainRequest) Result {
    var r Result
    r.check(!blank(in.Name), "Train name is required.")
    _, ok := model.ParseTrainType(in.Type)
    r.check(ok, "Train type is invalid.")

    start, okStart := model.ParseDistrict(in.StartStation)
    end, okEnd := model.ParseDistrict(in.EndStation)
    switch {
    case !okStart || !okEnd:
        r.add("Start station or end station is invalid.")
    case start == end:
        r.add("Start station and end station cannot be the same.")
    }

    if len(in.Districts) < 2 {
        r.add("Train must have at least 2 stations.")
    } else {
        for _, name := range in.Districts {
            if _, ok := model.ParseDistrict(name); !ok {
                r.add("District " + name + " is invalid.")
            }
        }
    }

    st, okST := parseClock(in.StartTime)
    et, okET := parseClock(in.EndTime)
    switch {
    case !okST || !okET:
        r.add("Start time and end time must be HH:MM.")
    case et.Before(st):
        r.add("End time cannot be before start time.")
    }

    r.check(in.Price >= 0, "Price cannot be negative.")
    r.check(in.Seats >= 0, "Seats cannot be negative.")
    r.nic("Owner NIC", in.OwnerNIC)
    return r
}

// Reservation checks a reservation body.
func Reservation(in ReservationRequest) Result {
    var r Result
    r.check(!blank(in.TrainID), "Train id is required.")
    r.nic("User NIC", in.UserNIC)
    r.check(in.Seats > 0, "Seats must be greater than 0.")
    return r
}

// ReservationEdit checks the body of a reservation edit.  The holder of a
// reservation never changes, so user_nic is not required.
func ReservationEdit(in ReservationRequest) Result {
    var r Result
    r.check(!blank(in.TrainID), "Train id is required.")
    r.check(in.Seats > 0, "Seats must be greater than 0.")
    if !blank(in.UserNIC) {
        r.nic("User NIC", in.UserNIC)
    }
    return r
}
