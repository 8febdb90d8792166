package validator

import (
    "strings"

    "github.com/iliyamo/train-ticket-reservation/internal/model"
)

// Request bodies as they arrive on the wire.  Enumerations stay strings here
// so that a bad value yields a field message instead of a decode failure;
// the To* helpers convert a validated request into the domain type.

// CredentialsRequest is the body of register and login.
type CredentialsRequest struct {
    NIC      string `json:"nic"`
    Password string `json:"password"`
}

// ActivateRequest is the body of the activate endpoint.
type ActivateRequest struct {
    NIC      string `json:"nic"`
    IsActive bool   `json:"is_active"`
    IsAdmin  bool   `json:"is_admin"`
}

// TokenLoginRequest is the body of token login.  The NIC is optional when a
// bearer token is supplied.
type TokenLoginRequest struct {
    NIC string `json:"nic"`
}

// UserRequest is the body of user creation.
type UserRequest struct {
    NIC      string `json:"nic"`
    Name     string `json:"name"`
    Age      int    `json:"age"`
    UserType string `json:"user_type"`
    Gender   string `json:"gender"`
    IsActive *bool  `json:"is_active"`
}

// ToUser converts a validated request.
func (r UserRequest) ToUser() model.User {
    ut, _ := model.ParseUserType(r.UserType)
    g, _ := model.ParseGender(r.Gender)
    active := true
    if r.IsActive != nil {
        active = *r.IsActive
    }
    return model.User{
        NIC:      strings.TrimSpace(r.NIC),
        Name:     strings.TrimSpace(r.Name),
        Age:      r.Age,
        UserType: ut,
        Gender:   g,
        IsActive: active,
    }
}

// UserPatchRequest is the body of a user update.  Absent fields keep their
// stored value.
type UserPatchRequest struct {
    Name     *string `json:"name"`
    Age      *int    `json:"age"`
    UserType *string `json:"user_type"`
    Gender   *string `json:"gender"`
    IsActive *bool   `json:"is_active"`
}

// ToPatch converts a validated request.
func (r UserPatchRequest) ToPatch() model.UserPatch {
    p := model.UserPatch{Age: r.Age, IsActive: r.IsActive}
    if r.Name != nil {
        n := strings.TrimSpace(*r.Name)
        p.Name = &n
    }
    if r.UserType != nil {
        ut, _ := model.ParseUserType(*r.UserType)
        p.UserType = &ut
    }
    if r.Gender != nil {
        g, _ := model.ParseGender(*r.Gender)
        p.Gender = &g
    }
    return p
}

// TrainRequest is the body of train creation and update.
type TrainRequest struct {
    Name         string   `json:"train_name"`
    Type         string   `json:"train_type"`
    StartStation string   `json:"start_station"`
    EndStation   string   `json:"end_station"`
    StartTime    string   `json:"start_time"`
    EndTime      string   `json:"end_time"`
    Price        int      `json:"price"`
    Districts    []string `json:"districts"`
    Seats        int      `json:"seats"`
    OwnerNIC     string   `json:"owner_nic"`
    IsActive     *bool    `json:"is_active"`
}

// ToTrain converts a validated request.
func (r TrainRequest) ToTrain() model.Train {
    tt, _ := model.ParseTrainType(r.Type)
    start, _ := model.ParseDistrict(r.StartStation)
    end, _ := model.ParseDistrict(r.EndStation)
    ds := make(model.Districts, 0, len(r.Districts))
    for _, name := range r.Districts {
        d, _ := model.ParseDistrict(name)
        ds = append(ds, d)
    }
    active := true
    if r.IsActive != nil {
        active = *r.IsActive
    }
    return model.Train{
        Name:         strings.TrimSpace(r.Name),
        Type:         tt,
        StartStation: start,
        EndStation:   end,
        StartTime:    r.StartTime,
        EndTime:      r.EndTime,
        Price:        r.Price,
        Districts:    ds,
        Seats:        r.Seats,
        OwnerNIC:     strings.TrimSpace(r.OwnerNIC),
        IsActive:     active,
    }
}

// ReservationRequest is the body of reservation creation and edit.
type ReservationRequest struct {
    TrainID string `json:"train_id"`
    UserNIC string `json:"user_nic"`
    Seats   int    `json:"seats"`
}
