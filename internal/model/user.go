package model

// User is an identity record stored in the `users` table.  NIC is the
// natural key used by every other entity; ID is the generated document
// identifier.
//
// Fields:
//  ID       – generated identifier (UUID).
//  NIC      – national identity card number, unique.
//  Name     – display name.
//  Age      – age in years, always positive.
//  UserType – Backoffice, TravelAgent or Customer.
//  Gender   – Male or Female.
//  IsActive – whether the account may be used.
type User struct {
    ID       string   `json:"id"`        // users.id
    NIC      string   `json:"nic"`       // users.nic
    Name     string   `json:"name"`      // users.name
    Age      int      `json:"age"`       // users.age
    UserType UserType `json:"user_type"` // users.user_type
    Gender   Gender   `json:"gender"`    // users.gender
    IsActive bool     `json:"is_active"` // users.is_active
}

// UserPatch carries a partial update for a User.  Nil fields keep the
// stored value.
type UserPatch struct {
    Name     *string
    Age      *int
    UserType *UserType
    Gender   *Gender
    IsActive *bool
}

// Apply merges the patch into u field by field and returns the result.
func (p UserPatch) Apply(u User) User {
    if p.Name != nil {
        u.Name = *p.Name
    }
    if p.Age != nil {
        u.Age = *p.Age
    }
    if p.UserType != nil {
        u.UserType = *p.UserType
    }
    if p.Gender != nil {
        u.Gender = *p.Gender
    }
    if p.IsActive != nil {
        u.IsActive = *p.IsActive
    }
    return u
}
