package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// The enumerations in this package are closed sets backed by uint8.  The
// zero value of each type means "unset" and never names a member.  Values
// travel as their canonical name in JSON and in the store; input is matched
// case-insensitively with spaces ignored, so "night mail", "NightMail" and
// "Night Mail" all resolve to TrainTypeNightMail.

// normalizeName folds a raw name into the form used for matching.
func normalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.ReplaceAll(s, " ", "")
}

// lookupName returns the index of raw within names, skipping index 0.
func lookupName(names []string, raw string) (int, bool) {
	key := normalizeName(raw)
	if key == "" {
		return 0, false
	}
	for i := 1; i < len(names); i++ {
		if normalizeName(names[i]) == key {
			return i, true
		}
	}
	return 0, false
}

func nameOf(names []string, i int) string {
	if i <= 0 || i >= len(names) {
		return ""
	}
	return names[i]
}

// scanName converts a driver value into a member index.  NULL and empty
// strings map to the zero value.
func scanName(names []string, kind string, src any) (int, error) {
	var raw string
	switch v := src.(type) {
	case nil:
		return 0, nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return 0, fmt.Errorf("model: cannot scan %T into %s", src, kind)
	}
	if strings.TrimSpace(raw) == "" {
		return 0, nil
	}
	i, ok := lookupName(names, raw)
	if !ok {
		return 0, fmt.Errorf("model: unknown %s %q", kind, raw)
	}
	return i, nil
}

func unmarshalName(names []string, kind string, data []byte) (int, error) {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return 0, fmt.Errorf("model: %s must be a string: %w", kind, err)
	}
	if strings.TrimSpace(raw) == "" {
		return 0, nil
	}
	i, ok := lookupName(names, raw)
	if !ok {
		return 0, fmt.Errorf("model: unknown %s %q", kind, raw)
	}
	return i, nil
}

// UserType classifies a user account.
type UserType uint8

const (
	UserTypeUnknown UserType = iota
	UserTypeBackoffice
	UserTypeTravelAgent
	UserTypeCustomer
)

var userTypeNames = []string{"", "Backoffice", "TravelAgent", "Customer"}

// UserTypeNames lists the members of UserType in declaration order.
func UserTypeNames() []string { return append([]string(nil), userTypeNames[1:]...) }

// ParseUserType resolves a user type name.
func ParseUserType(s string) (UserType, bool) {
	i, ok := lookupName(userTypeNames, s)
	return UserType(i), ok
}

func (t UserType) String() string { return nameOf(userTypeNames, int(t)) }

// Valid reports whether t names a member.
func (t UserType) Valid() bool { return t > UserTypeUnknown && int(t) < len(userTypeNames) }

func (t UserType) MarshalJSON() ([]byte, error) { return json.Marshal(t.String()) }

func (t *UserType) UnmarshalJSON(data []byte) error {
	i, err := unmarshalName(userTypeNames, "user type", data)
	*t = UserType(i)
	return err
}

func (t UserType) Value() (driver.Value, error) { return t.String(), nil }

func (t *UserType) Scan(src any) error {
	i, err := scanName(userTypeNames, "user type", src)
	*t = UserType(i)
	return err
}

// Gender of a user.
type Gender uint8

const (
	GenderUnknown Gender = iota
	GenderMale
	GenderFemale
)

var genderNames = []string{"", "Male", "Female"}

func GenderNames() []string { return append([]string(nil), genderNames[1:]...) }

func ParseGender(s string) (Gender, bool) {
	i, ok := lookupName(genderNames, s)
	return Gender(i), ok
}

func (g Gender) String() string { return nameOf(genderNames, int(g)) }

func (g Gender) Valid() bool { return g > GenderUnknown && int(g) < len(genderNames) }

func (g Gender) MarshalJSON() ([]byte, error) { return json.Marshal(g.String()) }

func (g *Gender) UnmarshalJSON(data []byte) error {
	i, err := unmarshalName(genderNames, "gender", data)
	*g = Gender(i)
	return err
}

func (g Gender) Value() (driver.Value, error) { return g.String(), nil }

func (g *Gender) Scan(src any) error {
	i, err := scanName(genderNames, "gender", src)
	*g = Gender(i)
	return err
}

// TrainType is the service class of a train.
type TrainType uint8

const (
	TrainTypeUnknown TrainType = iota
	TrainTypeExpress
	TrainTypeIntercity
	TrainTypeNightMail
	TrainTypeLocal
)

var trainTypeNames = []string{"", "Express", "Intercity", "Night Mail", "Local"}

func TrainTypeNames() []string { return append([]string(nil), trainTypeNames[1:]...) }

func ParseTrainType(s string) (TrainType, bool) {
	i, ok := lookupName(trainTypeNames, s)
	return TrainType(i), ok
}

func (t TrainType) String() string { return nameOf(trainTypeNames, int(t)) }

func (t TrainType) Valid() bool { return t > TrainTypeUnknown && int(t) < len(trainTypeNames) }

func (t TrainType) MarshalJSON() ([]byte, error) { return json.Marshal(t.String()) }

func (t *TrainType) UnmarshalJSON(data []byte) error {
	i, err := unmarshalName(trainTypeNames, "train type", data)
	*t = TrainType(i)
	return err
}

func (t TrainType) Value() (driver.Value, error) { return t.String(), nil }

func (t *TrainType) Scan(src any) error {
	i, err := scanName(trainTypeNames, "train type", src)
	*t = TrainType(i)
	return err
}
