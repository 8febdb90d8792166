package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// District is one entry of the fixed 25-district gazetteer used for
// stations and intermediate stops.
type District uint8

const (
	DistrictUnknown District = iota
	Ampara
	Anuradhapura
	Badulla
	Batticaloa
	Colombo
	Galle
	Gampaha
	Hambantota
	Jaffna
	Kalutara
	Kandy
	Kegalle
	Kilinochchi
	Kurunegala
	Mannar
	Matale
	Matara
	Monaragala
	Mullaitivu
	NuwaraEliya
	Polonnaruwa
	Puttalam
	Ratnapura
	Trincomalee
	Vavuniya
)

var districtNames = []string{
	"",
	"Ampara",
	"Anuradhapura",
	"Badulla",
	"Batticaloa",
	"Colombo",
	"Galle",
	"Gampaha",
	"Hambantota",
	"Jaffna",
	"Kalutara",
	"Kandy",
	"Kegalle",
	"Kilinochchi",
	"Kurunegala",
	"Mannar",
	"Matale",
	"Matara",
	"Monaragala",
	"Mullaitivu",
	"Nuwara Eliya",
	"Polonnaruwa",
	"Puttalam",
	"Ratnapura",
	"Trincomalee",
	"Vavuniya",
}

// DistrictNames returns the gazetteer in alphabetical order.
func DistrictNames() []string { return append([]string(nil), districtNames[1:]...) }

// ParseDistrict resolves a district name against the gazetteer.
func ParseDistrict(s string) (District, bool) {
	i, ok := lookupName(districtNames, s)
	return District(i), ok
}

func (d District) String() string { return nameOf(districtNames, int(d)) }

func (d District) Valid() bool { return d > DistrictUnknown && int(d) < len(districtNames) }

func (d District) MarshalJSON() ([]byte, error) { return json.Marshal(d.String()) }

func (d *District) UnmarshalJSON(data []byte) error {
	i, err := unmarshalName(districtNames, "district", data)
	*d = District(i)
	return err
}

func (d District) Value() (driver.Value, error) { return d.String(), nil }

func (d *District) Scan(src any) error {
	i, err := scanName(districtNames, "district", src)
	*d = District(i)
	return err
}

// Districts is the ordered list of intermediate stops of a train.  It is
// persisted as a JSON array of names.
type Districts []District

func (ds Districts) Value() (driver.Value, error) {
	if ds == nil {
		ds = Districts{}
	}
	b, err := json.Marshal(ds)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (ds *Districts) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*ds = Districts{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("model: cannot scan %T into districts", src)
	}
	var out Districts
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("model: decode districts: %w", err)
	}
	*ds = out
	return nil
}

// Names renders the list as plain strings.
func (ds Districts) Names() []string {
	out := make([]string, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.String())
	}
	return out
}
