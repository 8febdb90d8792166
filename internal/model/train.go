package model

// Train is a scheduled service stored in the `trains` table.  Seats is the
// number of seats still available; reservations move seats between the
// train and themselves.
//
// Fields:
//  ID           – generated identifier (UUID).
//  Name         – display name of the service.
//  Type         – Express, Intercity, Night Mail or Local.
//  StartStation – departure district.
//  EndStation   – arrival district, never equal to StartStation.
//  StartTime    – departure time of day, "HH:MM".
//  EndTime      – arrival time of day, "HH:MM", not before StartTime.
//  Price        – ticket price, non-negative.
//  Districts    – ordered intermediate districts, at least two.
//  Seats        – available seats, non-negative.
//  OwnerNIC     – NIC of the non-customer user who manages the train.
//  IsActive     – whether the train is offered.
type Train struct {
    ID           string    `json:"id"`            // trains.id
    Name         string    `json:"train_name"`    // trains.train_name
    Type         TrainType `json:"train_type"`    // trains.train_type
    StartStation District  `json:"start_station"` // trains.start_station
    EndStation   District  `json:"end_station"`   // trains.end_station
    StartTime    string    `json:"start_time"`    // trains.start_time
    EndTime      string    `json:"end_time"`      // trains.end_time
    Price        int       `json:"price"`         // trains.price
    Districts    Districts `json:"districts"`     // trains.districts (JSON array)
    Seats        int       `json:"seats"`         // trains.seats
    OwnerNIC     string    `json:"owner_nic"`     // trains.owner_nic
    IsActive     bool      `json:"is_active"`     // trains.is_active
}
