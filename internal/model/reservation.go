package model

// Reservation books Seats seats on a train for a user, stored in the
// `reservations` table.
//
// Fields:
//  ID      – generated identifier (UUID).
//  TrainID – train the seats are taken from.
//  UserNIC – NIC of the traveller.
//  Seats   – number of seats held, always positive.
type Reservation struct {
    ID      string `json:"id"`       // reservations.id
    TrainID string `json:"train_id"` // reservations.train_id
    UserNIC string `json:"user_nic"` // reservations.user_nic
    Seats   int    `json:"seats"`    // reservations.seats
}

// DashboardCounts aggregates entity counts for the back office dashboard.
type DashboardCounts struct {
    CustomerCount    int `json:"customer_count"`
    TravelAgentCount int `json:"travel_agent_count"`
    TrainCount       int `json:"train_count"`
    ReservationCount int `json:"reservation_count"`
}
