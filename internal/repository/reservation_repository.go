package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/google/uuid"

    "github.com/iliyamo/train-ticket-reservation/internal/model"
)

// ReservationRepo is the gateway for the `reservations` table, keyed by ID
// with lookups by user NIC and by train.
type ReservationRepo struct{ q Querier }

const reservationColumns = "id, train_id, user_nic, seats"

func collectReservations(rows *sql.Rows) ([]model.Reservation, error) {
    defer rows.Close()
    out := []model.Reservation{}
    for rows.Next() {
        var res model.Reservation
        if err := rows.Scan(&res.ID, &res.TrainID, &res.UserNIC, &res.Seats); err != nil {
            return nil, err
        }
        out = append(out, res)
    }
    return out, rows.Err()
}

// FindAll returns every reservation.
func (r *ReservationRepo) FindAll(ctx context.Context) ([]model.Reservation, error) {
    rows, err := r.q.QueryContext(ctx, "SELECT "+reservationColumns+" FROM reservations ORDER BY user_nic, id")
    if err != nil {
        return nil, err
    }
    return collectReservations(rows)
}

// FindByKey fetches a reservation by ID.
func (r *ReservationRepo) FindByKey(ctx context.Context, id string) (*model.Reservation, error) {
    var res model.Reservation
    err := r.q.QueryRowContext(ctx,
        "SELECT "+reservationColumns+" FROM reservations WHERE id = ? LIMIT 1", id).
        Scan(&res.ID, &res.TrainID, &res.UserNIC, &res.Seats)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrNotFound
        }
        return nil, err
    }
    return &res, nil
}

// FindByNIC returns the reservations held by a user.
func (r *ReservationRepo) FindByNIC(ctx context.Context, nic string) ([]model.Reservation, error) {
    rows, err := r.q.QueryContext(ctx,
        "SELECT "+reservationColumns+" FROM reservations WHERE user_nic = ? ORDER BY id", nic)
    if err != nil {
        return nil, err
    }
    return collectReservations(rows)
}

// FindByTrain returns the reservations against a train.
func (r *ReservationRepo) FindByTrain(ctx context.Context, trainID string) ([]model.Reservation, error) {
    rows, err := r.q.QueryContext(ctx,
        "SELECT "+reservationColumns+" FROM reservations WHERE train_id = ? ORDER BY id", trainID)
    if err != nil {
        return nil, err
    }
    return collectReservations(rows)
}

// CountByTrain counts the reservations referencing trainID.
func (r *ReservationRepo) CountByTrain(ctx context.Context, trainID string) (int, error) {
    var n int
    err := r.q.QueryRowContext(ctx, "SELECT COUNT(*) FROM reservations WHERE train_id = ?", trainID).Scan(&n)
    return n, err
}

// Count returns the number of reservations.
func (r *ReservationRepo) Count(ctx context.Context) (int, error) {
    var n int
    err := r.q.QueryRowContext(ctx, "SELECT COUNT(*) FROM reservations").Scan(&n)
    return n, err
}

// Insert stores a reservation and fills in its generated ID.
func (r *ReservationRepo) Insert(ctx context.Context, res *model.Reservation) error {
    if res.ID == "" {
        res.ID = uuid.NewString()
    }
    _, err := r.q.ExecContext(ctx,
        "INSERT INTO reservations (id, train_id, user_nic, seats) VALUES (?,?,?,?)",
        res.ID, res.TrainID, res.UserNIC, res.Seats)
    return err
}

// ReplaceByKey overwrites the reservation with the given ID.
func (r *ReservationRepo) ReplaceByKey(ctx context.Context, id string, res model.Reservation) error {
    out, err := r.q.ExecContext(ctx,
        "UPDATE reservations SET train_id = ?, user_nic = ?, seats = ? WHERE id = ?",
        res.TrainID, res.UserNIC, res.Seats, id)
    if err != nil {
        return err
    }
    return requireRow(out)
}

// DeleteByKey removes the reservation with the given ID.
func (r *ReservationRepo) DeleteByKey(ctx context.Context, id string) error {
    out, err := r.q.ExecContext(ctx, "DELETE FROM reservations WHERE id = ?", id)
    if err != nil {
        return err
    }
    return requireRow(out)
}
