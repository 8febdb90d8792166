package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/google/uuid"

    "github.com/iliyamo/train-ticket-reservation/internal/model"
)

// TrainRepo is the gateway for the `trains` table, keyed by ID.
type TrainRepo struct{ q Querier }

const trainColumns = "id, train_name, train_type, start_station, end_station, start_time, end_time, price, districts, seats, owner_nic, is_active"

func scanTrain(s rowScanner) (model.Train, error) {
    var t model.Train
    err := s.Scan(&t.ID, &t.Name, &t.Type, &t.StartStation, &t.EndStation, &t.StartTime, &t.EndTime,
        &t.Price, &t.Districts, &t.Seats, &t.OwnerNIC, &t.IsActive)
    return t, err
}

func collectTrains(rows *sql.Rows) ([]model.Train, error) {
    defer rows.Close()
    out := []model.Train{}
    for rows.Next() {
        t, err := scanTrain(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, t)
    }
    return out, rows.Err()
}

// FindAll returns every train ordered by departure time then name.
func (r *TrainRepo) FindAll(ctx context.Context) ([]model.Train, error) {
    rows, err := r.q.QueryContext(ctx, "SELECT "+trainColumns+" FROM trains ORDER BY start_time, train_name")
    if err != nil {
        return nil, err
    }
    return collectTrains(rows)
}

// FindByKey fetches a train by ID.
func (r *TrainRepo) FindByKey(ctx context.Context, id string) (*model.Train, error) {
    row := r.q.QueryRowContext(ctx, "SELECT "+trainColumns+" FROM trains WHERE id = ? LIMIT 1", id)
    t, err := scanTrain(row)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrNotFound
        }
        return nil, err
    }
    return &t, nil
}

// FindByOwner returns the trains managed by ownerNIC.
func (r *TrainRepo) FindByOwner(ctx context.Context, ownerNIC string) ([]model.Train, error) {
    rows, err := r.q.QueryContext(ctx,
        "SELECT "+trainColumns+" FROM trains WHERE owner_nic = ? ORDER BY start_time, train_name", ownerNIC)
    if err != nil {
        return nil, err
    }
    return collectTrains(rows)
}

// Count returns the number of trains.
func (r *TrainRepo) Count(ctx context.Context) (int, error) {
    var n int
    err := r.q.QueryRowContext(ctx, "SELECT COUNT(*) FROM trains").Scan(&n)
    return n, err
}

// Insert stores a new train and fills in its generated ID.
func (r *TrainRepo) Insert(ctx context.Context, t *model.Train) error {
    if t.ID == "" {
        t.ID = uuid.NewString()
    }
    _, err := r.q.ExecContext(ctx,
        "INSERT INTO trains ("+trainColumns+") VALUES (?,?,?,?,?,?,?,?,?,?,?,?)",
        t.ID, t.Name, t.Type, t.StartStation, t.EndStation, t.StartTime, t.EndTime,
        t.Price, t.Districts, t.Seats, t.OwnerNIC, t.IsActive)
    return err
}

// ReplaceByKey overwrites every column of the train with the given ID.
func (r *TrainRepo) ReplaceByKey(ctx context.Context, id string, t model.Train) error {
    res, err := r.q.ExecContext(ctx,
        `UPDATE trains SET train_name = ?, train_type = ?, start_station = ?, end_station = ?,
            start_time = ?, end_time = ?, price = ?, districts = ?, seats = ?, owner_nic = ?, is_active = ?
         WHERE id = ?`,
        t.Name, t.Type, t.StartStation, t.EndStation, t.StartTime, t.EndTime,
        t.Price, t.Districts, t.Seats, t.OwnerNIC, t.IsActive, id)
    if err != nil {
        return err
    }
    return requireRow(res)
}

// AdjustSeats adds delta (which may be negative) to the train's available
// seats.  The update only applies when the result stays non-negative, so
// two concurrent reservations cannot oversell the train; a refused update
// yields ErrConflict.
func (r *TrainRepo) AdjustSeats(ctx context.Context, id string, delta int) error {
    res, err := r.q.ExecContext(ctx,
        "UPDATE trains SET seats = seats + ? WHERE id = ? AND seats + ? >= 0", delta, id, delta)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrConflict
    }
    return nil
}

// DeleteByKey removes the train with the given ID.
func (r *TrainRepo) DeleteByKey(ctx context.Context, id string) error {
    res, err := r.q.ExecContext(ctx, "DELETE FROM trains WHERE id = ?", id)
    if err != nil {
        return err
    }
    return requireRow(res)
}
