package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/google/uuid"

    "github.com/iliyamo/train-ticket-reservation/internal/model"
)

// UserRepo is the gateway for the `users` table, keyed by NIC.
type UserRepo struct{ q Querier }

const userColumns = "id, nic, name, age, user_type, gender, is_active"

func scanUser(s rowScanner) (model.User, error) {
    var u model.User
    err := s.Scan(&u.ID, &u.NIC, &u.Name, &u.Age, &u.UserType, &u.Gender, &u.IsActive)
    return u, err
}

func collectUsers(rows *sql.Rows) ([]model.User, error) {
    defer rows.Close()
    out := []model.User{}
    for rows.Next() {
        u, err := scanUser(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, u)
    }
    return out, rows.Err()
}

// FindAll returns every user ordered by NIC.
func (r *UserRepo) FindAll(ctx context.Context) ([]model.User, error) {
    rows, err := r.q.QueryContext(ctx, "SELECT "+userColumns+" FROM users ORDER BY nic")
    if err != nil {
        return nil, err
    }
    return collectUsers(rows)
}

// FindByKey fetches a user by NIC.
func (r *UserRepo) FindByKey(ctx context.Context, nic string) (*model.User, error) {
    row := r.q.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE nic = ? LIMIT 1", nic)
    u, err := scanUser(row)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrNotFound
        }
        return nil, err
    }
    return &u, nil
}

// FindByType returns all users of the given type.
func (r *UserRepo) FindByType(ctx context.Context, t model.UserType) ([]model.User, error) {
    rows, err := r.q.QueryContext(ctx, "SELECT "+userColumns+" FROM users WHERE user_type = ? ORDER BY nic", t)
    if err != nil {
        return nil, err
    }
    return collectUsers(rows)
}

// CountByType counts users of the given type.
func (r *UserRepo) CountByType(ctx context.Context, t model.UserType) (int, error) {
    var n int
    err := r.q.QueryRowContext(ctx, "SELECT COUNT(*) FROM users WHERE user_type = ?", t).Scan(&n)
    return n, err
}

// Insert stores a new user and fills in its generated ID.  A duplicate NIC
// yields ErrConflict.
func (r *UserRepo) Insert(ctx context.Context, u *model.User) error {
    if u.ID == "" {
        u.ID = uuid.NewString()
    }
    _, err := r.q.ExecContext(ctx,
        "INSERT INTO users (id, nic, name, age, user_type, gender, is_active) VALUES (?,?,?,?,?,?,?)",
        u.ID, u.NIC, u.Name, u.Age, u.UserType, u.Gender, u.IsActive)
    if err != nil && isDuplicateKey(err) {
        return ErrConflict
    }
    return err
}

// ReplaceByKey overwrites every mutable column of the user with the given
// NIC.  The stored ID and NIC are kept.
func (r *UserRepo) ReplaceByKey(ctx context.Context, nic string, u model.User) error {
    res, err := r.q.ExecContext(ctx,
        "UPDATE users SET name = ?, age = ?, user_type = ?, gender = ?, is_active = ? WHERE nic = ?",
        u.Name, u.Age, u.UserType, u.Gender, u.IsActive, nic)
    if err != nil {
        return err
    }
    return requireRow(res)
}

// DeleteByKey removes the user with the given NIC.
func (r *UserRepo) DeleteByKey(ctx context.Context, nic string) error {
    res, err := r.q.ExecContext(ctx, "DELETE FROM users WHERE nic = ?", nic)
    if err != nil {
        return err
    }
    return requireRow(res)
}

// requireRow maps a zero-row write to ErrNotFound.  The MySQL DSN sets
// clientFoundRows so that an UPDATE leaving a row unchanged still counts it.
func requireRow(res sql.Result) error {
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrNotFound
    }
    return nil
}
