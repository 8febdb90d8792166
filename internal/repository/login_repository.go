package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/google/uuid"

    "github.com/iliyamo/train-ticket-reservation/internal/model"
)

// LoginRepo is the gateway for the `logins` table, keyed by NIC.
type LoginRepo struct{ q Querier }

const loginColumns = "id, nic, password, salt, is_active, is_admin, last_login"

func scanLogin(s rowScanner) (model.Login, error) {
    var l model.Login
    err := s.Scan(&l.ID, &l.NIC, &l.Password, &l.Salt, &l.IsActive, &l.IsAdmin, &l.LastLogin)
    l.LastLogin = l.LastLogin.UTC()
    return l, err
}

// FindAll returns every login ordered by NIC.
func (r *LoginRepo) FindAll(ctx context.Context) ([]model.Login, error) {
    rows, err := r.q.QueryContext(ctx, "SELECT "+loginColumns+" FROM logins ORDER BY nic")
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := []model.Login{}
    for rows.Next() {
        l, err := scanLogin(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, l)
    }
    return out, rows.Err()
}

// FindByKey fetches the login for a NIC.
func (r *LoginRepo) FindByKey(ctx context.Context, nic string) (*model.Login, error) {
    row := r.q.QueryRowContext(ctx, "SELECT "+loginColumns+" FROM logins WHERE nic = ? LIMIT 1", nic)
    l, err := scanLogin(row)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrNotFound
        }
        return nil, err
    }
    return &l, nil
}

// Insert stores a new login.  A second login for the same NIC yields
// ErrConflict.
func (r *LoginRepo) Insert(ctx context.Context, l *model.Login) error {
    if l.ID == "" {
        l.ID = uuid.NewString()
    }
    _, err := r.q.ExecContext(ctx,
        "INSERT INTO logins (id, nic, password, salt, is_active, is_admin, last_login) VALUES (?,?,?,?,?,?,?)",
        l.ID, l.NIC, l.Password, l.Salt, l.IsActive, l.IsAdmin, l.LastLogin.UTC())
    if err != nil && isDuplicateKey(err) {
        return ErrConflict
    }
    return err
}

// ReplaceByKey overwrites the login stored for nic.
func (r *LoginRepo) ReplaceByKey(ctx context.Context, nic string, l model.Login) error {
    res, err := r.q.ExecContext(ctx,
        "UPDATE logins SET password = ?, salt = ?, is_active = ?, is_admin = ?, last_login = ? WHERE nic = ?",
        l.Password, l.Salt, l.IsActive, l.IsAdmin, l.LastLogin.UTC(), nic)
    if err != nil {
        return err
    }
    return requireRow(res)
}

// DeleteByKey removes the login for nic.
func (r *LoginRepo) DeleteByKey(ctx context.Context, nic string) error {
    res, err := r.q.ExecContext(ctx, "DELETE FROM logins WHERE nic = ?", nic)
    if err != nil {
        return err
    }
    return requireRow(res)
}
