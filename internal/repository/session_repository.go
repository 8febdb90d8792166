package repository

import (
    "context"
    "database/sql"
    "errors"
    "time"

    "github.com/google/uuid"

    "github.com/iliyamo/train-ticket-reservation/internal/model"
)

// SessionRepo persists login sessions.  Validity (expiry, revocation) is
// judged by the caller against its own clock.
type SessionRepo struct{ q Querier }

const sessionColumns = "id, nic, issued_at, expires_at, revoked_at"

func scanSession(s rowScanner) (model.Session, error) {
    var (
        out     model.Session
        revoked sql.NullTime
    )
    if err := s.Scan(&out.ID, &out.NIC, &out.IssuedAt, &out.ExpiresAt, &revoked); err != nil {
        return out, err
    }
    out.IssuedAt = out.IssuedAt.UTC()
    out.ExpiresAt = out.ExpiresAt.UTC()
    if revoked.Valid {
        t := revoked.Time.UTC()
        out.RevokedAt = &t
    }
    return out, nil
}

// Insert stores a new session.
func (r *SessionRepo) Insert(ctx context.Context, s *model.Session) error {
    if s.ID == "" {
        s.ID = uuid.NewString()
    }
    _, err := r.q.ExecContext(ctx,
        "INSERT INTO sessions (id, nic, issued_at, expires_at) VALUES (?,?,?,?)",
        s.ID, s.NIC, s.IssuedAt.UTC(), s.ExpiresAt.UTC())
    return err
}

// FindByKey fetches a session by ID.
func (r *SessionRepo) FindByKey(ctx context.Context, id string) (*model.Session, error) {
    row := r.q.QueryRowContext(ctx, "SELECT "+sessionColumns+" FROM sessions WHERE id = ? LIMIT 1", id)
    s, err := scanSession(row)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrNotFound
        }
        return nil, err
    }
    return &s, nil
}

// FindLatestByNIC returns the most recently issued unrevoked session for
// nic.
func (r *SessionRepo) FindLatestByNIC(ctx context.Context, nic string) (*model.Session, error) {
    row := r.q.QueryRowContext(ctx,
        "SELECT "+sessionColumns+" FROM sessions WHERE nic = ? AND revoked_at IS NULL ORDER BY issued_at DESC LIMIT 1", nic)
    s, err := scanSession(row)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrNotFound
        }
        return nil, err
    }
    return &s, nil
}

// RevokeAllForNIC revokes every open session of nic.  Sessions already
// revoked keep their original timestamp.
func (r *SessionRepo) RevokeAllForNIC(ctx context.Context, nic string, at time.Time) error {
    _, err := r.q.ExecContext(ctx,
        "UPDATE sessions SET revoked_at = ? WHERE nic = ? AND revoked_at IS NULL", at.UTC(), nic)
    return err
}
