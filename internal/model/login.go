package model

import "time"

// Login is the credential record for a NIC, stored in the `logins` table.
// Password holds hash(plaintext, Salt); the salt is generated once at
// registration and never rotated.  Neither value is ever serialized.
//
// Fields:
//  ID        – generated identifier (UUID).
//  NIC       – owner of the credentials, unique.
//  Password  – salted password hash (hex).
//  Salt      – per-login random salt (hex).
//  IsActive  – whether the login may be used.
//  IsAdmin   – whether the login may activate other logins.
//  LastLogin – time of the last successful password login.
type Login struct {
    ID        string    `json:"id"`         // logins.id
    NIC       string    `json:"nic"`        // logins.nic
    Password  string    `json:"-"`          // logins.password
    Salt      string    `json:"-"`          // logins.salt
    IsActive  bool      `json:"is_active"`  // logins.is_active
    IsAdmin   bool      `json:"is_admin"`   // logins.is_admin
    LastLogin time.Time `json:"last_login"` // logins.last_login
}

// Session is an explicit login session.  It is opened by a successful
// password login and expires after a fixed window; it is never extended.
// Session liveness is independent of Login.LastLogin.
//
// Fields:
//  ID        – generated identifier, also the `sid` claim of access tokens.
//  NIC       – owner of the session.
//  IssuedAt  – when the session was opened.
//  ExpiresAt – when the session stops being valid.
//  RevokedAt – set on logout, nil while the session is usable.
type Session struct {
    ID        string     // sessions.id
    NIC       string     // sessions.nic
    IssuedAt  time.Time  // sessions.issued_at
    ExpiresAt time.Time  // sessions.expires_at
    RevokedAt *time.Time // sessions.revoked_at (nullable)
}

// Revoked reports whether the session was closed by logout.
func (s Session) Revoked() bool { return s.RevokedAt != nil }
