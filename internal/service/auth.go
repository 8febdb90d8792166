package service

import (
    "context"
    "errors"
    "fmt"
    "strings"
    "time"

    logrus "github.com/sirupsen/logrus"

    "github.com/iliyamo/train-ticket-reservation/internal/model"
    "github.com/iliyamo/train-ticket-reservation/internal/policy"
    "github.com/iliyamo/train-ticket-reservation/internal/repository"
    "github.com/iliyamo/train-ticket-reservation/internal/utils"
    "github.com/iliyamo/train-ticket-reservation/internal/validator"
)

// AuthService owns credentials and sessions.
type AuthService struct {
    store  *repository.Store
    authz  Authorizer
    secret string
    window time.Duration
    admins map[string]bool
    now    func() time.Time
}

// NewAuthService returns an AuthService that signs tokens with secret and
// opens sessions lasting window.
func NewAuthService(store *repository.Store, authz Authorizer, secret string, window time.Duration) *AuthService {
    return &AuthService{store: store, authz: authz, secret: secret, window: window, admins: map[string]bool{}, now: time.Now}
}

// WithAdmins marks the given NICs as admins when they register.  Without
// at least one, nobody can activate logins or appoint staff.
func (s *AuthService) WithAdmins(nics ...string) *AuthService {
    for _, n := range nics {
        if n = strings.TrimSpace(n); n != "" {
            s.admins[n] = true
        }
    }
    return s
}

// LoginResult is returned by a successful password login.
type LoginResult struct {
    Login     model.Login `json:"login"`
    Token     string      `json:"token"`
    SessionID string      `json:"session_id"`
    ExpiresAt time.Time   `json:"expires_at"`
}

// TokenLoginResult reports the state of a live session.  It carries no
// credential.
type TokenLoginResult struct {
    NIC       string    `json:"nic"`
    Remaining string    `json:"remaining"`
    ExpiresAt time.Time `json:"expires_at"`
}

// Register creates the credential record for a new NIC and opens its first
// session, so a token login right after registration succeeds.
func (s *AuthService) Register(ctx context.Context, in validator.CredentialsRequest) (*model.Login, error) {
    if err := invalid(validator.Login(in)); err != nil {
        return nil, err
    }
    nic := strings.TrimSpace(in.NIC)
    if _, err := s.store.Logins.FindByKey(ctx, nic); err == nil {
        return nil, fail(ErrConflict, "User already exists")
    } else if !errors.Is(err, repository.ErrNotFound) {
        return nil, fmt.Errorf("load login: %w", err)
    }
    if err := invalid(validator.Register(in)); err != nil {
        return nil, err
    }

    salt, err := utils.NewSalt()
    if err != nil {
        return nil, fmt.Errorf("generate salt: %w", err)
    }
    now := s.now().UTC()
    l := &model.Login{
        NIC:       nic,
        Password:  utils.HashPassword(in.Password, salt),
        Salt:      salt,
        IsActive:  true,
        IsAdmin:   s.admins[nic],
        LastLogin: now,
    }
    err = s.store.InTx(ctx, func(tx *repository.Store) error {
        if err := tx.Logins.Insert(ctx, l); err != nil {
            if errors.Is(err, repository.ErrConflict) {
                return fail(ErrConflict, "User already exists")
            }
            return fmt.Errorf("insert login: %w", err)
        }
        sess := &model.Session{NIC: nic, IssuedAt: now, ExpiresAt: now.Add(s.window)}
        if err := tx.Sessions.Insert(ctx, sess); err != nil {
            return fmt.Errorf("open session: %w", err)
        }
        return nil
    })
    if err != nil {
        return nil, err
    }
    logrus.WithFields(logrus.Fields{"nic": nic, "admin": l.IsAdmin}).Info("login registered")
    return l, nil
}

// Login checks a password, refreshes the last-login timestamp and opens a
// new session.
func (s *AuthService) Login(ctx context.Context, in validator.CredentialsRequest) (*LoginResult, error) {
    if err := invalid(validator.Login(in)); err != nil {
        return nil, err
    }
    nic := strings.TrimSpace(in.NIC)
    now := s.now().UTC()

    var out LoginResult
    err := s.store.InTx(ctx, func(tx *repository.Store) error {
        l, err := tx.Logins.FindByKey(ctx, nic)
        if err != nil {
            if errors.Is(err, repository.ErrNotFound) {
                return fail(ErrNotFound, "User does not exist")
            }
            return fmt.Errorf("load login: %w", err)
        }
        if !utils.VerifyPassword(l.Password, l.Salt, in.Password) {
            return fail(ErrUnauthorized, "Incorrect credentials")
        }
        l.LastLogin = now
        if err := tx.Logins.ReplaceByKey(ctx, nic, *l); err != nil {
            return fmt.Errorf("update login: %w", err)
        }
        sess := &model.Session{NIC: nic, IssuedAt: now, ExpiresAt: now.Add(s.window)}
        if err := tx.Sessions.Insert(ctx, sess); err != nil {
            return fmt.Errorf("open session: %w", err)
        }
        out.Login = *l
        out.SessionID = sess.ID
        out.ExpiresAt = sess.ExpiresAt
        return nil
    })
    if err != nil {
        return nil, err
    }

    tok, err := utils.NewAccessToken(s.secret, nic, out.SessionID, out.ExpiresAt, now)
    if err != nil {
        return nil, fmt.Errorf("sign token: %w", err)
    }
    out.Token = tok.Token
    return &out, nil
}

// Activate overwrites the active and admin flags of target.  Only admins may
// do this; the password, salt and last-login time are preserved.
// Deactivating a login revokes its open sessions.
func (s *AuthService) Activate(ctx context.Context, requester string, in validator.ActivateRequest) (*model.Login, error) {
    if err := invalid(validator.Activate(in)); err != nil {
        return nil, err
    }
    target := strings.TrimSpace(in.NIC)

    var out *model.Login
    err := s.store.InTx(ctx, func(tx *repository.Store) error {
        if err := authorize(ctx, s.authz, tx, policy.ActionLoginActivate, requester, policy.Resource{}); err != nil {
            return err
        }
        l, err := tx.Logins.FindByKey(ctx, target)
        if err != nil {
            if errors.Is(err, repository.ErrNotFound) {
                return fail(ErrNotFound, "User does not exist")
            }
            return fmt.Errorf("load login: %w", err)
        }
        l.IsActive = in.IsActive
        l.IsAdmin = in.IsAdmin
        if err := tx.Logins.ReplaceByKey(ctx, target, *l); err != nil {
            return fmt.Errorf("update login: %w", err)
        }
        if !in.IsActive {
            if err := tx.Sessions.RevokeAllForNIC(ctx, target, s.now()); err != nil {
                return fmt.Errorf("revoke sessions: %w", err)
            }
        }
        out = l
        return nil
    })
    if err != nil {
        return nil, err
    }
    logrus.WithFields(logrus.Fields{"by": requester, "nic": target, "active": in.IsActive, "admin": in.IsAdmin}).Info("login flags changed")
    return out, nil
}

// TokenLogin reports how long the latest session of nic stays valid.  The
// session is usable up to and including the instant the window elapses.  It
// neither refreshes the last-login time nor extends the session, and it
// never hands out an access token: only a password login does.
func (s *AuthService) TokenLogin(ctx context.Context, nic string) (*TokenLoginResult, error) {
    nic = strings.TrimSpace(nic)
    if nic == "" {
        return nil, &ValidationError{Messages: []string{"NIC is required."}}
    }
    if _, err := s.store.Logins.FindByKey(ctx, nic); err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return nil, fail(ErrNotFound, "User does not exist")
        }
        return nil, fmt.Errorf("load login: %w", err)
    }
    sess, err := s.store.Sessions.FindLatestByNIC(ctx, nic)
    if err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return nil, fail(ErrSessionExpired, "Session expired, please log in again")
        }
        return nil, fmt.Errorf("load session: %w", err)
    }

    now := s.now().UTC()
    elapsed := now.Sub(sess.IssuedAt)
    if elapsed > s.window {
        return nil, fail(ErrSessionExpired, "Session expired, please log in again")
    }
    return &TokenLoginResult{
        NIC:       nic,
        Remaining: utils.FormatRemaining(s.window - elapsed),
        ExpiresAt: sess.ExpiresAt,
    }, nil
}

// Logout ends every open session of the NIC owning sessionID, so neither
// its tokens nor a token login survive.  An unknown session is NotFound.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
    sess, err := s.store.Sessions.FindByKey(ctx, sessionID)
    if err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return fail(ErrNotFound, "Session not found")
        }
        return fmt.Errorf("load session: %w", err)
    }
    if err := s.store.Sessions.RevokeAllForNIC(ctx, sess.NIC, s.now()); err != nil {
        return fmt.Errorf("revoke sessions: %w", err)
    }
    return nil
}

// ValidateSession returns the session if it is known, not revoked and not
// past its expiry.
func (s *AuthService) ValidateSession(ctx context.Context, sessionID string) (*model.Session, error) {
    sess, err := s.store.Sessions.FindByKey(ctx, sessionID)
    if err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return nil, fail(ErrSessionExpired, "Session expired, please log in again")
        }
        return nil, fmt.Errorf("load session: %w", err)
    }
    if sess.Revoked() || s.now().After(sess.ExpiresAt) {
        return nil, fail(ErrSessionExpired, "Session expired, please log in again")
    }
    return sess, nil
}
