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
    "github.com/iliyamo/train-ticket-reservation/internal/validator"
)

// UserService manages user profiles.  Callers manage their own profile;
// staff types and other people's profiles belong to Backoffice and admins.
type UserService struct {
    store *repository.Store
    authz Authorizer
    now   func() time.Time
}

func NewUserService(store *repository.Store, authz Authorizer) *UserService {
    return &UserService{store: store, authz: authz, now: time.Now}
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
    return s.store.Users.FindAll(ctx)
}

func (s *UserService) Get(ctx context.Context, nic string) (*model.User, error) {
    u, err := s.store.Users.FindByKey(ctx, nic)
    if errors.Is(err, repository.ErrNotFound) {
        return nil, fail(ErrNotFound, "User not found")
    }
    return u, err
}

// ByType lists users of one type; the type name is matched loosely.
func (s *UserService) ByType(ctx context.Context, name string) ([]model.User, error) {
    t, ok := model.ParseUserType(name)
    if !ok {
        return nil, &ValidationError{Messages: []string{"User type must be one of Backoffice, TravelAgent, Customer."}}
    }
    return s.store.Users.FindByType(ctx, t)
}

// Create stores a profile for a NIC that already has an active login.
func (s *UserService) Create(ctx context.Context, requester string, in validator.UserRequest) (*model.User, error) {
    if err := invalid(validator.User(in)); err != nil {
        return nil, err
    }
    u := in.ToUser()
    err := s.store.InTx(ctx, func(tx *repository.Store) error {
        res := policy.Resource{UserNIC: u.NIC, UserType: u.UserType.String()}
        if err := authorize(ctx, s.authz, tx, policy.ActionUserCreate, requester, res); err != nil {
            return err
        }
        l, err := tx.Logins.FindByKey(ctx, u.NIC)
        if err != nil {
            if errors.Is(err, repository.ErrNotFound) {
                return fail(ErrNotFound, "Login not found, register first")
            }
            return fmt.Errorf("load login: %w", err)
        }
        if !l.IsActive {
            return fail(ErrForbidden, "Login is not active")
        }
        if err := tx.Users.Insert(ctx, &u); err != nil {
            if errors.Is(err, repository.ErrConflict) {
                return fail(ErrConflict, "User already exists")
            }
            return fmt.Errorf("insert user: %w", err)
        }
        return nil
    })
    if err != nil {
        return nil, err
    }
    return &u, nil
}

// Patch merges the present fields of in into the stored profile.  Changing
// the type or the active flag is a staff operation, even on one's own
// profile.
func (s *UserService) Patch(ctx context.Context, requester, nic string, in validator.UserPatchRequest) (*model.User, error) {
    if err := invalid(validator.UserPatch(in)); err != nil {
        return nil, err
    }
    nic = strings.TrimSpace(nic)
    var out model.User
    err := s.store.InTx(ctx, func(tx *repository.Store) error {
        cur, err := tx.Users.FindByKey(ctx, nic)
        if err != nil {
            if errors.Is(err, repository.ErrNotFound) {
                return fail(ErrNotFound, "User not found")
            }
            return fmt.Errorf("load user: %w", err)
        }
        out = in.ToPatch().Apply(*cur)
        res := policy.Resource{
            UserNIC:    nic,
            Privileged: out.UserType != cur.UserType || out.IsActive != cur.IsActive,
        }
        if err := authorize(ctx, s.authz, tx, policy.ActionUserUpdate, requester, res); err != nil {
            return err
        }
        if err := tx.Users.ReplaceByKey(ctx, nic, out); err != nil {
            return fmt.Errorf("update user: %w", err)
        }
        return nil
    })
    if err != nil {
        return nil, err
    }
    return &out, nil
}

// Delete removes the profile and the login of nic together and revokes its
// sessions.  A NIC with a login but no profile is still cleaned up.
func (s *UserService) Delete(ctx context.Context, requester, nic string) error {
    nic = strings.TrimSpace(nic)
    return s.store.InTx(ctx, func(tx *repository.Store) error {
        if err := authorize(ctx, s.authz, tx, policy.ActionUserDelete, requester, policy.Resource{UserNIC: nic}); err != nil {
            return err
        }
        userErr := tx.Users.DeleteByKey(ctx, nic)
        if userErr != nil && !errors.Is(userErr, repository.ErrNotFound) {
            return fmt.Errorf("delete user: %w", userErr)
        }
        loginErr := tx.Logins.DeleteByKey(ctx, nic)
        if loginErr != nil && !errors.Is(loginErr, repository.ErrNotFound) {
            return fmt.Errorf("delete login: %w", loginErr)
        }
        if userErr != nil && loginErr != nil {
            return fail(ErrNotFound, "User not found")
        }
        if err := tx.Sessions.RevokeAllForNIC(ctx, nic, s.now()); err != nil {
            return fmt.Errorf("revoke sessions: %w", err)
        }
        logrus.WithFields(logrus.Fields{"by": requester, "nic": nic}).Info("user and login deleted")
        return nil
    })
}
