package service

import (
    "context"
    "errors"
    "fmt"

    "github.com/iliyamo/train-ticket-reservation/internal/policy"
    "github.com/iliyamo/train-ticket-reservation/internal/queue"
    "github.com/iliyamo/train-ticket-reservation/internal/repository"
)

// Authorizer decides whether a subject may perform an action.
type Authorizer interface {
    Allow(ctx context.Context, action string, subject policy.Subject, resource policy.Resource) (bool, error)
}

// EventPublisher delivers reservation events after commit.
type EventPublisher interface {
    Publish(ctx context.Context, ev queue.ReservationEvent) error
}

// NopPublisher drops every event.  Used when messaging is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, queue.ReservationEvent) error { return nil }

// subjectFor loads what the policy needs to know about nic.  A NIC without
// a login or user profile yields a subject with only its NIC set.
func subjectFor(ctx context.Context, st *repository.Store, nic string) (policy.Subject, error) {
    s := policy.Subject{NIC: nic}
    l, err := st.Logins.FindByKey(ctx, nic)
    switch {
    case err == nil:
        s.IsAdmin = l.IsAdmin
    case !errors.Is(err, repository.ErrNotFound):
        return s, fmt.Errorf("load login: %w", err)
    }
    u, err := st.Users.FindByKey(ctx, nic)
    switch {
    case err == nil:
        s.UserType = u.UserType.String()
    case !errors.Is(err, repository.ErrNotFound):
        return s, fmt.Errorf("load user: %w", err)
    }
    return s, nil
}

// authorize returns ErrForbidden unless the policy allows nic to perform
// action on res.
func authorize(ctx context.Context, authz Authorizer, st *repository.Store, action, nic string, res policy.Resource) error {
    s, err := subjectFor(ctx, st, nic)
    if err != nil {
        return err
    }
    ok, err := authz.Allow(ctx, action, s, res)
    if err != nil {
        return err
    }
    if !ok {
        return ErrForbidden
    }
    return nil
}
