package service

import (
    "context"
    "errors"
    "fmt"
    "strings"

    logrus "github.com/sirupsen/logrus"

    "github.com/iliyamo/train-ticket-reservation/internal/model"
    "github.com/iliyamo/train-ticket-reservation/internal/policy"
    "github.com/iliyamo/train-ticket-reservation/internal/repository"
    "github.com/iliyamo/train-ticket-reservation/internal/validator"
)

// TrainService manages the timetable.
type TrainService struct {
    store *repository.Store
    authz Authorizer
}

func NewTrainService(store *repository.Store, authz Authorizer) *TrainService {
    return &TrainService{store: store, authz: authz}
}

func (s *TrainService) List(ctx context.Context) ([]model.Train, error) {
    return s.store.Trains.FindAll(ctx)
}

func (s *TrainService) Get(ctx context.Context, id string) (*model.Train, error) {
    t, err := s.store.Trains.FindByKey(ctx, id)
    if errors.Is(err, repository.ErrNotFound) {
        return nil, fail(ErrNotFound, "Train not found")
    }
    return t, err
}

func (s *TrainService) ByOwner(ctx context.Context, nic string) ([]model.Train, error) {
    return s.store.Trains.FindByOwner(ctx, strings.TrimSpace(nic))
}

// checkOwner requires owner to be a user who is not a customer.
func checkOwner(ctx context.Context, tx *repository.Store, owner string) error {
    u, err := tx.Users.FindByKey(ctx, owner)
    if err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return fail(ErrNotFound, "Owner not found")
        }
        return fmt.Errorf("load owner: %w", err)
    }
    if u.UserType == model.UserTypeCustomer {
        return &ValidationError{Messages: []string{"Owner cannot be a Customer."}}
    }
    return nil
}

// Create adds a train on behalf of requester.
func (s *TrainService) Create(ctx context.Context, requester string, in validator.TrainRequest) (*model.Train, error) {
    if err := invalid(validator.Train(in)); err != nil {
        return nil, err
    }
    t := in.ToTrain()
    err := s.store.InTx(ctx, func(tx *repository.Store) error {
        if err := authorize(ctx, s.authz, tx, policy.ActionTrainCreate, requester, policy.Resource{OwnerNIC: t.OwnerNIC}); err != nil {
            return err
        }
        if err := checkOwner(ctx, tx, t.OwnerNIC); err != nil {
            return err
        }
        if err := tx.Trains.Insert(ctx, &t); err != nil {
            return fmt.Errorf("insert train: %w", err)
        }
        return nil
    })
    if err != nil {
        return nil, err
    }
    logrus.WithFields(logrus.Fields{"train_id": t.ID, "owner": t.OwnerNIC, "seats": t.Seats}).Info("train created")
    return &t, nil
}

// Update replaces every field of a train.  Setting seats redefines the
// available counter.
func (s *TrainService) Update(ctx context.Context, requester, id string, in validator.TrainRequest) (*model.Train, error) {
    if err := invalid(validator.Train(in)); err != nil {
        return nil, err
    }
    t := in.ToTrain()
    t.ID = id
    err := s.store.InTx(ctx, func(tx *repository.Store) error {
        cur, err := tx.Trains.FindByKey(ctx, id)
        if err != nil {
            if errors.Is(err, repository.ErrNotFound) {
                return fail(ErrNotFound, "Train not found")
            }
            return fmt.Errorf("load train: %w", err)
        }
        if err := authorize(ctx, s.authz, tx, policy.ActionTrainUpdate, requester, policy.Resource{OwnerNIC: cur.OwnerNIC}); err != nil {
            return err
        }
        if t.OwnerNIC != cur.OwnerNIC {
            if err := checkOwner(ctx, tx, t.OwnerNIC); err != nil {
                return err
            }
        }
        if err := tx.Trains.ReplaceByKey(ctx, id, t); err != nil {
            return fmt.Errorf("update train: %w", err)
        }
        return nil
    })
    if err != nil {
        return nil, err
    }
    return &t, nil
}

// Delete removes a train that no reservation references.
func (s *TrainService) Delete(ctx context.Context, requester, id string) error {
    return s.store.InTx(ctx, func(tx *repository.Store) error {
        t, err := tx.Trains.FindByKey(ctx, id)
        if err != nil {
            if errors.Is(err, repository.ErrNotFound) {
                return fail(ErrNotFound, "Train not found")
            }
            return fmt.Errorf("load train: %w", err)
        }
        if err := authorize(ctx, s.authz, tx, policy.ActionTrainDelete, requester, policy.Resource{OwnerNIC: t.OwnerNIC}); err != nil {
            return err
        }
        n, err := tx.Reservations.CountByTrain(ctx, id)
        if err != nil {
            return fmt.Errorf("count reservations: %w", err)
        }
        if n > 0 {
            return fail(ErrConflict, "Train has reservations and cannot be deleted")
        }
        if err := tx.Trains.DeleteByKey(ctx, id); err != nil {
            return fmt.Errorf("delete train: %w", err)
        }
        return nil
    })
}
