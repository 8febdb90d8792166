package service

import (
    "context"
    "fmt"

    "github.com/iliyamo/train-ticket-reservation/internal/model"
    "github.com/iliyamo/train-ticket-reservation/internal/repository"
)

// DashboardService aggregates headline counts.
type DashboardService struct {
    store *repository.Store
}

func NewDashboardService(store *repository.Store) *DashboardService {
    return &DashboardService{store: store}
}

// Counts returns the number of customers, travel agents, trains and
// reservations.
func (s *DashboardService) Counts(ctx context.Context) (*model.DashboardCounts, error) {
    var out model.DashboardCounts
    var err error
    if out.CustomerCount, err = s.store.Users.CountByType(ctx, model.UserTypeCustomer); err != nil {
        return nil, fmt.Errorf("count customers: %w", err)
    }
    if out.TravelAgentCount, err = s.store.Users.CountByType(ctx, model.UserTypeTravelAgent); err != nil {
        return nil, fmt.Errorf("count travel agents: %w", err)
    }
    if out.TrainCount, err = s.store.Trains.Count(ctx); err != nil {
        return nil, fmt.Errorf("count trains: %w", err)
    }
    if out.ReservationCount, err = s.store.Reservations.Count(ctx); err != nil {
        return nil, fmt.Errorf("count reservations: %w", err)
    }
    return &out, nil
}
