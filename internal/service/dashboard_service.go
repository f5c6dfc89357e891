package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/MrZaiter32/atelierpro/internal/model"
)

// DashboardService aggregates the owner's KPIs from the other services.
type DashboardService struct {
	budgets  *BudgetService
	clients  *ClientService
	workshop *WorkshopService
	log      zerolog.Logger
}

func NewDashboardService(budgets *BudgetService, clients *ClientService, workshop *WorkshopService, log zerolog.Logger) *DashboardService {
	return &DashboardService{budgets: budgets, clients: clients, workshop: workshop, log: log}
}

func (s *DashboardService) KPIs(ctx context.Context) (*model.DashboardKPI, error) {
	margin, err := s.budgets.Margin(ctx)
	if err != nil {
		return nil, err
	}
	nps, err := s.clients.AverageNPS(ctx)
	if err != nil {
		return nil, err
	}
	retention, err := s.clients.AverageRetention(ctx)
	if err != nil {
		return nil, err
	}
	active, err := s.workshop.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	return &model.DashboardKPI{
		AverageMargin:    margin,
		AverageNPS:       nps,
		AverageRetention: retention,
		ActiveWorkOrders: active,
	}, nil
}
