package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/MrZaiter32/atelierpro/internal/model"
)

type WorkOrderStore interface {
	List(ctx context.Context, status *model.WorkOrderStatus) ([]model.WorkOrder, error)
	Get(ctx context.Context, id uuid.UUID) (*model.WorkOrder, error)
	Create(ctx context.Context, order *model.WorkOrder) error
	Save(ctx context.Context, order *model.WorkOrder) error
	ExistsForBudget(ctx context.Context, budgetID uuid.UUID) (bool, error)
	CountActive(ctx context.Context) (int64, error)
	ListTechnicians(ctx context.Context, activeOnly bool) ([]model.Technician, error)
	GetTechnician(ctx context.Context, id uuid.UUID) (*model.Technician, error)
	CreateTechnician(ctx context.Context, technician *model.Technician) error
}

type WorkshopService struct {
	store   WorkOrderStore
	budgets BudgetStore
	log     zerolog.Logger
}

func NewWorkshopService(store WorkOrderStore, budgets BudgetStore, log zerolog.Logger) *WorkshopService {
	return &WorkshopService{store: store, budgets: budgets, log: log}
}

func (s *WorkshopService) ListTechnicians(ctx context.Context, activeOnly bool) ([]model.Technician, error) {
	return s.store.ListTechnicians(ctx, activeOnly)
}

func (s *WorkshopService) CreateTechnician(ctx context.Context, technician model.Technician) (*model.Technician, error) {
	if strings.TrimSpace(technician.FirstName) == "" || strings.TrimSpace(technician.LastName) == "" {
		return nil, fmt.Errorf("%w: technician name is required", ErrInvalidInput)
	}
	technician.ID = uuid.New()
	technician.Active = true
	technician.CreatedAt = time.Now().UTC()
	if err := s.store.CreateTechnician(ctx, &technician); err != nil {
		return nil, err
	}
	return &technician, nil
}

func (s *WorkshopService) List(ctx context.Context, status *model.WorkOrderStatus) ([]model.WorkOrder, error) {
	return s.store.List(ctx, status)
}

func (s *WorkshopService) Get(ctx context.Context, id uuid.UUID) (*model.WorkOrder, error) {
	order, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: work order %s", ErrNotFound, id)
		}
		return nil, err
	}
	return order, nil
}

type CreateWorkOrderInput struct {
	BudgetID     uuid.UUID  `json:"budget_id"`
	TechnicianID *uuid.UUID `json:"technician_id,omitempty"`
	Priority     string     `json:"priority"`
	Notes        string     `json:"notes"`
}

// CreateFromBudget opens a work order for an approved budget. The budget's
// items are copied so the shop can track actual hours against the estimate.
// A budget can only have one open work order.
func (s *WorkshopService) CreateFromBudget(ctx context.Context, input CreateWorkOrderInput) (*model.WorkOrder, error) {
	budget, err := s.budgets.Get(ctx, input.BudgetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: budget %s", ErrNotFound, input.BudgetID)
		}
		return nil, err
	}
	if budget.Status != model.BudgetStatusApproved {
		return nil, fmt.Errorf("%w: budget %s is %s, only approved budgets open work orders",
			ErrConflict, budget.Number, budget.Status)
	}

	exists, err := s.store.ExistsForBudget(ctx, budget.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: budget %s already has a work order", ErrConflict, budget.Number)
	}

	if input.TechnicianID != nil {
		technician, err := s.store.GetTechnician(ctx, *input.TechnicianID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: technician %s", ErrNotFound, *input.TechnicianID)
			}
			return nil, err
		}
		if !technician.Active {
			return nil, fmt.Errorf("%w: technician %s %s is inactive",
				ErrConflict, technician.FirstName, technician.LastName)
		}
	}

	order := &model.WorkOrder{
		ID:           uuid.New(),
		BudgetID:     budget.ID,
		TechnicianID: input.TechnicianID,
		Status:       model.WorkOrderPending,
		Priority:     input.Priority,
		Notes:        input.Notes,
		CreatedAt:    time.Now().UTC(),
	}
	for _, item := range budget.Items {
		order.Items = append(order.Items, model.WorkOrderItem{
			ID:             uuid.New(),
			WorkOrderID:    order.ID,
			BudgetItemID:   item.ID,
			Kind:           item.Kind,
			Code:           item.Code,
			Description:    item.Description,
			Quantity:       item.Quantity,
			EstimatedHours: item.Hours,
			UnitPrice:      item.UnitPrice,
		})
		order.EstimatedHours += item.Hours
	}

	if err := s.store.Create(ctx, order); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("budget", budget.Number).
		Str("work_order", order.ID.String()).
		Float64("estimated_hours", order.EstimatedHours).
		Msg("work order opened")
	return order, nil
}

func (s *WorkshopService) Start(ctx context.Context, id uuid.UUID) (*model.WorkOrder, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status != model.WorkOrderPending {
		return nil, fmt.Errorf("%w: work order is %s, only pending orders can start",
			ErrConflict, order.Status)
	}

	now := time.Now().UTC()
	order.Status = model.WorkOrderInProgress
	order.StartedAt = &now
	if err := s.store.Save(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

type LogHoursInput struct {
	ItemID uuid.UUID `json:"item_id"`
	Hours  float64   `json:"hours"`
	Done   bool      `json:"done"`
}

// LogHours adds actual hours against a work-order line and rolls the order
// total up from its items.
func (s *WorkshopService) LogHours(ctx context.Context, id uuid.UUID, input LogHoursInput) (*model.WorkOrder, error) {
	if input.Hours < 0 {
		return nil, fmt.Errorf("%w: hours cannot be negative", ErrInvalidInput)
	}

	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status != model.WorkOrderInProgress {
		return nil, fmt.Errorf("%w: work order is %s, hours can only be logged in progress",
			ErrConflict, order.Status)
	}

	found := false
	total := 0.0
	for i := range order.Items {
		if order.Items[i].ID == input.ItemID {
			order.Items[i].ActualHours += input.Hours
			order.Items[i].Done = input.Done
			found = true
		}
		total += order.Items[i].ActualHours
	}
	if !found {
		return nil, fmt.Errorf("%w: item %s is not on this work order", ErrInvalidInput, input.ItemID)
	}
	order.ActualHours = total

	if err := s.store.Save(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *WorkshopService) Complete(ctx context.Context, id uuid.UUID) (*model.WorkOrder, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status != model.WorkOrderInProgress {
		return nil, fmt.Errorf("%w: work order is %s, only in-progress orders complete",
			ErrConflict, order.Status)
	}

	now := time.Now().UTC()
	order.Status = model.WorkOrderCompleted
	order.CompletedAt = &now
	if err := s.store.Save(ctx, order); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("work_order", order.ID.String()).
		Float64("actual_hours", order.ActualHours).
		Msg("work order completed")
	return order, nil
}

func (s *WorkshopService) Cancel(ctx context.Context, id uuid.UUID) (*model.WorkOrder, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	switch order.Status {
	case model.WorkOrderCompleted, model.WorkOrderCancelled:
		return nil, fmt.Errorf("%w: work order is %s and cannot be cancelled",
			ErrConflict, order.Status)
	}

	order.Status = model.WorkOrderCancelled
	if err := s.store.Save(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *WorkshopService) CountActive(ctx context.Context) (int64, error) {
	return s.store.CountActive(ctx)
}
