package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/MrZaiter32/atelierpro/internal/model"
	"github.com/MrZaiter32/atelierpro/internal/pricing"
	"github.com/MrZaiter32/atelierpro/internal/workflow"
)

type BudgetStore interface {
	List(ctx context.Context, status *model.BudgetStatus) ([]model.Budget, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Budget, error)
	Create(ctx context.Context, budget *model.Budget) error
	Save(ctx context.Context, budget *model.Budget) error
	NextNumber(ctx context.Context, year int) (string, error)
	GetVehicle(ctx context.Context, vin string) (*model.Vehicle, error)
	SaveVehicle(ctx context.Context, vehicle *model.Vehicle) error
}

type TariffStore interface {
	GetActive(ctx context.Context) (*model.Tariff, error)
}

type ClientLookup interface {
	Get(ctx context.Context, id uuid.UUID) (*model.Client, error)
}

// QuoteGenerator renders the customer-facing quote document for a budget.
type QuoteGenerator interface {
	Generate(budget model.Budget) ([]byte, error)
}

type BudgetService struct {
	budgets BudgetStore
	tariffs TariffStore
	clients ClientLookup
	calc    *pricing.Calculator
	quotes  QuoteGenerator
	log     zerolog.Logger
}

func NewBudgetService(
	budgets BudgetStore,
	tariffs TariffStore,
	clients ClientLookup,
	calc *pricing.Calculator,
	quotes QuoteGenerator,
	log zerolog.Logger,
) *BudgetService {
	return &BudgetService{
		budgets: budgets,
		tariffs: tariffs,
		clients: clients,
		calc:    calc,
		quotes:  quotes,
		log:     log,
	}
}

type VehicleInput struct {
	VIN           string
	Trim          string
	AgeYears      int
	ResidualValue decimal.Decimal
}

type BudgetItemInput struct {
	Kind              model.ItemKind
	Code              string
	Description       string
	Quantity          int
	Hours             float64
	UnitPrice         decimal.Decimal
	AdjustmentPercent decimal.Decimal

	RequiresPaint         bool
	RequiresDoubleRemoval bool
	RequiresAlignment     bool
}

type CreateBudgetInput struct {
	ClientID *uuid.UUID
	Vehicle  *VehicleInput
	Items    []BudgetItemInput
	Notes    string
	UserID   string
}

func (s *BudgetService) List(ctx context.Context, status *model.BudgetStatus) ([]model.Budget, error) {
	return s.budgets.List(ctx, status)
}

func (s *BudgetService) Get(ctx context.Context, id uuid.UUID) (*model.Budget, error) {
	budget, err := s.budgets.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: budget %s", ErrNotFound, id)
		}
		return nil, err
	}
	return budget, nil
}

// Create validates the input, allocates a quote number, runs the pricing
// core against the active tariff and persists the result as a draft.
func (s *BudgetService) Create(ctx context.Context, input CreateBudgetInput) (*model.Budget, error) {
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("%w: a budget needs at least one item", ErrInvalidInput)
	}
	for _, item := range input.Items {
		if item.Quantity < 0 {
			return nil, fmt.Errorf("%w: item %q: quantity cannot be negative", ErrInvalidInput, item.Description)
		}
		if item.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: item %q: unit price cannot be negative", ErrInvalidInput, item.Description)
		}
		if item.Hours < 0 {
			return nil, fmt.Errorf("%w: item %q: hours cannot be negative", ErrInvalidInput, item.Description)
		}
	}

	var client *model.Client
	if input.ClientID != nil && *input.ClientID != uuid.Nil {
		found, err := s.clients.Get(ctx, *input.ClientID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: client %s", ErrNotFound, *input.ClientID)
			}
			return nil, err
		}
		client = found
	}

	tariff, err := s.tariffs.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("load active tariff: %w", err)
	}

	now := time.Now().UTC()
	number, err := s.budgets.NextNumber(ctx, now.Year())
	if err != nil {
		return nil, fmt.Errorf("allocate budget number: %w", err)
	}

	budget := &model.Budget{
		ID:        uuid.New(),
		Number:    number,
		Status:    model.BudgetStatusDraft,
		CreatedAt: now,
		Notes:     input.Notes,
	}
	if client != nil {
		budget.ClientID = &client.ID
		budget.Client = client
	}
	if input.Vehicle != nil && input.Vehicle.VIN != "" {
		vehicle, err := s.budgets.GetVehicle(ctx, input.Vehicle.VIN)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("load vehicle: %w", err)
			}
			vehicle = &model.Vehicle{VIN: input.Vehicle.VIN}
		}
		if input.Vehicle.Trim != "" {
			vehicle.Trim = input.Vehicle.Trim
		}
		if input.Vehicle.AgeYears > 0 {
			vehicle.AgeYears = input.Vehicle.AgeYears
		}
		if !input.Vehicle.ResidualValue.IsZero() {
			vehicle.ResidualValue = input.Vehicle.ResidualValue
		}
		if err := s.budgets.SaveVehicle(ctx, vehicle); err != nil {
			return nil, fmt.Errorf("save vehicle: %w", err)
		}
		budget.VehicleVIN = &vehicle.VIN
		budget.Vehicle = vehicle
	}

	for _, in := range input.Items {
		qty := in.Quantity
		if qty == 0 {
			qty = 1
		}
		budget.Items = append(budget.Items, model.BudgetItem{
			ID:                    uuid.New(),
			BudgetID:              budget.ID,
			Kind:                  in.Kind,
			Code:                  in.Code,
			Description:           in.Description,
			Quantity:              qty,
			Hours:                 in.Hours,
			UnitPrice:             in.UnitPrice,
			AdjustmentPercent:     in.AdjustmentPercent,
			RequiresPaint:         in.RequiresPaint,
			RequiresDoubleRemoval: in.RequiresDoubleRemoval,
			RequiresAlignment:     in.RequiresAlignment,
		})
	}

	s.calc.CalculateTotals(budget, *tariff)

	if err := s.budgets.Create(ctx, budget); err != nil {
		return nil, fmt.Errorf("persist budget: %w", err)
	}

	s.log.Info().
		Str("number", budget.Number).
		Int("items", len(budget.Items)).
		Str("total", budget.Total.StringFixed(2)).
		Str("user", input.UserID).
		Msg("budget created")
	return budget, nil
}

// AddItem appends an item to a draft budget without recalculating totals;
// the stored tax/total snapshots stay stale until Recalculate is called.
func (s *BudgetService) AddItem(ctx context.Context, budgetID uuid.UUID, input BudgetItemInput) (*model.Budget, error) {
	budget, err := s.Get(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	if budget.Status != model.BudgetStatusDraft {
		return nil, fmt.Errorf("%w: only draft budgets can be edited (status %s)", ErrConflict, budget.Status)
	}

	tariff, err := s.tariffs.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("load active tariff: %w", err)
	}

	s.calc.AddItem(budget, model.BudgetItem{
		ID:                    uuid.New(),
		Kind:                  input.Kind,
		Code:                  input.Code,
		Description:           input.Description,
		Quantity:              input.Quantity,
		Hours:                 input.Hours,
		UnitPrice:             input.UnitPrice,
		AdjustmentPercent:     input.AdjustmentPercent,
		RequiresPaint:         input.RequiresPaint,
		RequiresDoubleRemoval: input.RequiresDoubleRemoval,
		RequiresAlignment:     input.RequiresAlignment,
	}, *tariff)

	if err := s.budgets.Save(ctx, budget); err != nil {
		return nil, err
	}
	return budget, nil
}

// Recalculate reruns the rule engine and aggregation against the active
// tariff and persists the fresh snapshots.
func (s *BudgetService) Recalculate(ctx context.Context, budgetID uuid.UUID) (*model.Budget, error) {
	budget, err := s.Get(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	if workflow.Terminal(budget.Status) {
		return nil, fmt.Errorf("%w: budget %s is %s and can no longer be recalculated",
			ErrConflict, budget.Number, budget.Status)
	}
	tariff, err := s.tariffs.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("load active tariff: %w", err)
	}

	s.calc.CalculateTotals(budget, *tariff)

	if err := s.budgets.Save(ctx, budget); err != nil {
		return nil, err
	}
	s.log.Info().Str("number", budget.Number).Str("total", budget.Total.StringFixed(2)).Msg("budget recalculated")
	return budget, nil
}

// ChangeStatus moves the budget through its lifecycle. Illegal transitions
// surface the workflow's *InvalidTransitionError untouched.
func (s *BudgetService) ChangeStatus(ctx context.Context, budgetID uuid.UUID, target model.BudgetStatus, reason string) (*model.Budget, error) {
	budget, err := s.Get(ctx, budgetID)
	if err != nil {
		return nil, err
	}

	if err := workflow.ChangeState(budget, target, time.Now().UTC()); err != nil {
		return nil, err
	}
	if target == model.BudgetStatusRejected && reason != "" {
		if budget.Notes != "" {
			budget.Notes += "\n"
		}
		budget.Notes += "Rejected: " + reason
	}

	if err := s.budgets.Save(ctx, budget); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("number", budget.Number).
		Str("status", string(budget.Status)).
		Msg("budget status changed")
	return budget, nil
}

// Margin is the mean tax amount across all budgets (the domain's definition
// of margin).
func (s *BudgetService) Margin(ctx context.Context) (decimal.Decimal, error) {
	budgets, err := s.budgets.List(ctx, nil)
	if err != nil {
		return decimal.Zero, err
	}
	return s.calc.CalculateMargin(budgets), nil
}

type QuoteResult struct {
	FileName string
	Content  []byte
}

// Quote renders the printable quote document for a budget.
func (s *BudgetService) Quote(ctx context.Context, budgetID uuid.UUID) (*QuoteResult, error) {
	budget, err := s.Get(ctx, budgetID)
	if err != nil {
		return nil, err
	}

	content, err := s.quotes.Generate(*budget)
	if err != nil {
		return nil, fmt.Errorf("render quote: %w", err)
	}
	return &QuoteResult{
		FileName: fmt.Sprintf("quote-%s.pdf", budget.Number),
		Content:  content,
	}, nil
}
