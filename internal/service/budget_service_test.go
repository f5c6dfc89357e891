package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/MrZaiter32/atelierpro/internal/model"
	"github.com/MrZaiter32/atelierpro/internal/pricing"
	"github.com/MrZaiter32/atelierpro/internal/workflow"
)

type fakeBudgetStore struct {
	budgets  map[uuid.UUID]*model.Budget
	vehicles map[string]*model.Vehicle
	seq      int
}

func newFakeBudgetStore() *fakeBudgetStore {
	return &fakeBudgetStore{
		budgets:  make(map[uuid.UUID]*model.Budget),
		vehicles: make(map[string]*model.Vehicle),
	}
}

func (f *fakeBudgetStore) List(ctx context.Context, status *model.BudgetStatus) ([]model.Budget, error) {
	var result []model.Budget
	for _, budget := range f.budgets {
		if status == nil || budget.Status == *status {
			result = append(result, *budget)
		}
	}
	return result, nil
}

func (f *fakeBudgetStore) Get(ctx context.Context, id uuid.UUID) (*model.Budget, error) {
	budget, ok := f.budgets[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *budget
	return &copied, nil
}

func (f *fakeBudgetStore) Create(ctx context.Context, budget *model.Budget) error {
	copied := *budget
	f.budgets[budget.ID] = &copied
	return nil
}

func (f *fakeBudgetStore) Save(ctx context.Context, budget *model.Budget) error {
	if _, ok := f.budgets[budget.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *budget
	f.budgets[budget.ID] = &copied
	return nil
}

func (f *fakeBudgetStore) NextNumber(ctx context.Context, year int) (string, error) {
	f.seq++
	return fmt.Sprintf("P%d-%05d", year, f.seq), nil
}

func (f *fakeBudgetStore) GetVehicle(ctx context.Context, vin string) (*model.Vehicle, error) {
	vehicle, ok := f.vehicles[vin]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return vehicle, nil
}

func (f *fakeBudgetStore) SaveVehicle(ctx context.Context, vehicle *model.Vehicle) error {
	f.vehicles[vehicle.VIN] = vehicle
	return nil
}

type fakeTariffStore struct {
	tariff *model.Tariff
}

func (f *fakeTariffStore) GetActive(ctx context.Context) (*model.Tariff, error) {
	if f.tariff == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.tariff, nil
}

type fakeClientLookup struct {
	clients map[uuid.UUID]*model.Client
}

func (f *fakeClientLookup) Get(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	client, ok := f.clients[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return client, nil
}

type fakeQuoteGenerator struct{}

func (fakeQuoteGenerator) Generate(budget model.Budget) ([]byte, error) {
	return []byte("%PDF " + budget.Number), nil
}

func newTestBudgetService(store *fakeBudgetStore, clients *fakeClientLookup) *BudgetService {
	tariffs := &fakeTariffStore{tariff: &model.Tariff{
		ID:               uuid.New(),
		LaborRatePerHour: decimal.NewFromInt(45),
		PaintRatePerHour: decimal.NewFromInt(38),
		TaxRate:          decimal.NewFromFloat(0.16),
		Active:           true,
	}}
	if clients == nil {
		clients = &fakeClientLookup{clients: map[uuid.UUID]*model.Client{}}
	}
	calc := pricing.NewCalculator(pricing.DefaultEngine())
	return NewBudgetService(store, tariffs, clients, calc, fakeQuoteGenerator{}, zerolog.Nop())
}

func partInput() BudgetItemInput {
	return BudgetItemInput{
		Kind:        model.ItemKindPart,
		Code:        "DOOR-01",
		Description: "Front door",
		Quantity:    1,
		Hours:       2,
		UnitPrice:   decimal.NewFromInt(100),
	}
}

func TestCreateBudgetComputesTotals(t *testing.T) {
	store := newFakeBudgetStore()
	svc := newTestBudgetService(store, nil)

	budget, err := svc.Create(context.Background(), CreateBudgetInput{
		Items: []BudgetItemInput{
			partInput(),
			{Kind: model.ItemKindLabor, Code: "LAB-01", Description: "Panel beating", Quantity: 1, Hours: 3, UnitPrice: decimal.NewFromInt(45)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, model.BudgetStatusDraft, budget.Status)
	assert.Regexp(t, `^P\d{4}-\d{5}$`, budget.Number)
	// subtotal 335, tax 16% of it
	assert.True(t, budget.TaxApplied.Equal(decimal.NewFromFloat(53.6)), budget.TaxApplied.String())
	assert.True(t, budget.Total.Equal(decimal.NewFromFloat(388.6)), budget.Total.String())

	stored, err := store.Get(context.Background(), budget.ID)
	require.NoError(t, err)
	assert.Equal(t, budget.Number, stored.Number)
}

func TestCreateBudgetValidation(t *testing.T) {
	svc := newTestBudgetService(newFakeBudgetStore(), nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateBudgetInput{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	bad := partInput()
	bad.Quantity = -1
	_, err = svc.Create(ctx, CreateBudgetInput{Items: []BudgetItemInput{bad}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	bad = partInput()
	bad.UnitPrice = decimal.NewFromInt(-10)
	_, err = svc.Create(ctx, CreateBudgetInput{Items: []BudgetItemInput{bad}})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateBudgetUnknownClient(t *testing.T) {
	svc := newTestBudgetService(newFakeBudgetStore(), nil)
	missing := uuid.New()

	_, err := svc.Create(context.Background(), CreateBudgetInput{
		ClientID: &missing,
		Items:    []BudgetItemInput{partInput()},
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateBudgetAppliesVehicleDepreciation(t *testing.T) {
	store := newFakeBudgetStore()
	svc := newTestBudgetService(store, nil)

	budget, err := svc.Create(context.Background(), CreateBudgetInput{
		Vehicle: &VehicleInput{VIN: "VIN123", AgeYears: 3},
		Items:   []BudgetItemInput{partInput()},
	})
	require.NoError(t, err)

	require.Len(t, budget.Items, 1)
	assert.True(t, budget.Items[0].AdjustmentPercent.Equal(decimal.NewFromInt(-30)),
		budget.Items[0].AdjustmentPercent.String())
	// 100 * 2h * 1 = 200 base, -30% = 140, tax 22.40
	assert.True(t, budget.Total.Equal(decimal.NewFromFloat(162.4)), budget.Total.String())

	_, err = store.GetVehicle(context.Background(), "VIN123")
	assert.NoError(t, err)
}

func TestCreateBudgetReusesKnownVehicle(t *testing.T) {
	store := newFakeBudgetStore()
	store.vehicles["VIN123"] = &model.Vehicle{VIN: "VIN123", Trim: "GLX", AgeYears: 3}
	svc := newTestBudgetService(store, nil)

	budget, err := svc.Create(context.Background(), CreateBudgetInput{
		Vehicle: &VehicleInput{VIN: "VIN123"},
		Items:   []BudgetItemInput{partInput()},
	})
	require.NoError(t, err)

	// Age comes from the stored vehicle, not the request.
	require.Len(t, budget.Items, 1)
	assert.True(t, budget.Items[0].AdjustmentPercent.Equal(decimal.NewFromInt(-30)),
		budget.Items[0].AdjustmentPercent.String())

	vehicle, err := store.GetVehicle(context.Background(), "VIN123")
	require.NoError(t, err)
	assert.Equal(t, "GLX", vehicle.Trim)
	assert.Equal(t, 3, vehicle.AgeYears)
}

func TestRecalculateRejectsTerminalBudget(t *testing.T) {
	store := newFakeBudgetStore()
	svc := newTestBudgetService(store, nil)
	ctx := context.Background()

	budget, err := svc.Create(ctx, CreateBudgetInput{Items: []BudgetItemInput{partInput()}})
	require.NoError(t, err)

	_, err = svc.ChangeStatus(ctx, budget.ID, model.BudgetStatusRejected, "client declined")
	require.NoError(t, err)

	_, err = svc.Recalculate(ctx, budget.ID)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestAddItemLeavesTotalsStale(t *testing.T) {
	store := newFakeBudgetStore()
	svc := newTestBudgetService(store, nil)
	ctx := context.Background()

	budget, err := svc.Create(ctx, CreateBudgetInput{Items: []BudgetItemInput{partInput()}})
	require.NoError(t, err)
	totalBefore := budget.Total

	updated, err := svc.AddItem(ctx, budget.ID, BudgetItemInput{
		Kind: model.ItemKindLabor, Code: "LAB-02", Description: "Polishing", Quantity: 1, Hours: 1, UnitPrice: decimal.NewFromInt(45),
	})
	require.NoError(t, err)

	assert.Len(t, updated.Items, 2)
	assert.True(t, updated.Total.Equal(totalBefore), "totals must stay stale until a recalculation")

	recalced, err := svc.Recalculate(ctx, budget.ID)
	require.NoError(t, err)
	assert.True(t, recalced.Total.GreaterThan(totalBefore))
}

func TestAddItemRejectsNonDraft(t *testing.T) {
	store := newFakeBudgetStore()
	svc := newTestBudgetService(store, nil)
	ctx := context.Background()

	budget, err := svc.Create(ctx, CreateBudgetInput{Items: []BudgetItemInput{partInput()}})
	require.NoError(t, err)

	_, err = svc.ChangeStatus(ctx, budget.ID, model.BudgetStatusApproved, "")
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, budget.ID, partInput())
	assert.ErrorIs(t, err, ErrConflict)
}

func TestChangeStatusLifecycle(t *testing.T) {
	store := newFakeBudgetStore()
	svc := newTestBudgetService(store, nil)
	ctx := context.Background()

	budget, err := svc.Create(ctx, CreateBudgetInput{Items: []BudgetItemInput{partInput()}})
	require.NoError(t, err)

	approved, err := svc.ChangeStatus(ctx, budget.ID, model.BudgetStatusApproved, "")
	require.NoError(t, err)
	assert.Equal(t, model.BudgetStatusApproved, approved.Status)
	assert.NotNil(t, approved.ApprovedAt)

	closed, err := svc.ChangeStatus(ctx, budget.ID, model.BudgetStatusClosed, "")
	require.NoError(t, err)
	assert.Equal(t, model.BudgetStatusClosed, closed.Status)

	_, err = svc.ChangeStatus(ctx, budget.ID, model.BudgetStatusDraft, "")
	var transition *workflow.InvalidTransitionError
	require.ErrorAs(t, err, &transition)
	assert.Equal(t, model.BudgetStatusClosed, transition.From)
	assert.Equal(t, model.BudgetStatusDraft, transition.To)
}

func TestChangeStatusRejectionKeepsReason(t *testing.T) {
	store := newFakeBudgetStore()
	svc := newTestBudgetService(store, nil)
	ctx := context.Background()

	budget, err := svc.Create(ctx, CreateBudgetInput{Items: []BudgetItemInput{partInput()}})
	require.NoError(t, err)

	rejected, err := svc.ChangeStatus(ctx, budget.ID, model.BudgetStatusRejected, "price too high")
	require.NoError(t, err)
	assert.Equal(t, model.BudgetStatusRejected, rejected.Status)
	assert.Contains(t, rejected.Notes, "Rejected: price too high")
	assert.Nil(t, rejected.ApprovedAt)
}

func TestMarginAveragesTaxAcrossBudgets(t *testing.T) {
	store := newFakeBudgetStore()
	svc := newTestBudgetService(store, nil)
	ctx := context.Background()

	margin, err := svc.Margin(ctx)
	require.NoError(t, err)
	assert.True(t, margin.IsZero())

	item := partInput() // base 200, tax 32
	_, err = svc.Create(ctx, CreateBudgetInput{Items: []BudgetItemInput{item}})
	require.NoError(t, err)

	double := partInput()
	double.Quantity = 2 // base 400, tax 64
	_, err = svc.Create(ctx, CreateBudgetInput{Items: []BudgetItemInput{double}})
	require.NoError(t, err)

	margin, err = svc.Margin(ctx)
	require.NoError(t, err)
	assert.True(t, margin.Equal(decimal.NewFromInt(48)), margin.String())
}

func TestQuote(t *testing.T) {
	store := newFakeBudgetStore()
	svc := newTestBudgetService(store, nil)
	ctx := context.Background()

	budget, err := svc.Create(ctx, CreateBudgetInput{Items: []BudgetItemInput{partInput()}})
	require.NoError(t, err)

	result, err := svc.Quote(ctx, budget.ID)
	require.NoError(t, err)
	assert.Equal(t, "quote-"+budget.Number+".pdf", result.FileName)
	assert.NotEmpty(t, result.Content)

	_, err = svc.Quote(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
