package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/MrZaiter32/atelierpro/internal/model"
)

type fakeWorkOrderStore struct {
	orders      map[uuid.UUID]*model.WorkOrder
	technicians map[uuid.UUID]*model.Technician
}

func newFakeWorkOrderStore() *fakeWorkOrderStore {
	return &fakeWorkOrderStore{
		orders:      make(map[uuid.UUID]*model.WorkOrder),
		technicians: make(map[uuid.UUID]*model.Technician),
	}
}

func (f *fakeWorkOrderStore) List(ctx context.Context, status *model.WorkOrderStatus) ([]model.WorkOrder, error) {
	var result []model.WorkOrder
	for _, order := range f.orders {
		if status == nil || order.Status == *status {
			result = append(result, *order)
		}
	}
	return result, nil
}

func (f *fakeWorkOrderStore) Get(ctx context.Context, id uuid.UUID) (*model.WorkOrder, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *order
	copied.Items = append([]model.WorkOrderItem(nil), order.Items...)
	return &copied, nil
}

func (f *fakeWorkOrderStore) Create(ctx context.Context, order *model.WorkOrder) error {
	copied := *order
	copied.Items = append([]model.WorkOrderItem(nil), order.Items...)
	f.orders[order.ID] = &copied
	return nil
}

func (f *fakeWorkOrderStore) Save(ctx context.Context, order *model.WorkOrder) error {
	if _, ok := f.orders[order.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	return f.Create(ctx, order)
}

func (f *fakeWorkOrderStore) ExistsForBudget(ctx context.Context, budgetID uuid.UUID) (bool, error) {
	for _, order := range f.orders {
		if order.BudgetID == budgetID && order.Status != model.WorkOrderCancelled {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeWorkOrderStore) CountActive(ctx context.Context) (int64, error) {
	var count int64
	for _, order := range f.orders {
		if order.Status == model.WorkOrderPending || order.Status == model.WorkOrderInProgress {
			count++
		}
	}
	return count, nil
}

func (f *fakeWorkOrderStore) ListTechnicians(ctx context.Context, activeOnly bool) ([]model.Technician, error) {
	var result []model.Technician
	for _, technician := range f.technicians {
		if !activeOnly || technician.Active {
			result = append(result, *technician)
		}
	}
	return result, nil
}

func (f *fakeWorkOrderStore) GetTechnician(ctx context.Context, id uuid.UUID) (*model.Technician, error) {
	technician, ok := f.technicians[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return technician, nil
}

func (f *fakeWorkOrderStore) CreateTechnician(ctx context.Context, technician *model.Technician) error {
	f.technicians[technician.ID] = technician
	return nil
}

func approvedBudget(t *testing.T, budgets *fakeBudgetStore) *model.Budget {
	t.Helper()

	budget := &model.Budget{
		ID:     uuid.New(),
		Number: "P2026-00001",
		Status: model.BudgetStatusApproved,
		Items: []model.BudgetItem{
			{ID: uuid.New(), Kind: model.ItemKindPart, Code: "DOOR-01", Description: "Front door", Quantity: 1, Hours: 2, UnitPrice: decimal.NewFromInt(100)},
			{ID: uuid.New(), Kind: model.ItemKindLabor, Code: "LAB-01", Description: "Panel beating", Quantity: 1, Hours: 3, UnitPrice: decimal.NewFromInt(45)},
		},
	}
	require.NoError(t, budgets.Create(context.Background(), budget))
	return budget
}

func TestCreateFromBudgetCopiesItems(t *testing.T) {
	budgets := newFakeBudgetStore()
	store := newFakeWorkOrderStore()
	svc := NewWorkshopService(store, budgets, zerolog.Nop())
	budget := approvedBudget(t, budgets)

	order, err := svc.CreateFromBudget(context.Background(), CreateWorkOrderInput{BudgetID: budget.ID})
	require.NoError(t, err)

	assert.Equal(t, model.WorkOrderPending, order.Status)
	require.Len(t, order.Items, 2)
	assert.Equal(t, budget.Items[0].ID, order.Items[0].BudgetItemID)
	assert.Equal(t, "DOOR-01", order.Items[0].Code)
	assert.InDelta(t, 5.0, order.EstimatedHours, 1e-9)
}

func TestCreateFromBudgetRequiresApproval(t *testing.T) {
	budgets := newFakeBudgetStore()
	store := newFakeWorkOrderStore()
	svc := NewWorkshopService(store, budgets, zerolog.Nop())

	draft := &model.Budget{ID: uuid.New(), Number: "P2026-00002", Status: model.BudgetStatusDraft}
	require.NoError(t, budgets.Create(context.Background(), draft))

	_, err := svc.CreateFromBudget(context.Background(), CreateWorkOrderInput{BudgetID: draft.ID})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.CreateFromBudget(context.Background(), CreateWorkOrderInput{BudgetID: uuid.New()})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateFromBudgetRejectsSecondOrder(t *testing.T) {
	budgets := newFakeBudgetStore()
	store := newFakeWorkOrderStore()
	svc := NewWorkshopService(store, budgets, zerolog.Nop())
	budget := approvedBudget(t, budgets)

	_, err := svc.CreateFromBudget(context.Background(), CreateWorkOrderInput{BudgetID: budget.ID})
	require.NoError(t, err)

	_, err = svc.CreateFromBudget(context.Background(), CreateWorkOrderInput{BudgetID: budget.ID})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestWorkOrderLifecycle(t *testing.T) {
	budgets := newFakeBudgetStore()
	store := newFakeWorkOrderStore()
	svc := NewWorkshopService(store, budgets, zerolog.Nop())
	budget := approvedBudget(t, budgets)
	ctx := context.Background()

	order, err := svc.CreateFromBudget(ctx, CreateWorkOrderInput{BudgetID: budget.ID})
	require.NoError(t, err)

	_, err = svc.Complete(ctx, order.ID)
	assert.ErrorIs(t, err, ErrConflict, "pending orders cannot complete")

	started, err := svc.Start(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.WorkOrderInProgress, started.Status)
	assert.NotNil(t, started.StartedAt)

	logged, err := svc.LogHours(ctx, order.ID, LogHoursInput{ItemID: order.Items[0].ID, Hours: 1.5, Done: true})
	require.NoError(t, err)
	assert.InDelta(t, 1.5, logged.ActualHours, 1e-9)
	assert.True(t, logged.Items[0].Done)

	completed, err := svc.Complete(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.WorkOrderCompleted, completed.Status)
	assert.NotNil(t, completed.CompletedAt)

	count, err := svc.CountActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestLogHoursUnknownItem(t *testing.T) {
	budgets := newFakeBudgetStore()
	store := newFakeWorkOrderStore()
	svc := NewWorkshopService(store, budgets, zerolog.Nop())
	budget := approvedBudget(t, budgets)
	ctx := context.Background()

	order, err := svc.CreateFromBudget(ctx, CreateWorkOrderInput{BudgetID: budget.ID})
	require.NoError(t, err)
	_, err = svc.Start(ctx, order.ID)
	require.NoError(t, err)

	_, err = svc.LogHours(ctx, order.ID, LogHoursInput{ItemID: uuid.New(), Hours: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
