package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/MrZaiter32/atelierpro/internal/model"
)

type BudgetRepository struct {
	db *gorm.DB
}

func NewBudgetRepository(db *gorm.DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

func (r *BudgetRepository) List(ctx context.Context, status *model.BudgetStatus) ([]model.Budget, error) {
	query := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Items").
		Order("created_at DESC")
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var budgets []model.Budget
	if err := query.Find(&budgets).Error; err != nil {
		return nil, err
	}
	return budgets, nil
}

func (r *BudgetRepository) Get(ctx context.Context, id uuid.UUID) (*model.Budget, error) {
	var budget model.Budget
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Vehicle").
		Preload("Items").
		First(&budget, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &budget, nil
}

func (r *BudgetRepository) Create(ctx context.Context, budget *model.Budget) error {
	return r.db.WithContext(ctx).Create(budget).Error
}

// Save persists the budget header and replaces its item rows, so rule-engine
// injections and recalculated snapshots land atomically.
func (r *BudgetRepository) Save(ctx context.Context, budget *model.Budget) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items", "Client", "Vehicle").Save(budget).Error; err != nil {
			return err
		}
		if err := tx.Where("budget_id = ?", budget.ID).Delete(&model.BudgetItem{}).Error; err != nil {
			return err
		}
		if len(budget.Items) == 0 {
			return nil
		}
		return tx.Create(&budget.Items).Error
	})
}

// NextNumber allocates the next sequential quote number for the year, in the
// form P2026-00001.
func (r *BudgetRepository) NextNumber(ctx context.Context, year int) (string, error) {
	prefix := fmt.Sprintf("P%d-", year)

	var last string
	err := r.db.WithContext(ctx).Raw(`
		SELECT number
		FROM budgets
		WHERE number LIKE ?
		ORDER BY number DESC
		LIMIT 1
	`, prefix+"%").Scan(&last).Error
	if err != nil {
		return "", err
	}

	seq := 1
	if last != "" {
		parts := strings.Split(last, "-")
		if n, err := strconv.Atoi(parts[len(parts)-1]); err == nil {
			seq = n + 1
		}
	}
	return fmt.Sprintf("%s%05d", prefix, seq), nil
}

func (r *BudgetRepository) GetVehicle(ctx context.Context, vin string) (*model.Vehicle, error) {
	var vehicle model.Vehicle
	if err := r.db.WithContext(ctx).First(&vehicle, "vin = ?", vin).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *BudgetRepository) SaveVehicle(ctx context.Context, vehicle *model.Vehicle) error {
	return r.db.WithContext(ctx).Save(vehicle).Error
}
