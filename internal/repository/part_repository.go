package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/MrZaiter32/atelierpro/internal/model"
)

type PartRepository struct {
	db *gorm.DB
}

func NewPartRepository(db *gorm.DB) *PartRepository {
	return &PartRepository{db: db}
}

func (r *PartRepository) List(ctx context.Context, activeOnly bool) ([]model.Part, error) {
	query := r.db.WithContext(ctx).Order("category, sku")
	if activeOnly {
		query = query.Where("active")
	}
	var parts []model.Part
	err := query.Find(&parts).Error
	return parts, err
}

func (r *PartRepository) Get(ctx context.Context, id uuid.UUID) (*model.Part, error) {
	var part model.Part
	if err := r.db.WithContext(ctx).First(&part, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &part, nil
}

func (r *PartRepository) GetBySKU(ctx context.Context, sku string) (*model.Part, error) {
	var part model.Part
	if err := r.db.WithContext(ctx).First(&part, "sku = ?", sku).Error; err != nil {
		return nil, err
	}
	return &part, nil
}

func (r *PartRepository) Create(ctx context.Context, part *model.Part) error {
	return r.db.WithContext(ctx).Create(part).Error
}

func (r *PartRepository) Update(ctx context.Context, part *model.Part) error {
	return r.db.WithContext(ctx).Save(part).Error
}

// RecordMovement writes the movement and the part's new stock level in one
// transaction. The caller has already computed StockBefore/StockAfter.
func (r *PartRepository) RecordMovement(ctx context.Context, movement *model.StockMovement) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(movement).Error; err != nil {
			return err
		}
		return tx.Model(&model.Part{}).
			Where("id = ?", movement.PartID).
			Updates(map[string]interface{}{
				"stock":      movement.StockAfter,
				"updated_at": time.Now().UTC(),
			}).Error
	})
}

func (r *PartRepository) Movements(ctx context.Context, partID uuid.UUID, from, to *time.Time) ([]model.StockMovement, error) {
	query := r.db.WithContext(ctx).Where("part_id = ?", partID)
	if from != nil {
		query = query.Where("date >= ?", *from)
	}
	if to != nil {
		query = query.Where("date <= ?", *to)
	}

	var movements []model.StockMovement
	err := query.Order("date DESC").Find(&movements).Error
	return movements, err
}

func (r *PartRepository) LowStock(ctx context.Context) ([]model.Part, error) {
	var parts []model.Part
	err := r.db.WithContext(ctx).
		Where("active AND stock <= stock_min").
		Order("stock").
		Find(&parts).Error
	return parts, err
}

func (r *PartRepository) Critical(ctx context.Context) ([]model.Part, error) {
	var parts []model.Part
	err := r.db.WithContext(ctx).
		Where("active AND stock <= 0").
		Order("name").
		Find(&parts).Error
	return parts, err
}

func (r *PartRepository) TotalValue(ctx context.Context) (decimal.Decimal, error) {
	var raw string
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(stock * avg_cost), 0)
		FROM parts
		WHERE active
	`).Scan(&raw).Error
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(raw)
}
