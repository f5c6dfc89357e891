package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/MrZaiter32/atelierpro/internal/config"
	"github.com/MrZaiter32/atelierpro/internal/model"
)

type TariffRepository struct {
	db *gorm.DB
}

func NewTariffRepository(db *gorm.DB) *TariffRepository {
	return &TariffRepository{db: db}
}

func (r *TariffRepository) GetActive(ctx context.Context) (*model.Tariff, error) {
	var tariff model.Tariff
	err := r.db.WithContext(ctx).
		Where("active").
		Order("created_at DESC").
		First(&tariff).Error
	if err != nil {
		return nil, err
	}
	return &tariff, nil
}

// Create activates the new rate card and retires the previous one.
func (r *TariffRepository) Create(ctx context.Context, tariff *model.Tariff) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Tariff{}).Where("active").Update("active", false).Error; err != nil {
			return err
		}
		tariff.Active = true
		return tx.Create(tariff).Error
	})
}

// EnsureDefault seeds the rate card from config when the table is empty.
func (r *TariffRepository) EnsureDefault(ctx context.Context, cfg config.TariffConfig) error {
	_, err := r.GetActive(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.Create(ctx, &model.Tariff{
		ID:               uuid.New(),
		LaborRatePerHour: decimal.NewFromFloat(cfg.DefaultLaborRate),
		PaintRatePerHour: decimal.NewFromFloat(cfg.DefaultPaintRate),
		TaxRate:          decimal.NewFromFloat(cfg.DefaultTaxRate),
		SurchargeFactor:  decimal.NewFromInt(1),
		DiscountFactor:   decimal.NewFromInt(1),
	})
}
