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
)

// TariffWriter extends TariffStore with rate-card rotation.
type TariffWriter interface {
	TariffStore
	Create(ctx context.Context, tariff *model.Tariff) error
}

type TariffService struct {
	tariffs TariffWriter
	log     zerolog.Logger
}

func NewTariffService(tariffs TariffWriter, log zerolog.Logger) *TariffService {
	return &TariffService{tariffs: tariffs, log: log}
}

func (s *TariffService) Active(ctx context.Context) (*model.Tariff, error) {
	tariff, err := s.tariffs.GetActive(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no active tariff", ErrNotFound)
		}
		return nil, err
	}
	return tariff, nil
}

// Publish activates a new rate card; the repository retires the previous one
// in the same transaction. TaxRate must be a fraction in [0,1).
func (s *TariffService) Publish(ctx context.Context, tariff model.Tariff) (*model.Tariff, error) {
	if tariff.TaxRate.IsNegative() || tariff.TaxRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("%w: tax rate must be a fraction in [0,1)", ErrInvalidInput)
	}
	if tariff.LaborRatePerHour.IsNegative() || tariff.PaintRatePerHour.IsNegative() {
		return nil, fmt.Errorf("%w: hourly rates cannot be negative", ErrInvalidInput)
	}
	if tariff.SurchargeFactor.IsZero() {
		tariff.SurchargeFactor = decimal.NewFromInt(1)
	}
	if tariff.DiscountFactor.IsZero() {
		tariff.DiscountFactor = decimal.NewFromInt(1)
	}

	tariff.ID = uuid.New()
	tariff.CreatedAt = time.Now().UTC()
	if err := s.tariffs.Create(ctx, &tariff); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("tax_rate", tariff.TaxRate.String()).
		Str("labor_rate", tariff.LaborRatePerHour.String()).
		Msg("rate card published")
	return &tariff, nil
}
