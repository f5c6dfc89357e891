package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/MrZaiter32/atelierpro/internal/model"
)

type PartStore interface {
	List(ctx context.Context, activeOnly bool) ([]model.Part, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Part, error)
	GetBySKU(ctx context.Context, sku string) (*model.Part, error)
	Create(ctx context.Context, part *model.Part) error
	Update(ctx context.Context, part *model.Part) error
	RecordMovement(ctx context.Context, movement *model.StockMovement) error
	Movements(ctx context.Context, partID uuid.UUID, from, to *time.Time) ([]model.StockMovement, error)
	LowStock(ctx context.Context) ([]model.Part, error)
	Critical(ctx context.Context) ([]model.Part, error)
	TotalValue(ctx context.Context) (decimal.Decimal, error)
}

// PriceListRow is one line of an imported parts price list.
type PriceListRow struct {
	SKU       string
	Name      string
	Category  string
	AvgCost   decimal.Decimal
	SalePrice decimal.Decimal
	StockMin  int
	StockMax  int
}

// PriceListParser reads a parts price list out of an uploaded workbook.
type PriceListParser interface {
	Parse(content []byte) ([]PriceListRow, error)
}

type InventoryService struct {
	parts     PartStore
	priceList PriceListParser
	log       zerolog.Logger
}

func NewInventoryService(parts PartStore, priceList PriceListParser, log zerolog.Logger) *InventoryService {
	return &InventoryService{parts: parts, priceList: priceList, log: log}
}

func (s *InventoryService) List(ctx context.Context, activeOnly bool) ([]model.Part, error) {
	return s.parts.List(ctx, activeOnly)
}

func (s *InventoryService) Get(ctx context.Context, id uuid.UUID) (*model.Part, error) {
	part, err := s.parts.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: part %s", ErrNotFound, id)
		}
		return nil, err
	}
	return part, nil
}

func (s *InventoryService) Create(ctx context.Context, part model.Part) (*model.Part, error) {
	part.SKU = strings.TrimSpace(part.SKU)
	if part.SKU == "" {
		return nil, fmt.Errorf("%w: sku is required", ErrInvalidInput)
	}
	if part.StockMin < 0 || part.StockMax < 0 {
		return nil, fmt.Errorf("%w: stock limits cannot be negative", ErrInvalidInput)
	}

	if _, err := s.parts.GetBySKU(ctx, part.SKU); err == nil {
		return nil, fmt.Errorf("%w: sku %s already exists", ErrConflict, part.SKU)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	part.ID = uuid.New()
	part.Active = true
	part.UpdatedAt = time.Now().UTC()
	if err := s.parts.Create(ctx, &part); err != nil {
		return nil, err
	}
	s.log.Info().Str("sku", part.SKU).Msg("part created")
	return &part, nil
}

func (s *InventoryService) Update(ctx context.Context, part model.Part) (*model.Part, error) {
	existing, err := s.Get(ctx, part.ID)
	if err != nil {
		return nil, err
	}

	existing.Name = part.Name
	existing.Description = part.Description
	existing.StockMin = part.StockMin
	existing.StockMax = part.StockMax
	existing.AvgCost = part.AvgCost
	existing.SalePrice = part.SalePrice
	existing.Category = part.Category
	existing.Location = part.Location
	existing.UpdatedAt = time.Now().UTC()

	if err := s.parts.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *InventoryService) Deactivate(ctx context.Context, id uuid.UUID) error {
	part, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	part.Active = false
	part.UpdatedAt = time.Now().UTC()
	return s.parts.Update(ctx, part)
}

type MovementInput struct {
	PartID          uuid.UUID
	Kind            model.MovementKind
	Quantity        int
	Reason          string
	UserID          string
	PurchaseOrderID *uuid.UUID
	WorkOrderID     *uuid.UUID
}

// RegisterMovement applies an inventory change. OUT and RETURN are guarded
// against insufficient stock; ADJUST sets the absolute level; IN adds. The
// movement keeps before/after snapshots.
func (s *InventoryService) RegisterMovement(ctx context.Context, input MovementInput) (*model.StockMovement, error) {
	if input.Quantity <= 0 && input.Kind != model.MovementKindAdjust {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}
	if input.Kind == model.MovementKindAdjust && input.Quantity < 0 {
		return nil, fmt.Errorf("%w: adjusted stock cannot be negative", ErrInvalidInput)
	}
	if strings.TrimSpace(input.Reason) == "" {
		return nil, fmt.Errorf("%w: movement reason is required", ErrInvalidInput)
	}

	part, err := s.Get(ctx, input.PartID)
	if err != nil {
		return nil, err
	}

	before := part.Stock
	after := before
	switch input.Kind {
	case model.MovementKindIn:
		after = before + input.Quantity
		if part.StockMax > 0 && after > part.StockMax {
			s.log.Warn().Str("sku", part.SKU).Int("stock", after).Msg("stock above configured maximum")
		}
	case model.MovementKindOut, model.MovementKindReturn:
		if before < input.Quantity {
			return nil, fmt.Errorf("%w: insufficient stock for %s (have %d, need %d)",
				ErrConflict, part.SKU, before, input.Quantity)
		}
		after = before - input.Quantity
	case model.MovementKindAdjust:
		after = input.Quantity
	default:
		return nil, fmt.Errorf("%w: unknown movement kind %q", ErrInvalidInput, input.Kind)
	}

	movement := &model.StockMovement{
		ID:              uuid.New(),
		PartID:          part.ID,
		Kind:            input.Kind,
		Quantity:        input.Quantity,
		Reason:          input.Reason,
		UserID:          input.UserID,
		Date:            time.Now().UTC(),
		PurchaseOrderID: input.PurchaseOrderID,
		WorkOrderID:     input.WorkOrderID,
		StockBefore:     before,
		StockAfter:      after,
	}
	if err := s.parts.RecordMovement(ctx, movement); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("sku", part.SKU).
		Str("kind", string(input.Kind)).
		Int("before", before).
		Int("after", after).
		Msg("stock movement registered")
	return movement, nil
}

func (s *InventoryService) Movements(ctx context.Context, partID uuid.UUID, from, to *time.Time) ([]model.StockMovement, error) {
	if _, err := s.Get(ctx, partID); err != nil {
		return nil, err
	}
	return s.parts.Movements(ctx, partID, from, to)
}

func (s *InventoryService) LowStock(ctx context.Context) ([]model.Part, error) {
	return s.parts.LowStock(ctx)
}

func (s *InventoryService) Critical(ctx context.Context) ([]model.Part, error) {
	return s.parts.Critical(ctx)
}

func (s *InventoryService) TotalValue(ctx context.Context) (decimal.Decimal, error) {
	return s.parts.TotalValue(ctx)
}

type ImportResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

// ImportPriceList upserts parts from an uploaded price-list workbook. Rows
// without a SKU are skipped; import never touches stock levels.
func (s *InventoryService) ImportPriceList(ctx context.Context, content []byte) (*ImportResult, error) {
	rows, err := s.priceList.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	result := &ImportResult{}
	for _, row := range rows {
		sku := strings.TrimSpace(row.SKU)
		if sku == "" {
			result.Skipped++
			continue
		}

		existing, err := s.parts.GetBySKU(ctx, sku)
		switch {
		case err == nil:
			existing.Name = row.Name
			existing.Category = row.Category
			existing.AvgCost = row.AvgCost
			existing.SalePrice = row.SalePrice
			if row.StockMin > 0 {
				existing.StockMin = row.StockMin
			}
			if row.StockMax > 0 {
				existing.StockMax = row.StockMax
			}
			existing.UpdatedAt = time.Now().UTC()
			if err := s.parts.Update(ctx, existing); err != nil {
				return nil, err
			}
			result.Updated++
		case errors.Is(err, gorm.ErrRecordNotFound):
			part := &model.Part{
				ID:        uuid.New(),
				SKU:       sku,
				Name:      row.Name,
				Category:  row.Category,
				AvgCost:   row.AvgCost,
				SalePrice: row.SalePrice,
				StockMin:  row.StockMin,
				StockMax:  row.StockMax,
				Active:    true,
				UpdatedAt: time.Now().UTC(),
			}
			if err := s.parts.Create(ctx, part); err != nil {
				return nil, err
			}
			result.Created++
		default:
			return nil, err
		}
	}

	s.log.Info().
		Int("created", result.Created).
		Int("updated", result.Updated).
		Int("skipped", result.Skipped).
		Msg("price list imported")
	return result, nil
}
