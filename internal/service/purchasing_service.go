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

type PurchaseStore interface {
	ListSuppliers(ctx context.Context, activeOnly bool) ([]model.Supplier, error)
	GetSupplier(ctx context.Context, id uuid.UUID) (*model.Supplier, error)
	CreateSupplier(ctx context.Context, supplier *model.Supplier) error
	UpdateSupplier(ctx context.Context, supplier *model.Supplier) error
	ListOrders(ctx context.Context, status *model.PurchaseOrderStatus) ([]model.PurchaseOrder, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*model.PurchaseOrder, error)
	CreateOrder(ctx context.Context, order *model.PurchaseOrder) error
	SaveOrder(ctx context.Context, order *model.PurchaseOrder) error
	NextNumber(ctx context.Context, year int) (string, error)
}

type PurchasingService struct {
	store     PurchaseStore
	inventory *InventoryService
	tariffs   TariffStore
	log       zerolog.Logger
}

func NewPurchasingService(store PurchaseStore, inventory *InventoryService, tariffs TariffStore, log zerolog.Logger) *PurchasingService {
	return &PurchasingService{store: store, inventory: inventory, tariffs: tariffs, log: log}
}

func (s *PurchasingService) ListSuppliers(ctx context.Context, activeOnly bool) ([]model.Supplier, error) {
	return s.store.ListSuppliers(ctx, activeOnly)
}

func (s *PurchasingService) GetSupplier(ctx context.Context, id uuid.UUID) (*model.Supplier, error) {
	supplier, err := s.store.GetSupplier(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: supplier %s", ErrNotFound, id)
		}
		return nil, err
	}
	return supplier, nil
}

func (s *PurchasingService) CreateSupplier(ctx context.Context, supplier model.Supplier) (*model.Supplier, error) {
	if strings.TrimSpace(supplier.Name) == "" {
		return nil, fmt.Errorf("%w: supplier name is required", ErrInvalidInput)
	}
	supplier.ID = uuid.New()
	supplier.Active = true
	supplier.CreatedAt = time.Now().UTC()
	if err := s.store.CreateSupplier(ctx, &supplier); err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (s *PurchasingService) UpdateSupplier(ctx context.Context, supplier model.Supplier) (*model.Supplier, error) {
	existing, err := s.GetSupplier(ctx, supplier.ID)
	if err != nil {
		return nil, err
	}

	existing.Name = supplier.Name
	existing.TaxID = supplier.TaxID
	existing.Phone = supplier.Phone
	existing.Email = supplier.Email
	existing.Address = supplier.Address
	existing.Contact = supplier.Contact
	existing.PaymentTerms = supplier.PaymentTerms
	existing.Active = supplier.Active

	if err := s.store.UpdateSupplier(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

type PurchaseOrderItemInput struct {
	PartID    uuid.UUID       `json:"part_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type CreatePurchaseOrderInput struct {
	SupplierID uuid.UUID                `json:"supplier_id"`
	Items      []PurchaseOrderItemInput `json:"items"`
	Notes      string                   `json:"notes"`
	UserID     string                   `json:"-"`
}

func (s *PurchasingService) ListOrders(ctx context.Context, status *model.PurchaseOrderStatus) ([]model.PurchaseOrder, error) {
	return s.store.ListOrders(ctx, status)
}

func (s *PurchasingService) GetOrder(ctx context.Context, id uuid.UUID) (*model.PurchaseOrder, error) {
	order, err := s.store.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: purchase order %s", ErrNotFound, id)
		}
		return nil, err
	}
	return order, nil
}

// CreateOrder allocates the next order number, totals the lines with the
// active tariff's tax rate and persists the order in CREATED state.
func (s *PurchasingService) CreateOrder(ctx context.Context, input CreatePurchaseOrderInput) (*model.PurchaseOrder, error) {
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("%w: a purchase order needs at least one item", ErrInvalidInput)
	}

	supplier, err := s.GetSupplier(ctx, input.SupplierID)
	if err != nil {
		return nil, err
	}
	if !supplier.Active {
		return nil, fmt.Errorf("%w: supplier %s is inactive", ErrConflict, supplier.Name)
	}

	tariff, err := s.tariffs.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("load active tariff: %w", err)
	}

	now := time.Now().UTC()
	number, err := s.store.NextNumber(ctx, now.Year())
	if err != nil {
		return nil, fmt.Errorf("allocate order number: %w", err)
	}

	order := &model.PurchaseOrder{
		ID:         uuid.New(),
		Number:     number,
		SupplierID: supplier.ID,
		Status:     model.PurchaseOrderCreated,
		Notes:      input.Notes,
		UserID:     input.UserID,
		CreatedAt:  now,
	}

	subtotal := decimal.Zero
	for _, in := range input.Items {
		if in.Quantity <= 0 {
			return nil, fmt.Errorf("%w: item quantity must be positive", ErrInvalidInput)
		}
		if in.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: item price cannot be negative", ErrInvalidInput)
		}
		if _, err := s.inventory.Get(ctx, in.PartID); err != nil {
			return nil, err
		}
		item := model.PurchaseOrderItem{
			ID:              uuid.New(),
			PurchaseOrderID: order.ID,
			PartID:          in.PartID,
			Quantity:        in.Quantity,
			UnitPrice:       in.UnitPrice,
		}
		order.Items = append(order.Items, item)
		subtotal = subtotal.Add(item.LineTotal())
	}

	order.Subtotal = subtotal
	order.Tax = subtotal.Mul(tariff.TaxRate)
	order.Total = order.Subtotal.Add(order.Tax)

	if err := s.store.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("number", order.Number).
		Str("supplier", supplier.Name).
		Str("total", order.Total.String()).
		Msg("purchase order created")
	return order, nil
}

func (s *PurchasingService) SendOrder(ctx context.Context, id uuid.UUID) (*model.PurchaseOrder, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status != model.PurchaseOrderCreated {
		return nil, fmt.Errorf("%w: order %s is %s, only created orders can be sent",
			ErrConflict, order.Number, order.Status)
	}

	now := time.Now().UTC()
	order.Status = model.PurchaseOrderSent
	order.SentAt = &now
	if err := s.store.SaveOrder(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *PurchasingService) CancelOrder(ctx context.Context, id uuid.UUID) (*model.PurchaseOrder, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	switch order.Status {
	case model.PurchaseOrderReceived, model.PurchaseOrderCancelled:
		return nil, fmt.Errorf("%w: order %s is %s and cannot be cancelled",
			ErrConflict, order.Number, order.Status)
	}

	order.Status = model.PurchaseOrderCancelled
	if err := s.store.SaveOrder(ctx, order); err != nil {
		return nil, err
	}
	s.log.Info().Str("number", order.Number).Msg("purchase order cancelled")
	return order, nil
}

type ReceiveItemInput struct {
	ItemID   uuid.UUID `json:"item_id"`
	Quantity int       `json:"quantity"`
}

// ReceiveItems books received quantities against a sent order. Each received
// line produces an IN stock movement; the order moves to PARTIAL until every
// line is complete, then to RECEIVED.
func (s *PurchasingService) ReceiveItems(ctx context.Context, id uuid.UUID, userID string, inputs []ReceiveItemInput) (*model.PurchaseOrder, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: nothing to receive", ErrInvalidInput)
	}

	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status != model.PurchaseOrderSent && order.Status != model.PurchaseOrderPartial {
		return nil, fmt.Errorf("%w: order %s is %s, only sent orders can receive goods",
			ErrConflict, order.Number, order.Status)
	}

	byID := make(map[uuid.UUID]*model.PurchaseOrderItem, len(order.Items))
	for i := range order.Items {
		byID[order.Items[i].ID] = &order.Items[i]
	}

	for _, in := range inputs {
		item, ok := byID[in.ItemID]
		if !ok {
			return nil, fmt.Errorf("%w: item %s is not on order %s", ErrInvalidInput, in.ItemID, order.Number)
		}
		if in.Quantity <= 0 {
			return nil, fmt.Errorf("%w: received quantity must be positive", ErrInvalidInput)
		}
		if item.ReceivedQty+in.Quantity > item.Quantity {
			return nil, fmt.Errorf("%w: receiving %d exceeds the %d ordered on line %s",
				ErrConflict, in.Quantity, item.Quantity, item.ID)
		}

		orderID := order.ID
		if _, err := s.inventory.RegisterMovement(ctx, MovementInput{
			PartID:          item.PartID,
			Kind:            model.MovementKindIn,
			Quantity:        in.Quantity,
			Reason:          fmt.Sprintf("Goods receipt %s", order.Number),
			UserID:          userID,
			PurchaseOrderID: &orderID,
		}); err != nil {
			return nil, err
		}
		item.ReceivedQty += in.Quantity
	}

	complete := true
	for _, item := range order.Items {
		if !item.Complete() {
			complete = false
			break
		}
	}
	if complete {
		now := time.Now().UTC()
		order.Status = model.PurchaseOrderReceived
		order.ReceivedAt = &now
	} else {
		order.Status = model.PurchaseOrderPartial
	}

	if err := s.store.SaveOrder(ctx, order); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("number", order.Number).
		Str("status", string(order.Status)).
		Msg("goods received")
	return order, nil
}
