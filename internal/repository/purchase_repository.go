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

type PurchaseRepository struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

func (r *PurchaseRepository) ListSuppliers(ctx context.Context, activeOnly bool) ([]model.Supplier, error) {
	query := r.db.WithContext(ctx).Order("name")
	if activeOnly {
		query = query.Where("active")
	}
	var suppliers []model.Supplier
	err := query.Find(&suppliers).Error
	return suppliers, err
}

func (r *PurchaseRepository) GetSupplier(ctx context.Context, id uuid.UUID) (*model.Supplier, error) {
	var supplier model.Supplier
	if err := r.db.WithContext(ctx).First(&supplier, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (r *PurchaseRepository) CreateSupplier(ctx context.Context, supplier *model.Supplier) error {
	return r.db.WithContext(ctx).Create(supplier).Error
}

func (r *PurchaseRepository) UpdateSupplier(ctx context.Context, supplier *model.Supplier) error {
	return r.db.WithContext(ctx).Save(supplier).Error
}

func (r *PurchaseRepository) ListOrders(ctx context.Context, status *model.PurchaseOrderStatus) ([]model.PurchaseOrder, error) {
	query := r.db.WithContext(ctx).
		Preload("Supplier").
		Preload("Items").
		Order("created_at DESC")
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	var orders []model.PurchaseOrder
	err := query.Find(&orders).Error
	return orders, err
}

func (r *PurchaseRepository) GetOrder(ctx context.Context, id uuid.UUID) (*model.PurchaseOrder, error) {
	var order model.PurchaseOrder
	err := r.db.WithContext(ctx).
		Preload("Supplier").
		Preload("Items").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *PurchaseRepository) CreateOrder(ctx context.Context, order *model.PurchaseOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *PurchaseRepository) SaveOrder(ctx context.Context, order *model.PurchaseOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items", "Supplier").Save(order).Error; err != nil {
			return err
		}
		for i := range order.Items {
			if err := tx.Save(&order.Items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// NextNumber allocates the next purchase-order number for the year, in the
// form OC-2026-001.
func (r *PurchaseRepository) NextNumber(ctx context.Context, year int) (string, error) {
	prefix := fmt.Sprintf("OC-%d-", year)

	var last string
	err := r.db.WithContext(ctx).Raw(`
		SELECT number
		FROM purchase_orders
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
	return fmt.Sprintf("%s%03d", prefix, seq), nil
}
