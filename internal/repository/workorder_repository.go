package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/MrZaiter32/atelierpro/internal/model"
)

type WorkOrderRepository struct {
	db *gorm.DB
}

func NewWorkOrderRepository(db *gorm.DB) *WorkOrderRepository {
	return &WorkOrderRepository{db: db}
}

func (r *WorkOrderRepository) List(ctx context.Context, status *model.WorkOrderStatus) ([]model.WorkOrder, error) {
	query := r.db.WithContext(ctx).
		Preload("Technician").
		Preload("Items").
		Order("created_at DESC")
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	var orders []model.WorkOrder
	err := query.Find(&orders).Error
	return orders, err
}

func (r *WorkOrderRepository) Get(ctx context.Context, id uuid.UUID) (*model.WorkOrder, error) {
	var order model.WorkOrder
	err := r.db.WithContext(ctx).
		Preload("Technician").
		Preload("Items").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *WorkOrderRepository) Create(ctx context.Context, order *model.WorkOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *WorkOrderRepository) Save(ctx context.Context, order *model.WorkOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items", "Technician").Save(order).Error; err != nil {
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

func (r *WorkOrderRepository) ExistsForBudget(ctx context.Context, budgetID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.WorkOrder{}).
		Where("budget_id = ? AND status <> ?", budgetID, model.WorkOrderCancelled).
		Count(&count).Error
	return count > 0, err
}

func (r *WorkOrderRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.WorkOrder{}).
		Where("status IN ?", []model.WorkOrderStatus{model.WorkOrderPending, model.WorkOrderInProgress}).
		Count(&count).Error
	return count, err
}

func (r *WorkOrderRepository) ListTechnicians(ctx context.Context, activeOnly bool) ([]model.Technician, error) {
	query := r.db.WithContext(ctx).Order("last_name, first_name")
	if activeOnly {
		query = query.Where("active")
	}
	var technicians []model.Technician
	err := query.Find(&technicians).Error
	return technicians, err
}

func (r *WorkOrderRepository) GetTechnician(ctx context.Context, id uuid.UUID) (*model.Technician, error) {
	var technician model.Technician
	if err := r.db.WithContext(ctx).First(&technician, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &technician, nil
}

func (r *WorkOrderRepository) CreateTechnician(ctx context.Context, technician *model.Technician) error {
	return r.db.WithContext(ctx).Create(technician).Error
}
