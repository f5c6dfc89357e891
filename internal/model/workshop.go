package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type WorkOrderStatus string

const (
	WorkOrderPending    WorkOrderStatus = "PENDING"
	WorkOrderInProgress WorkOrderStatus = "IN_PROGRESS"
	WorkOrderCompleted  WorkOrderStatus = "COMPLETED"
	WorkOrderCancelled  WorkOrderStatus = "CANCELLED"
)

type Technician struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName    string          `json:"first_name"`
	LastName     string          `json:"last_name"`
	Speciality   string          `json:"speciality"`
	Phone        string          `json:"phone"`
	Email        string          `json:"email"`
	Active       bool            `json:"active"`
	HoursPerWeek float64         `json:"hours_per_week"`
	CostPerHour  decimal.Decimal `gorm:"type:numeric(18,2)" json:"cost_per_hour"`
	CreatedAt    time.Time       `json:"created_at"`
}

// WorkOrder is a repair order opened from an approved budget; its items are
// copied from the budget so actual hours can be tracked against estimates.
type WorkOrder struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	BudgetID     uuid.UUID       `gorm:"type:uuid;index" json:"budget_id"`
	TechnicianID *uuid.UUID      `gorm:"type:uuid" json:"technician_id,omitempty"`
	Technician   *Technician     `gorm:"foreignKey:TechnicianID" json:"technician,omitempty"`
	Status       WorkOrderStatus `gorm:"type:work_order_status" json:"status"`

	Items []WorkOrderItem `gorm:"foreignKey:WorkOrderID" json:"items"`

	EstimatedHours float64 `json:"estimated_hours"`
	ActualHours    float64 `json:"actual_hours"`
	Priority       string  `json:"priority"`
	Notes          string  `json:"notes"`

	CreatedAt   time.Time  `json:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

type WorkOrderItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	WorkOrderID    uuid.UUID       `gorm:"type:uuid;index" json:"work_order_id"`
	BudgetItemID   uuid.UUID       `gorm:"type:uuid" json:"budget_item_id"`
	Kind           ItemKind        `gorm:"type:budget_item_kind" json:"kind"`
	Code           string          `json:"code"`
	Description    string          `json:"description"`
	Quantity       int             `json:"quantity"`
	EstimatedHours float64         `json:"estimated_hours"`
	ActualHours    float64         `json:"actual_hours"`
	UnitPrice      decimal.Decimal `gorm:"type:numeric(18,2)" json:"unit_price"`
	Done           bool            `json:"done"`
}
