package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type MovementKind string

const (
	MovementKindIn     MovementKind = "IN"
	MovementKindOut    MovementKind = "OUT"
	MovementKindAdjust MovementKind = "ADJUST"
	MovementKindReturn MovementKind = "RETURN"
)

// Part is a stocked spare part (refacción).
type Part struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	SKU         string          `gorm:"column:sku;uniqueIndex" json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Stock       int             `json:"stock"`
	StockMin    int             `json:"stock_min"`
	StockMax    int             `json:"stock_max"`
	AvgCost     decimal.Decimal `gorm:"type:numeric(18,2)" json:"avg_cost"`
	SalePrice   decimal.Decimal `gorm:"type:numeric(18,2)" json:"sale_price"`
	Category    string          `json:"category"`
	Location    string          `json:"location"`
	Active      bool            `json:"active"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// StockMovement records one inventory change with the stock level before and
// after, so the history is auditable without replaying it.
type StockMovement struct {
	ID     uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	PartID uuid.UUID    `gorm:"type:uuid;index" json:"part_id"`
	Kind   MovementKind `gorm:"type:stock_movement_kind" json:"kind"`
	// Quantity moved; for ADJUST it is the new absolute stock level.
	Quantity int       `json:"quantity"`
	Reason   string    `json:"reason"`
	UserID   string    `json:"user_id"`
	Date     time.Time `json:"date"`

	PurchaseOrderID *uuid.UUID `gorm:"type:uuid" json:"purchase_order_id,omitempty"`
	WorkOrderID     *uuid.UUID `gorm:"type:uuid" json:"work_order_id,omitempty"`

	StockBefore int `json:"stock_before"`
	StockAfter  int `json:"stock_after"`
}
