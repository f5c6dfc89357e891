package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BudgetStatus string

const (
	BudgetStatusDraft    BudgetStatus = "DRAFT"
	BudgetStatusApproved BudgetStatus = "APPROVED"
	BudgetStatusRejected BudgetStatus = "REJECTED"
	BudgetStatusClosed   BudgetStatus = "CLOSED"
	BudgetStatusInvoiced BudgetStatus = "INVOICED"
)

type ItemKind string

const (
	ItemKindPart  ItemKind = "PART"
	ItemKindLabor ItemKind = "LABOR"
	ItemKindPaint ItemKind = "PAINT"
)

// BudgetItem is one billable line inside a budget: a part, labor or paint
// entry. AdjustmentPercent is signed (-50 means a 50% reduction) and is
// overwritten by the depreciation rule for PART items.
type BudgetItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BudgetID    uuid.UUID `gorm:"type:uuid;index" json:"budget_id"`
	Kind        ItemKind  `gorm:"type:budget_item_kind" json:"kind"`
	Code        string    `json:"code"`
	Description string    `json:"description"`
	Quantity    int       `json:"quantity"`
	// Hours is the assigned working time; it enters money math only after
	// conversion into the decimal domain.
	Hours             float64         `json:"hours"`
	UnitPrice         decimal.Decimal `gorm:"type:numeric(18,2)" json:"unit_price"`
	AdjustmentPercent decimal.Decimal `gorm:"type:numeric(8,4)" json:"adjustment_percent"`

	RequiresPaint         bool `json:"requires_paint"`
	RequiresDoubleRemoval bool `json:"requires_double_removal"`
	RequiresAlignment     bool `json:"requires_alignment"`
}

// Budget is a repair quote (presupuesto) for a vehicle. TaxApplied and Total
// are snapshots written by the pricing calculator; the subtotal is always
// derived from the items and never stored.
type Budget struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Number string    `gorm:"uniqueIndex" json:"number"`

	ClientID *uuid.UUID `gorm:"type:uuid" json:"client_id,omitempty"`
	Client   *Client    `gorm:"foreignKey:ClientID" json:"client,omitempty"`

	VehicleVIN *string  `gorm:"column:vehicle_vin" json:"vehicle_vin,omitempty"`
	Vehicle    *Vehicle `gorm:"foreignKey:VehicleVIN;references:VIN" json:"vehicle,omitempty"`

	Items []BudgetItem `gorm:"foreignKey:BudgetID" json:"items"`

	TaxApplied decimal.Decimal `gorm:"type:numeric(18,2)" json:"tax_applied"`
	Total      decimal.Decimal `gorm:"type:numeric(18,2)" json:"total"`

	Status     BudgetStatus `gorm:"type:budget_status" json:"status"`
	CreatedAt  time.Time    `json:"created_at"`
	ApprovedAt *time.Time   `json:"approved_at,omitempty"`
	Notes      string       `json:"notes"`
}
