package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tariff is the shop rate card used to price budget items.
//
// TaxRate is a decimal fraction (0.16 = 16%), never a percentage integer.
// SurchargeFactor and DiscountFactor are multipliers (1.0 = neutral).
type Tariff struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	LaborRatePerHour decimal.Decimal `gorm:"type:numeric(18,2)" json:"labor_rate_per_hour"`
	PaintRatePerHour decimal.Decimal `gorm:"type:numeric(18,2)" json:"paint_rate_per_hour"`
	TaxRate          decimal.Decimal `gorm:"type:numeric(8,4)" json:"tax_rate"`
	SurchargeFactor  decimal.Decimal `gorm:"type:numeric(8,4)" json:"surcharge_factor"`
	DiscountFactor   decimal.Decimal `gorm:"type:numeric(8,4)" json:"discount_factor"`
	Active           bool            `json:"active"`
	CreatedAt        time.Time       `json:"created_at"`
}
