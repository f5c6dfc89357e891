package model

import "github.com/shopspring/decimal"

// Vehicle is immutable reference data keyed by VIN. AgeYears drives the
// depreciation rule.
type Vehicle struct {
	VIN           string          `gorm:"column:vin;primaryKey" json:"vin"`
	Trim          string          `json:"trim"`
	AgeYears      int             `json:"age_years"`
	ResidualValue decimal.Decimal `gorm:"type:numeric(18,2)" json:"residual_value"`
}

func (Vehicle) TableName() string { return "vehicles" }
