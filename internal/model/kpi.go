package model

import "github.com/shopspring/decimal"

// DashboardKPI is the aggregate snapshot shown on the shop dashboard.
// AverageMargin follows the domain's definition of margin: the mean tax
// amount across budgets.
type DashboardKPI struct {
	AverageMargin    decimal.Decimal `json:"average_margin"`
	AverageNPS       float64         `json:"average_nps"`
	AverageRetention float64         `json:"average_retention"`
	ActiveWorkOrders int64           `json:"active_work_orders"`
}
