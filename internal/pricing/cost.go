// Package pricing implements the budget pricing core: the per-item cost
// model, the business-rule engine and the totals aggregator. It performs no
// I/O; persistence is the caller's concern.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/MrZaiter32/atelierpro/internal/model"
)

// BaseCost is unitPrice × hours × quantity. A zero quantity counts as 1.
// Hours cross into the decimal domain before touching money.
func BaseCost(item model.BudgetItem) decimal.Decimal {
	qty := item.Quantity
	if qty == 0 {
		qty = 1
	}
	return item.UnitPrice.
		Mul(decimal.NewFromFloat(item.Hours)).
		Mul(decimal.NewFromInt(int64(qty)))
}

// AdjustedCost applies the item's signed adjustment percentage to its base
// cost. Negative percentages are discounts and are unbounded here; the rule
// engine is where bounds live.
func AdjustedCost(item model.BudgetItem) decimal.Decimal {
	factor := decimal.NewFromInt(1).Add(item.AdjustmentPercent.Div(decimal.NewFromInt(100)))
	return BaseCost(item).Mul(factor)
}

// Subtotal sums the adjusted cost over items. It is always derived, never
// cached.
func Subtotal(items []model.BudgetItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(AdjustedCost(item))
	}
	return total
}
