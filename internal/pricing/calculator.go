package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/MrZaiter32/atelierpro/internal/model"
)

// Calculator aggregates a budget's totals after the rule engine has run.
type Calculator struct {
	engine Engine
}

func NewCalculator(engine Engine) *Calculator {
	return &Calculator{engine: engine}
}

// ApplyRules runs the rule engine alone, without touching totals.
func (c *Calculator) ApplyRules(budget *model.Budget, tariff model.Tariff) *model.Budget {
	return c.engine.Apply(budget, tariff)
}

// CalculateTotals runs the rules, recomputes the subtotal from the items and
// writes the tax and total snapshots onto the budget.
//
// tariff.TaxRate is a decimal fraction (0.16 = 16%), never a percentage
// integer.
func (c *Calculator) CalculateTotals(budget *model.Budget, tariff model.Tariff) *model.Budget {
	if budget == nil {
		return nil
	}
	c.engine.Apply(budget, tariff)

	subtotal := Subtotal(budget.Items)
	budget.TaxApplied = subtotal.Mul(tariff.TaxRate)
	budget.Total = subtotal.Add(budget.TaxApplied)
	return budget
}

// CalculateMargin returns the arithmetic mean of TaxApplied across budgets.
// In this domain "margin" literally means the tax amount; it is not a profit
// margin. Empty input yields zero, not an error.
func (c *Calculator) CalculateMargin(budgets []model.Budget) decimal.Decimal {
	if len(budgets) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, budget := range budgets {
		sum = sum.Add(budget.TaxApplied)
	}
	return sum.Div(decimal.NewFromInt(int64(len(budgets))))
}

// AddItem appends an item to the budget without recalculating totals; the
// caller decides when to invoke CalculateTotals again. Labor and paint items
// with no unit price default to the tariff's hourly rate, and a zero
// quantity defaults to 1.
func (c *Calculator) AddItem(budget *model.Budget, item model.BudgetItem, tariff model.Tariff) {
	if budget == nil {
		return
	}
	if item.Quantity == 0 {
		item.Quantity = 1
	}
	if item.UnitPrice.IsZero() {
		switch item.Kind {
		case model.ItemKindLabor:
			item.UnitPrice = tariff.LaborRatePerHour
		case model.ItemKindPaint:
			item.UnitPrice = tariff.PaintRatePerHour
		}
	}
	item.BudgetID = budget.ID
	budget.Items = append(budget.Items, item)
}
