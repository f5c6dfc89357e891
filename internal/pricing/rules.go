package pricing

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrZaiter32/atelierpro/internal/model"
)

// Rule rewrites a budget's item list. Rules never mutate the input slice;
// they return the list to use, so each rule is testable as a pure
// oldItems -> newItems transform. Rules never fail: missing vehicle or an
// empty item list degrades to a no-op.
type Rule interface {
	Apply(budget model.Budget, tariff model.Tariff, items []model.BudgetItem) []model.BudgetItem
}

// Engine applies business rules to a budget before totals are computed.
type Engine interface {
	Apply(budget *model.Budget, tariff model.Tariff) *model.Budget
}

type ruleEngine struct {
	rules []Rule
}

// NewEngine composes rules in order. Order matters: depreciation must not
// see items injected later in the same pass.
func NewEngine(rules ...Rule) Engine {
	return &ruleEngine{rules: rules}
}

// DefaultEngine is the production rule set: depreciation by vehicle age,
// then paint complement injection.
func DefaultEngine() Engine {
	return NewEngine(DepreciationRule{}, PaintComplementRule{})
}

func (e *ruleEngine) Apply(budget *model.Budget, tariff model.Tariff) *model.Budget {
	if budget == nil {
		return nil
	}
	items := budget.Items
	for _, rule := range e.rules {
		items = rule.Apply(*budget, tariff, items)
	}
	budget.Items = items
	return budget
}

var (
	depreciationPerYear = decimal.NewFromFloat(0.10)
	depreciationCap     = decimal.NewFromFloat(0.50)
	minusHundred        = decimal.NewFromInt(-100)
)

// DepreciationRule discounts PART items on aged vehicles: 10% per year of
// age, capped at 50%. The adjustment is overwritten, not accumulated, so
// reapplying the rule is stable. Without a vehicle the rule is a no-op.
type DepreciationRule struct{}

func (DepreciationRule) Apply(budget model.Budget, _ model.Tariff, items []model.BudgetItem) []model.BudgetItem {
	if budget.Vehicle == nil || budget.Vehicle.AgeYears <= 0 {
		return items
	}

	factor := decimal.NewFromInt(int64(budget.Vehicle.AgeYears)).Mul(depreciationPerYear)
	if factor.GreaterThan(depreciationCap) {
		factor = depreciationCap
	}
	adjustment := factor.Mul(minusHundred)

	out := make([]model.BudgetItem, len(items))
	copy(out, items)
	for i := range out {
		if out[i].Kind == model.ItemKindPart {
			out[i].AdjustmentPercent = adjustment
		}
	}
	return out
}

// paintHours is the fixed time budgeted for painting one part.
const paintHours = 1.5

// PaintComplementRule appends a paint line for every PART item flagged
// RequiresPaint, priced at the tariff's paint rate. The existence check makes
// the rule idempotent across repeated passes, and only the original items are
// scanned as triggers.
type PaintComplementRule struct{}

func (PaintComplementRule) Apply(budget model.Budget, tariff model.Tariff, items []model.BudgetItem) []model.BudgetItem {
	out := make([]model.BudgetItem, len(items))
	copy(out, items)

	for _, item := range items {
		if item.Kind != model.ItemKindPart || !item.RequiresPaint {
			continue
		}
		// An empty part code matches any existing paint item, so codeless
		// parts still get at most one paint line.
		if hasPaintFor(out, item.Code) {
			continue
		}
		out = append(out, model.BudgetItem{
			ID:                uuid.New(),
			BudgetID:          item.BudgetID,
			Kind:              model.ItemKindPaint,
			Code:              "PAINT-" + item.Code,
			Description:       "Paint for " + item.Description,
			Quantity:          1,
			Hours:             paintHours,
			UnitPrice:         tariff.PaintRatePerHour,
			AdjustmentPercent: decimal.Zero,
		})
	}
	return out
}

func hasPaintFor(items []model.BudgetItem, partCode string) bool {
	for _, item := range items {
		if item.Kind != model.ItemKindPaint {
			continue
		}
		if strings.Contains(item.Code, partCode) || strings.Contains(item.Description, partCode) {
			return true
		}
	}
	return false
}
