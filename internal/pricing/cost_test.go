package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/MrZaiter32/atelierpro/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, got.Equal(dec(want)), "want %s, got %s", want, got)
}

func TestBaseCost(t *testing.T) {
	cases := []struct {
		name string
		item model.BudgetItem
		want string
	}{
		{
			name: "part with quantity",
			item: model.BudgetItem{UnitPrice: dec("120"), Hours: 2.5, Quantity: 2},
			want: "600",
		},
		{
			name: "labor single unit",
			item: model.BudgetItem{UnitPrice: dec("45"), Hours: 3, Quantity: 1},
			want: "135",
		},
		{
			name: "zero quantity defaults to one",
			item: model.BudgetItem{UnitPrice: dec("100"), Hours: 2},
			want: "200",
		},
		{
			name: "zero hours",
			item: model.BudgetItem{UnitPrice: dec("100"), Quantity: 3},
			want: "0",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assertDecimal(t, tc.want, BaseCost(tc.item))
		})
	}
}

func TestAdjustedCost(t *testing.T) {
	cases := []struct {
		name       string
		adjustment string
		want       string
	}{
		{"no adjustment", "0", "200"},
		{"fifty percent discount", "-50", "100"},
		{"surcharge", "10", "220"},
		{"discount below minus hundred is not bounded here", "-150", "-100"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			item := model.BudgetItem{
				UnitPrice:         dec("100"),
				Hours:             2,
				Quantity:          1,
				AdjustmentPercent: dec(tc.adjustment),
			}
			assertDecimal(t, tc.want, AdjustedCost(item))
		})
	}
}

func TestSubtotal(t *testing.T) {
	items := []model.BudgetItem{
		{Kind: model.ItemKindPart, UnitPrice: dec("100"), Hours: 2, Quantity: 1},
		{Kind: model.ItemKindLabor, UnitPrice: dec("45"), Hours: 3, Quantity: 1},
	}
	assertDecimal(t, "335", Subtotal(items))
}

func TestSubtotal_Empty(t *testing.T) {
	assertDecimal(t, "0", Subtotal(nil))
}
