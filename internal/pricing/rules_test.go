package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrZaiter32/atelierpro/internal/model"
)

func testTariff() model.Tariff {
	return model.Tariff{
		LaborRatePerHour: dec("45"),
		PaintRatePerHour: dec("38"),
		TaxRate:          dec("0.16"),
		SurchargeFactor:  dec("1"),
		DiscountFactor:   dec("1"),
	}
}

func TestDepreciationRule_ByAge(t *testing.T) {
	cases := []struct {
		age  int
		want string
	}{
		{0, "0"},
		{1, "-10"},
		{3, "-30"},
		{5, "-50"},
		{10, "-50"},
	}
	for _, tc := range cases {
		budget := model.Budget{Vehicle: &model.Vehicle{VIN: "VIN-1", AgeYears: tc.age}}
		items := []model.BudgetItem{
			{Kind: model.ItemKindPart, Code: "P-01", UnitPrice: dec("100"), Hours: 1},
		}

		out := DepreciationRule{}.Apply(budget, testTariff(), items)

		require.Len(t, out, 1, "age=%d", tc.age)
		assertDecimal(t, tc.want, out[0].AdjustmentPercent)
	}
}

func TestDepreciationRule_OnlyTouchesParts(t *testing.T) {
	budget := model.Budget{Vehicle: &model.Vehicle{VIN: "VIN-1", AgeYears: 3}}
	items := []model.BudgetItem{
		{Kind: model.ItemKindPart, Code: "P-01"},
		{Kind: model.ItemKindLabor, Code: "L-01", AdjustmentPercent: dec("5")},
		{Kind: model.ItemKindPaint, Code: "PAINT-P-01"},
	}

	out := DepreciationRule{}.Apply(budget, testTariff(), items)

	assertDecimal(t, "-30", out[0].AdjustmentPercent)
	assertDecimal(t, "5", out[1].AdjustmentPercent)
	assertDecimal(t, "0", out[2].AdjustmentPercent)
}

func TestDepreciationRule_OverwritesPreviousAdjustment(t *testing.T) {
	budget := model.Budget{Vehicle: &model.Vehicle{VIN: "VIN-1", AgeYears: 2}}
	items := []model.BudgetItem{
		{Kind: model.ItemKindPart, AdjustmentPercent: dec("-5")},
	}

	out := DepreciationRule{}.Apply(budget, testTariff(), items)

	assertDecimal(t, "-20", out[0].AdjustmentPercent)
}

func TestDepreciationRule_NoVehicleIsNoOp(t *testing.T) {
	items := []model.BudgetItem{{Kind: model.ItemKindPart}}

	out := DepreciationRule{}.Apply(model.Budget{}, testTariff(), items)

	assertDecimal(t, "0", out[0].AdjustmentPercent)
}

func TestDepreciationRule_DoesNotMutateInput(t *testing.T) {
	budget := model.Budget{Vehicle: &model.Vehicle{VIN: "VIN-1", AgeYears: 5}}
	items := []model.BudgetItem{{Kind: model.ItemKindPart}}

	DepreciationRule{}.Apply(budget, testTariff(), items)

	assertDecimal(t, "0", items[0].AdjustmentPercent)
}

func TestPaintComplementRule_InjectsPaintItem(t *testing.T) {
	items := []model.BudgetItem{
		{
			Kind:          model.ItemKindPart,
			Code:          "DOOR-01",
			Description:   "Front door",
			UnitPrice:     dec("120"),
			Hours:         2.5,
			Quantity:      1,
			RequiresPaint: true,
		},
	}

	out := PaintComplementRule{}.Apply(model.Budget{}, testTariff(), items)

	require.Len(t, out, 2)
	paint := out[1]
	assert.Equal(t, model.ItemKindPaint, paint.Kind)
	assert.Equal(t, "PAINT-DOOR-01", paint.Code)
	assert.Equal(t, "Paint for Front door", paint.Description)
	assert.Equal(t, 1, paint.Quantity)
	assert.Equal(t, 1.5, paint.Hours)
	assertDecimal(t, "38", paint.UnitPrice)
	assertDecimal(t, "0", paint.AdjustmentPercent)
}

func TestPaintComplementRule_Idempotent(t *testing.T) {
	items := []model.BudgetItem{
		{Kind: model.ItemKindPart, Code: "DOOR-01", Description: "Front door", RequiresPaint: true},
	}
	tariff := testTariff()

	once := PaintComplementRule{}.Apply(model.Budget{}, tariff, items)
	twice := PaintComplementRule{}.Apply(model.Budget{}, tariff, once)

	require.Len(t, once, 2)
	assert.Len(t, twice, 2, "second pass must not inject a duplicate paint item")
}

func TestPaintComplementRule_IdempotentWithEmptyCode(t *testing.T) {
	items := []model.BudgetItem{
		{Kind: model.ItemKindPart, Code: "", Description: "Front door", RequiresPaint: true},
	}
	tariff := testTariff()

	out := PaintComplementRule{}.Apply(model.Budget{}, tariff, items)
	require.Len(t, out, 2)

	for pass := 0; pass < 3; pass++ {
		out = PaintComplementRule{}.Apply(model.Budget{}, tariff, out)
		assert.Len(t, out, 2, "a codeless part must still get exactly one paint item")
	}
}

func TestPaintComplementRule_SkipsUnflaggedAndNonParts(t *testing.T) {
	items := []model.BudgetItem{
		{Kind: model.ItemKindPart, Code: "DOOR-01", RequiresPaint: false},
		{Kind: model.ItemKindLabor, Code: "L-01", RequiresPaint: true},
	}

	out := PaintComplementRule{}.Apply(model.Budget{}, testTariff(), items)

	assert.Len(t, out, 2)
}

func TestPaintComplementRule_InjectedItemsAreNotTriggers(t *testing.T) {
	// An injected paint item never carries RequiresPaint, but the pass must
	// also not scan its own output for new triggers.
	items := []model.BudgetItem{
		{Kind: model.ItemKindPart, Code: "DOOR-01", Description: "Front door", RequiresPaint: true},
		{Kind: model.ItemKindPart, Code: "WING-02", Description: "Left wing", RequiresPaint: true},
	}

	out := PaintComplementRule{}.Apply(model.Budget{}, testTariff(), items)

	assert.Len(t, out, 4)
}

func TestEngine_AppliesRulesInOrder(t *testing.T) {
	budget := &model.Budget{
		Vehicle: &model.Vehicle{VIN: "VIN-1", AgeYears: 4},
		Items: []model.BudgetItem{
			{Kind: model.ItemKindPart, Code: "DOOR-01", Description: "Front door", RequiresPaint: true},
		},
	}

	DefaultEngine().Apply(budget, testTariff())

	require.Len(t, budget.Items, 2)
	// Depreciation hit the pre-existing part only; the injected paint item
	// kept a zero adjustment.
	assertDecimal(t, "-40", budget.Items[0].AdjustmentPercent)
	assertDecimal(t, "0", budget.Items[1].AdjustmentPercent)
}

func TestEngine_NilBudget(t *testing.T) {
	assert.Nil(t, DefaultEngine().Apply(nil, testTariff()))
}

func TestEngine_EmptyItemsIsNoOp(t *testing.T) {
	budget := &model.Budget{Vehicle: &model.Vehicle{VIN: "VIN-1", AgeYears: 3}}

	DefaultEngine().Apply(budget, testTariff())

	assert.Empty(t, budget.Items)
}
