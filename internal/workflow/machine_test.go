package workflow

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrZaiter32/atelierpro/internal/model"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func TestChangeState_LegalPath(t *testing.T) {
	budget := &model.Budget{Status: model.BudgetStatusDraft}

	require.NoError(t, ChangeState(budget, model.BudgetStatusApproved, testNow))
	assert.Equal(t, model.BudgetStatusApproved, budget.Status)
	require.NotNil(t, budget.ApprovedAt)
	assert.Equal(t, testNow, *budget.ApprovedAt)

	require.NoError(t, ChangeState(budget, model.BudgetStatusClosed, testNow))
	assert.Equal(t, model.BudgetStatusClosed, budget.Status)

	require.NoError(t, ChangeState(budget, model.BudgetStatusInvoiced, testNow))
	assert.Equal(t, model.BudgetStatusInvoiced, budget.Status)
}

func TestChangeState_RejectFromDraft(t *testing.T) {
	budget := &model.Budget{Status: model.BudgetStatusDraft}

	require.NoError(t, ChangeState(budget, model.BudgetStatusRejected, testNow))
	assert.Equal(t, model.BudgetStatusRejected, budget.Status)
	assert.Nil(t, budget.ApprovedAt, "rejection must not stamp an approval time")
}

func TestChangeState_SkipAheadFails(t *testing.T) {
	budget := &model.Budget{Status: model.BudgetStatusDraft}

	err := ChangeState(budget, model.BudgetStatusInvoiced, testNow)

	var invalid *InvalidTransitionError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, model.BudgetStatusDraft, invalid.From)
	assert.Equal(t, model.BudgetStatusInvoiced, invalid.To)
	assert.Equal(t, model.BudgetStatusDraft, budget.Status, "budget must be left unmodified")
	assert.Nil(t, budget.ApprovedAt)
}

func TestChangeState_TerminalStatesRejectEverything(t *testing.T) {
	targets := []model.BudgetStatus{
		model.BudgetStatusDraft,
		model.BudgetStatusApproved,
		model.BudgetStatusRejected,
		model.BudgetStatusClosed,
		model.BudgetStatusInvoiced,
	}
	for _, from := range []model.BudgetStatus{model.BudgetStatusInvoiced, model.BudgetStatusRejected} {
		for _, to := range targets {
			budget := &model.Budget{Status: from}
			err := ChangeState(budget, to, testNow)
			var invalid *InvalidTransitionError
			assert.ErrorAs(t, err, &invalid, "%s -> %s", from, to)
			assert.Equal(t, from, budget.Status)
		}
	}
}

func TestChangeState_UnknownTarget(t *testing.T) {
	budget := &model.Budget{Status: model.BudgetStatusDraft}

	err := ChangeState(budget, model.BudgetStatus("ARCHIVED"), testNow)

	var invalid *InvalidTransitionError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, model.BudgetStatus("ARCHIVED"), invalid.To)
	assert.Equal(t, model.BudgetStatusDraft, budget.Status)
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to model.BudgetStatus
		ok       bool
	}{
		{model.BudgetStatusDraft, model.BudgetStatusApproved, true},
		{model.BudgetStatusDraft, model.BudgetStatusRejected, true},
		{model.BudgetStatusDraft, model.BudgetStatusClosed, false},
		{model.BudgetStatusApproved, model.BudgetStatusClosed, true},
		{model.BudgetStatusApproved, model.BudgetStatusRejected, false},
		{model.BudgetStatusClosed, model.BudgetStatusInvoiced, true},
		{model.BudgetStatusClosed, model.BudgetStatusDraft, false},
		{model.BudgetStatusInvoiced, model.BudgetStatusClosed, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestTerminal(t *testing.T) {
	assert.True(t, Terminal(model.BudgetStatusInvoiced))
	assert.True(t, Terminal(model.BudgetStatusRejected))
	assert.False(t, Terminal(model.BudgetStatusDraft))
	assert.False(t, Terminal(model.BudgetStatusApproved))
	assert.False(t, Terminal(model.BudgetStatusClosed))
}
