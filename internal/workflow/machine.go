// Package workflow gates budget status transitions. It is a strict adjacency
// check: no guard conditions, no side effects beyond the status field and the
// approval timestamp.
package workflow

import (
	"fmt"
	"time"

	"github.com/MrZaiter32/atelierpro/internal/model"
)

// InvalidTransitionError reports an attempted status change that is not an
// edge of the transition table. The budget is left unmodified.
type InvalidTransitionError struct {
	From model.BudgetStatus
	To   model.BudgetStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid budget transition from %s to %s", e.From, e.To)
}

// transitions is the full lifecycle: Draft → Approved → Closed → Invoiced,
// with Rejected reachable only from Draft. Invoiced and Rejected are
// terminal.
var transitions = map[model.BudgetStatus][]model.BudgetStatus{
	model.BudgetStatusDraft:    {model.BudgetStatusApproved, model.BudgetStatusRejected},
	model.BudgetStatusApproved: {model.BudgetStatusClosed},
	model.BudgetStatusClosed:   {model.BudgetStatusInvoiced},
	model.BudgetStatusInvoiced: {},
	model.BudgetStatusRejected: {},
}

// CanTransition reports whether target is a legal next status from current.
func CanTransition(current, target model.BudgetStatus) bool {
	for _, allowed := range transitions[current] {
		if allowed == target {
			return true
		}
	}
	return false
}

// ChangeState applies a status transition to the budget. Approval also
// stamps ApprovedAt with now. Illegal or unknown targets fail with
// *InvalidTransitionError and leave the budget untouched.
func ChangeState(budget *model.Budget, target model.BudgetStatus, now time.Time) error {
	if !CanTransition(budget.Status, target) {
		return &InvalidTransitionError{From: budget.Status, To: target}
	}

	budget.Status = target
	if target == model.BudgetStatusApproved {
		budget.ApprovedAt = &now
	}
	return nil
}

// Terminal reports whether no further transitions exist from status.
func Terminal(status model.BudgetStatus) bool {
	return len(transitions[status]) == 0
}
