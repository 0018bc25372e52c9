package fintrack

import "github.com/fintrackapp/fintrack-go/internal/types"

// Public type aliases so SDK consumers can import only this package.
type (
	// Domain entities
	Session    = types.Session
	Expense    = types.Expense
	Income     = types.Income
	Budget     = types.Budget
	SavingGoal = types.SavingGoal
	DateTime   = types.DateTime

	// Mutation inputs (no identifier, no owner field; the owner is
	// stamped from the current session before transmission)
	ExpenseInput    = types.ExpenseInput
	IncomeInput     = types.IncomeInput
	BudgetInput     = types.BudgetInput
	SavingGoalInput = types.SavingGoalInput
)

// NewDateTime builds a record timestamp from a standard time.Time.
var NewDateTime = types.NewDateTime

// Errors re-exported in errors.go
