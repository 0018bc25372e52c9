package types

// ------------------------------
// Request Types
// ------------------------------

// AuthWithPasswordRequest holds credentials for the auth endpoint.
type AuthWithPasswordRequest struct {
	Identity string `json:"identity"`
	Password string `json:"password"`
}

// CreateAccountRequest holds parameters for a new user record. The
// store requires the password to be confirmed in the same payload.
type CreateAccountRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
	Username        string `json:"username"`
}

// ExpenseInput holds the caller-supplied fields for a new expense.
// The owning user is never part of the input; it is stamped from the
// current session before transmission.
type ExpenseInput struct {
	Date        DateTime `json:"date"`
	Category    string   `json:"category"`
	Amount      float64  `json:"amount"`
	Description string   `json:"description,omitempty"`
}

// IncomeInput holds the caller-supplied fields for a new income.
type IncomeInput struct {
	Date        DateTime `json:"date"`
	Source      string   `json:"source"`
	Amount      float64  `json:"amount"`
	Description string   `json:"description,omitempty"`
}

// BudgetInput holds the caller-supplied fields for a new budget line.
type BudgetInput struct {
	Category  string  `json:"category"`
	Allocated float64 `json:"allocated"`
	Spent     float64 `json:"spent"`
}

// SavingGoalInput holds the caller-supplied fields for a new goal.
type SavingGoalInput struct {
	Name         string   `json:"name"`
	Category     string   `json:"category,omitempty"`
	TargetAmount float64  `json:"targetAmount"`
	SavedAmount  float64  `json:"savedAmount"`
	TargetDate   DateTime `json:"targetDate,omitzero"`
}
