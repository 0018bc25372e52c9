package types

// ------------------------------
// Core Domain Entities
// ------------------------------

// Session is the authenticated identity bound to the current process.
type Session struct {
	ID       string   `json:"id"`
	Email    string   `json:"email"`
	Username string   `json:"username"`
	Name     string   `json:"name,omitempty"`
	Created  DateTime `json:"created,omitzero"`
}

// Expense is one spending record in the "expenses" collection.
type Expense struct {
	ID          string   `json:"id,omitempty"`
	User        string   `json:"user"`
	Date        DateTime `json:"date"`
	Category    string   `json:"category"`
	Amount      float64  `json:"amount"`
	Description string   `json:"description,omitempty"`
	Created     DateTime `json:"created,omitzero"`
	Updated     DateTime `json:"updated,omitzero"`
}

// Income is one earning record in the "incomes" collection.
type Income struct {
	ID          string   `json:"id,omitempty"`
	User        string   `json:"user"`
	Date        DateTime `json:"date"`
	Source      string   `json:"source"`
	Amount      float64  `json:"amount"`
	Description string   `json:"description,omitempty"`
	Created     DateTime `json:"created,omitzero"`
	Updated     DateTime `json:"updated,omitzero"`
}

// Budget is a per-category allocation in the "budgets" collection.
type Budget struct {
	ID        string   `json:"id,omitempty"`
	User      string   `json:"user"`
	Category  string   `json:"category"`
	Allocated float64  `json:"allocated"`
	Spent     float64  `json:"spent"`
	Created   DateTime `json:"created,omitzero"`
	Updated   DateTime `json:"updated,omitzero"`
}

// SavingGoal is a target in the "savingGoals" collection.
type SavingGoal struct {
	ID           string   `json:"id,omitempty"`
	User         string   `json:"user"`
	Name         string   `json:"name"`
	Category     string   `json:"category,omitempty"`
	TargetAmount float64  `json:"targetAmount"`
	SavedAmount  float64  `json:"savedAmount"`
	TargetDate   DateTime `json:"targetDate,omitzero"`
	Created      DateTime `json:"created,omitzero"`
	Updated      DateTime `json:"updated,omitzero"`
}

// Persisted reports whether the expense has been assigned a remote ID.
func (e Expense) Persisted() bool { return e.ID != "" }

// Persisted reports whether the income has been assigned a remote ID.
func (i Income) Persisted() bool { return i.ID != "" }

// Persisted reports whether the budget has been assigned a remote ID.
func (b Budget) Persisted() bool { return b.ID != "" }

// Persisted reports whether the goal has been assigned a remote ID.
func (g SavingGoal) Persisted() bool { return g.ID != "" }
