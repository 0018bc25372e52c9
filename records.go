package fintrack

import (
	"context"
	"encoding/json"

	"github.com/fintrackapp/fintrack-go/internal/api"
	"github.com/fintrackapp/fintrack-go/internal/types"
)

// Records are listed newest first; the store sorts by creation time.
const listSort = "-created"

// registerFetchers binds each collection's refetch function so a cache
// invalidation can refresh it in the background.
func (c *Client) registerFetchers() {
	c.cache.Register(CollectionExpenses, func(ctx context.Context) (any, error) {
		return c.fetchExpenses(ctx)
	})
	c.cache.Register(CollectionIncomes, func(ctx context.Context) (any, error) {
		return c.fetchIncomes(ctx)
	})
	c.cache.Register(CollectionBudgets, func(ctx context.Context) (any, error) {
		return c.fetchBudgets(ctx)
	})
	c.cache.Register(CollectionSavingGoals, func(ctx context.Context) (any, error) {
		return c.fetchSavingGoals(ctx)
	})
}

// requireIdentity returns the current user's identifier for stamping,
// or ErrNotAuthenticated when no valid session is loaded.
func (c *Client) requireIdentity() (string, error) {
	id := c.CurrentIdentity()
	if id == "" {
		return "", ErrNotAuthenticated
	}
	return id, nil
}

// invalidate marks the collection stale and schedules its refetch.
// Called only after a mutation's response confirmed success, so a
// refetch always observes post-mutation state.
func (c *Client) invalidate(ctx context.Context, collection, op string) {
	mutationsTotal.WithLabelValues(collection, op).Inc()
	if err := c.cache.Invalidate(ctx, collection); err != nil {
		c.log.Warn().Err(err).Str("collection", collection).Msg("scheduling cache refetch failed")
	}
}

// Subscribe returns a channel signalled after every cache refresh of
// the collection. A subscriber that stops draining simply misses
// coalesced signals; abandoned channels never block the cache.
func (c *Client) Subscribe(collection string) <-chan struct{} {
	return c.cache.Subscribe(collection)
}

// Unsubscribe detaches a channel obtained from Subscribe.
func (c *Client) Unsubscribe(collection string, ch <-chan struct{}) {
	c.cache.Unsubscribe(collection, ch)
}

func decodeList[T any](raw json.RawMessage) ([]T, error) {
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// --------------------------------------------------------------------
// Expenses
// --------------------------------------------------------------------

func (c *Client) fetchExpenses(ctx context.Context) ([]Expense, error) {
	raw, err := api.ListRecords(ctx, c.http, c.baseURL, CollectionExpenses, listSort)
	if err != nil {
		return nil, err
	}
	return decodeList[Expense](raw)
}

// ListExpenses returns the full expense list, newest first. A fresh
// cache entry is served directly; otherwise one list call refreshes it.
// The generation captured before the fetch makes the cache write a
// no-op if a mutation invalidates the collection mid-flight; the
// caller still gets its own fetch result.
func (c *Client) ListExpenses(ctx context.Context) ([]Expense, error) {
	if v, ok := c.cache.Fresh(CollectionExpenses); ok {
		return v.([]Expense), nil
	}
	gen := c.cache.Generation(CollectionExpenses)
	list, err := c.fetchExpenses(ctx)
	if err != nil {
		return nil, err
	}
	c.cache.Put(CollectionExpenses, gen, list)
	return list, nil
}

// CreateExpense inserts a new expense. The input carries no identifier
// and no owner; the owning user is stamped from the current session,
// so a caller can never author records on another user's behalf.
func (c *Client) CreateExpense(ctx context.Context, in ExpenseInput) (*Expense, error) {
	owner, err := c.requireIdentity()
	if err != nil {
		return nil, err
	}
	rec := Expense{
		User:        owner,
		Date:        in.Date,
		Category:    in.Category,
		Amount:      in.Amount,
		Description: in.Description,
	}
	raw, err := api.CreateRecord(ctx, c.http, c.baseURL, CollectionExpenses, rec)
	if err != nil {
		mutationFailuresTotal.WithLabelValues(CollectionExpenses, "create").Inc()
		return nil, err
	}
	var created Expense
	if err := json.Unmarshal(raw, &created); err != nil {
		return nil, err
	}
	c.invalidate(ctx, CollectionExpenses, "create")
	return &created, nil
}

// UpdateExpense patches an existing expense in place. The record must
// already carry the identifier assigned by the store; the owner is
// re-stamped regardless of what the caller supplied.
func (c *Client) UpdateExpense(ctx context.Context, e Expense) (*Expense, error) {
	if err := types.ValidateIDPresent(e.ID, "expense id"); err != nil {
		return nil, err
	}
	owner, err := c.requireIdentity()
	if err != nil {
		return nil, err
	}
	e.User = owner
	raw, err := api.UpdateRecord(ctx, c.http, c.baseURL, CollectionExpenses, e.ID, e)
	if err != nil {
		mutationFailuresTotal.WithLabelValues(CollectionExpenses, "update").Inc()
		return nil, err
	}
	var updated Expense
	if err := json.Unmarshal(raw, &updated); err != nil {
		return nil, err
	}
	c.invalidate(ctx, CollectionExpenses, "update")
	return &updated, nil
}

// DeleteExpense removes an expense by identifier.
func (c *Client) DeleteExpense(ctx context.Context, id string) error {
	if err := api.DeleteRecord(ctx, c.http, c.baseURL, CollectionExpenses, id); err != nil {
		mutationFailuresTotal.WithLabelValues(CollectionExpenses, "delete").Inc()
		return err
	}
	c.invalidate(ctx, CollectionExpenses, "delete")
	return nil
}

// --------------------------------------------------------------------
// Incomes
// --------------------------------------------------------------------

func (c *Client) fetchIncomes(ctx context.Context) ([]Income, error) {
	raw, err := api.ListRecords(ctx, c.http, c.baseURL, CollectionIncomes, listSort)
	if err != nil {
		return nil, err
	}
	return decodeList[Income](raw)
}

// ListIncomes returns the full income list, newest first.
func (c *Client) ListIncomes(ctx context.Context) ([]Income, error) {
	if v, ok := c.cache.Fresh(CollectionIncomes); ok {
		return v.([]Income), nil
	}
	gen := c.cache.Generation(CollectionIncomes)
	list, err := c.fetchIncomes(ctx)
	if err != nil {
		return nil, err
	}
	c.cache.Put(CollectionIncomes, gen, list)
	return list, nil
}

// CreateIncome inserts a new income stamped with the current identity.
func (c *Client) CreateIncome(ctx context.Context, in IncomeInput) (*Income, error) {
	owner, err := c.requireIdentity()
	if err != nil {
		return nil, err
	}
	rec := Income{
		User:        owner,
		Date:        in.Date,
		Source:      in.Source,
		Amount:      in.Amount,
		Description: in.Description,
	}
	raw, err := api.CreateRecord(ctx, c.http, c.baseURL, CollectionIncomes, rec)
	if err != nil {
		mutationFailuresTotal.WithLabelValues(CollectionIncomes, "create").Inc()
		return nil, err
	}
	var created Income
	if err := json.Unmarshal(raw, &created); err != nil {
		return nil, err
	}
	c.invalidate(ctx, CollectionIncomes, "create")
	return &created, nil
}

// UpdateIncome patches an existing income in place by identifier.
func (c *Client) UpdateIncome(ctx context.Context, in Income) (*Income, error) {
	if err := types.ValidateIDPresent(in.ID, "income id"); err != nil {
		return nil, err
	}
	owner, err := c.requireIdentity()
	if err != nil {
		return nil, err
	}
	in.User = owner
	raw, err := api.UpdateRecord(ctx, c.http, c.baseURL, CollectionIncomes, in.ID, in)
	if err != nil {
		mutationFailuresTotal.WithLabelValues(CollectionIncomes, "update").Inc()
		return nil, err
	}
	var updated Income
	if err := json.Unmarshal(raw, &updated); err != nil {
		return nil, err
	}
	c.invalidate(ctx, CollectionIncomes, "update")
	return &updated, nil
}

// DeleteIncome removes an income by identifier.
func (c *Client) DeleteIncome(ctx context.Context, id string) error {
	if err := api.DeleteRecord(ctx, c.http, c.baseURL, CollectionIncomes, id); err != nil {
		mutationFailuresTotal.WithLabelValues(CollectionIncomes, "delete").Inc()
		return err
	}
	c.invalidate(ctx, CollectionIncomes, "delete")
	return nil
}

// --------------------------------------------------------------------
// Budgets
// --------------------------------------------------------------------

func (c *Client) fetchBudgets(ctx context.Context) ([]Budget, error) {
	raw, err := api.ListRecords(ctx, c.http, c.baseURL, CollectionBudgets, listSort)
	if err != nil {
		return nil, err
	}
	return decodeList[Budget](raw)
}

// ListBudgets returns the full budget list, newest first.
func (c *Client) ListBudgets(ctx context.Context) ([]Budget, error) {
	if v, ok := c.cache.Fresh(CollectionBudgets); ok {
		return v.([]Budget), nil
	}
	gen := c.cache.Generation(CollectionBudgets)
	list, err := c.fetchBudgets(ctx)
	if err != nil {
		return nil, err
	}
	c.cache.Put(CollectionBudgets, gen, list)
	return list, nil
}

// CreateBudget inserts a new budget line stamped with the current identity.
func (c *Client) CreateBudget(ctx context.Context, in BudgetInput) (*Budget, error) {
	owner, err := c.requireIdentity()
	if err != nil {
		return nil, err
	}
	rec := Budget{
		User:      owner,
		Category:  in.Category,
		Allocated: in.Allocated,
		Spent:     in.Spent,
	}
	raw, err := api.CreateRecord(ctx, c.http, c.baseURL, CollectionBudgets, rec)
	if err != nil {
		mutationFailuresTotal.WithLabelValues(CollectionBudgets, "create").Inc()
		return nil, err
	}
	var created Budget
	if err := json.Unmarshal(raw, &created); err != nil {
		return nil, err
	}
	c.invalidate(ctx, CollectionBudgets, "create")
	return &created, nil
}

// UpdateBudget patches an existing budget line in place by identifier.
func (c *Client) UpdateBudget(ctx context.Context, b Budget) (*Budget, error) {
	if err := types.ValidateIDPresent(b.ID, "budget id"); err != nil {
		return nil, err
	}
	owner, err := c.requireIdentity()
	if err != nil {
		return nil, err
	}
	b.User = owner
	raw, err := api.UpdateRecord(ctx, c.http, c.baseURL, CollectionBudgets, b.ID, b)
	if err != nil {
		mutationFailuresTotal.WithLabelValues(CollectionBudgets, "update").Inc()
		return nil, err
	}
	var updated Budget
	if err := json.Unmarshal(raw, &updated); err != nil {
		return nil, err
	}
	c.invalidate(ctx, CollectionBudgets, "update")
	return &updated, nil
}

// DeleteBudget removes a budget line by identifier.
func (c *Client) DeleteBudget(ctx context.Context, id string) error {
	if err := api.DeleteRecord(ctx, c.http, c.baseURL, CollectionBudgets, id); err != nil {
		mutationFailuresTotal.WithLabelValues(CollectionBudgets, "delete").Inc()
		return err
	}
	c.invalidate(ctx, CollectionBudgets, "delete")
	return nil
}

// --------------------------------------------------------------------
// Saving goals
// --------------------------------------------------------------------

func (c *Client) fetchSavingGoals(ctx context.Context) ([]SavingGoal, error) {
	raw, err := api.ListRecords(ctx, c.http, c.baseURL, CollectionSavingGoals, listSort)
	if err != nil {
		return nil, err
	}
	return decodeList[SavingGoal](raw)
}

// ListSavingGoals returns the full saving goal list, newest first.
func (c *Client) ListSavingGoals(ctx context.Context) ([]SavingGoal, error) {
	if v, ok := c.cache.Fresh(CollectionSavingGoals); ok {
		return v.([]SavingGoal), nil
	}
	gen := c.cache.Generation(CollectionSavingGoals)
	list, err := c.fetchSavingGoals(ctx)
	if err != nil {
		return nil, err
	}
	c.cache.Put(CollectionSavingGoals, gen, list)
	return list, nil
}

// CreateSavingGoal inserts a new goal stamped with the current identity.
func (c *Client) CreateSavingGoal(ctx context.Context, in SavingGoalInput) (*SavingGoal, error) {
	owner, err := c.requireIdentity()
	if err != nil {
		return nil, err
	}
	rec := SavingGoal{
		User:         owner,
		Name:         in.Name,
		Category:     in.Category,
		TargetAmount: in.TargetAmount,
		SavedAmount:  in.SavedAmount,
		TargetDate:   in.TargetDate,
	}
	raw, err := api.CreateRecord(ctx, c.http, c.baseURL, CollectionSavingGoals, rec)
	if err != nil {
		mutationFailuresTotal.WithLabelValues(CollectionSavingGoals, "create").Inc()
		return nil, err
	}
	var created SavingGoal
	if err := json.Unmarshal(raw, &created); err != nil {
		return nil, err
	}
	c.invalidate(ctx, CollectionSavingGoals, "create")
	return &created, nil
}

// UpdateSavingGoal patches an existing goal in place by identifier.
func (c *Client) UpdateSavingGoal(ctx context.Context, g SavingGoal) (*SavingGoal, error) {
	if err := types.ValidateIDPresent(g.ID, "saving goal id"); err != nil {
		return nil, err
	}
	owner, err := c.requireIdentity()
	if err != nil {
		return nil, err
	}
	g.User = owner
	raw, err := api.UpdateRecord(ctx, c.http, c.baseURL, CollectionSavingGoals, g.ID, g)
	if err != nil {
		mutationFailuresTotal.WithLabelValues(CollectionSavingGoals, "update").Inc()
		return nil, err
	}
	var updated SavingGoal
	if err := json.Unmarshal(raw, &updated); err != nil {
		return nil, err
	}
	c.invalidate(ctx, CollectionSavingGoals, "update")
	return &updated, nil
}

// DeleteSavingGoal removes a goal by identifier.
func (c *Client) DeleteSavingGoal(ctx context.Context, id string) error {
	if err := api.DeleteRecord(ctx, c.http, c.baseURL, CollectionSavingGoals, id); err != nil {
		mutationFailuresTotal.WithLabelValues(CollectionSavingGoals, "delete").Inc()
		return err
	}
	c.invalidate(ctx, CollectionSavingGoals, "delete")
	return nil
}
