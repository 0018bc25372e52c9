package fintrack_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fintrack "github.com/fintrackapp/fintrack-go"
)

func TestCreateExpense_StampsOwner(t *testing.T) {
	c, srv, _, userID := newAuthedClient(t)

	e, err := c.CreateExpense(context.Background(), fintrack.ExpenseInput{
		Date:        fintrack.NewDateTime(time.Date(2023, 8, 2, 0, 0, 0, 0, time.UTC)),
		Category:    "groceries",
		Amount:      42.5,
		Description: "weekly shop",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, userID, e.User)

	// The stored record carries the session's user, not anything the
	// caller could have supplied.
	srv.mu.Lock()
	recs := srv.colls[fintrack.CollectionExpenses]
	srv.mu.Unlock()
	require.Len(t, recs, 1)
	assert.Equal(t, userID, recs[0]["user"])
}

func TestUpdateExpense_RestampsOwner(t *testing.T) {
	c, srv, _, userID := newAuthedClient(t)

	e, err := c.CreateExpense(context.Background(), fintrack.ExpenseInput{Category: "transport", Amount: 3})
	require.NoError(t, err)

	// Even if a caller tampers with the owner field, the update goes out
	// stamped with the real session identity.
	e.User = "someone-else"
	e.Amount = 4.5
	updated, err := c.UpdateExpense(context.Background(), *e)
	require.NoError(t, err)
	assert.Equal(t, userID, updated.User)
	assert.Equal(t, 4.5, updated.Amount)

	srv.mu.Lock()
	recs := srv.colls[fintrack.CollectionExpenses]
	srv.mu.Unlock()
	require.Len(t, recs, 1)
	assert.Equal(t, userID, recs[0]["user"])
}

func TestUpdateExpense_RequiresID(t *testing.T) {
	c, _, _, _ := newAuthedClient(t)
	_, err := c.UpdateExpense(context.Background(), fintrack.Expense{Amount: 1})
	require.Error(t, err)
}

func TestListExpenses_NewestFirst(t *testing.T) {
	c, _, _, _ := newAuthedClient(t)
	ctx := context.Background()

	first, err := c.CreateExpense(ctx, fintrack.ExpenseInput{Category: "a", Amount: 1})
	require.NoError(t, err)
	second, err := c.CreateExpense(ctx, fintrack.ExpenseInput{Category: "b", Amount: 2})
	require.NoError(t, err)

	require.NoError(t, c.AwaitRefetch(ctx, fintrack.CollectionExpenses))

	list, err := c.ListExpenses(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestListExpenses_ServedFromCache(t *testing.T) {
	c, srv, _, _ := newAuthedClient(t)
	ctx := context.Background()
	listPath := "/api/collections/expenses/records"

	_, err := c.ListExpenses(ctx)
	require.NoError(t, err)
	_, err = c.ListExpenses(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, srv.count("GET", listPath))
}

func TestCreateExpense_RefetchesOnce(t *testing.T) {
	c, srv, _, _ := newAuthedClient(t)
	ctx := context.Background()
	listPath := "/api/collections/expenses/records"

	_, err := c.ListExpenses(ctx)
	require.NoError(t, err)

	created, err := c.CreateExpense(ctx, fintrack.ExpenseInput{Category: "rent", Amount: 900})
	require.NoError(t, err)
	require.NoError(t, c.AwaitRefetch(ctx, fintrack.CollectionExpenses))

	// The mutation triggered exactly one background refetch; the list
	// after it is served from the refreshed cache.
	assert.Equal(t, 2, srv.count("GET", listPath))
	list, err := c.ListExpenses(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, list)
	assert.Equal(t, created.ID, list[0].ID)
	assert.Equal(t, 2, srv.count("GET", listPath))
}

func TestListExpenses_SlowResponseCannotMaskMutation(t *testing.T) {
	c, srv, _, _ := newAuthedClient(t)
	ctx := context.Background()

	// The first list call's response (an empty pre-mutation snapshot)
	// is held back until after a create and its refetch have completed.
	release := make(chan struct{})
	srv.setListHook(func(call int) {
		if call == 1 {
			<-release
		}
	})

	slowDone := make(chan error, 1)
	go func() {
		_, err := c.ListExpenses(ctx)
		slowDone <- err
	}()
	for srv.listCallCount() < 1 {
		time.Sleep(5 * time.Millisecond)
	}

	created, err := c.CreateExpense(ctx, fintrack.ExpenseInput{Category: "rent", Amount: 900})
	require.NoError(t, err)
	require.NoError(t, c.AwaitRefetch(ctx, fintrack.CollectionExpenses))

	close(release)
	require.NoError(t, <-slowDone)

	// The delayed response must not have overwritten the refetched
	// state: the created record is still visible.
	list, err := c.ListExpenses(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
}

func TestDeleteExpense_RemovedFromList(t *testing.T) {
	c, _, _, _ := newAuthedClient(t)
	ctx := context.Background()

	keep, err := c.CreateExpense(ctx, fintrack.ExpenseInput{Category: "keep", Amount: 1})
	require.NoError(t, err)
	drop, err := c.CreateExpense(ctx, fintrack.ExpenseInput{Category: "drop", Amount: 2})
	require.NoError(t, err)

	require.NoError(t, c.DeleteExpense(ctx, drop.ID))
	require.NoError(t, c.AwaitRefetch(ctx, fintrack.CollectionExpenses))

	list, err := c.ListExpenses(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, keep.ID, list[0].ID)
}

func TestDeleteExpense_Missing(t *testing.T) {
	c, _, _, _ := newAuthedClient(t)
	err := c.DeleteExpense(context.Background(), "nope")
	var remoteErr *fintrack.RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, 404, remoteErr.Status)
}

func TestFailedMutation_LeavesCacheFresh(t *testing.T) {
	c, srv, _, _ := newAuthedClient(t)
	ctx := context.Background()
	listPath := "/api/collections/expenses/records"

	_, err := c.ListExpenses(ctx)
	require.NoError(t, err)

	// A failed delete must not invalidate: the cache still reflects the
	// last confirmed server state.
	require.Error(t, c.DeleteExpense(ctx, "missing-id"))
	require.NoError(t, c.AwaitRefetch(ctx, fintrack.CollectionExpenses))

	_, err = c.ListExpenses(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, srv.count("GET", listPath))
}

func TestMutations_RequireSession(t *testing.T) {
	srv := newFakeRecordServer(t)
	c, err := fintrack.New(srv.URL())
	require.NoError(t, err)
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	_, err = c.CreateExpense(ctx, fintrack.ExpenseInput{Category: "x", Amount: 1})
	assert.ErrorIs(t, err, fintrack.ErrNotAuthenticated)
	_, err = c.CreateIncome(ctx, fintrack.IncomeInput{Source: "x", Amount: 1})
	assert.ErrorIs(t, err, fintrack.ErrNotAuthenticated)
	_, err = c.CreateBudget(ctx, fintrack.BudgetInput{Category: "x", Allocated: 1})
	assert.ErrorIs(t, err, fintrack.ErrNotAuthenticated)
	_, err = c.CreateSavingGoal(ctx, fintrack.SavingGoalInput{Name: "x", TargetAmount: 1})
	assert.ErrorIs(t, err, fintrack.ErrNotAuthenticated)
}

func TestIncomes_RoundTrip(t *testing.T) {
	c, _, _, userID := newAuthedClient(t)
	ctx := context.Background()

	in, err := c.CreateIncome(ctx, fintrack.IncomeInput{
		Date:   fintrack.NewDateTime(time.Date(2023, 8, 3, 0, 0, 0, 0, time.UTC)),
		Source: "salary",
		Amount: 2500,
	})
	require.NoError(t, err)
	assert.Equal(t, userID, in.User)

	in.Amount = 2600
	updated, err := c.UpdateIncome(ctx, *in)
	require.NoError(t, err)
	assert.Equal(t, 2600.0, updated.Amount)

	require.NoError(t, c.DeleteIncome(ctx, in.ID))
	require.NoError(t, c.AwaitRefetch(ctx, fintrack.CollectionIncomes))
	list, err := c.ListIncomes(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestBudgets_RoundTrip(t *testing.T) {
	c, _, _, userID := newAuthedClient(t)
	ctx := context.Background()

	b, err := c.CreateBudget(ctx, fintrack.BudgetInput{Category: "food", Allocated: 400})
	require.NoError(t, err)
	assert.Equal(t, userID, b.User)

	b.Spent = 120
	updated, err := c.UpdateBudget(ctx, *b)
	require.NoError(t, err)
	assert.Equal(t, 120.0, updated.Spent)

	require.NoError(t, c.AwaitRefetch(ctx, fintrack.CollectionBudgets))
	list, err := c.ListBudgets(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 120.0, list[0].Spent)
}

func TestSavingGoals_RoundTrip(t *testing.T) {
	c, _, _, userID := newAuthedClient(t)
	ctx := context.Background()

	g, err := c.CreateSavingGoal(ctx, fintrack.SavingGoalInput{
		Name:         "emergency fund",
		TargetAmount: 5000,
		TargetDate:   fintrack.NewDateTime(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
	})
	require.NoError(t, err)
	assert.Equal(t, userID, g.User)

	g.SavedAmount = 750
	updated, err := c.UpdateSavingGoal(ctx, *g)
	require.NoError(t, err)
	assert.Equal(t, 750.0, updated.SavedAmount)

	require.NoError(t, c.DeleteSavingGoal(ctx, g.ID))
	require.NoError(t, c.AwaitRefetch(ctx, fintrack.CollectionSavingGoals))
	list, err := c.ListSavingGoals(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSubscribe_NotifiedAfterRefetch(t *testing.T) {
	c, _, _, _ := newAuthedClient(t)
	ctx := context.Background()

	ch := c.Subscribe(fintrack.CollectionExpenses)
	defer c.Unsubscribe(fintrack.CollectionExpenses, ch)

	_, err := c.CreateExpense(ctx, fintrack.ExpenseInput{Category: "x", Amount: 1})
	require.NoError(t, err)
	require.NoError(t, c.AwaitRefetch(ctx, fintrack.CollectionExpenses))

	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("no refresh notification after mutation")
	}
}
