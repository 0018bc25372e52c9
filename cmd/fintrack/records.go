package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	fintrack "github.com/fintrackapp/fintrack-go"
)

func parseDate(s string) (fintrack.DateTime, error) {
	if s == "" {
		return fintrack.NewDateTime(time.Now()), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return fintrack.DateTime{}, fmt.Errorf("date must be YYYY-MM-DD: %w", err)
	}
	return fintrack.NewDateTime(t), nil
}

func addRecordCommands(root *cobra.Command) {
	root.AddCommand(expensesCmd(), incomesCmd(), budgetsCmd(), goalsCmd())
}

func expensesCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "expenses", Short: "List and mutate expenses"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List expenses, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()
			expenses, err := c.ListExpenses(cmd.Context())
			if err != nil {
				return err
			}
			for _, e := range expenses {
				fmt.Printf("%s  %s  %-16s %10.2f  %s\n", e.ID, e.Date.Format("2006-01-02"), e.Category, e.Amount, e.Description)
			}
			return nil
		},
	}

	add := &cobra.Command{
		Use:   "add",
		Short: "Create an expense",
		RunE: func(cmd *cobra.Command, args []string) error {
			category, _ := cmd.Flags().GetString("category")
			amount, _ := cmd.Flags().GetFloat64("amount")
			description, _ := cmd.Flags().GetString("description")
			dateStr, _ := cmd.Flags().GetString("date")
			date, err := parseDate(dateStr)
			if err != nil {
				return err
			}
			c, err := newClient()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()
			e, err := c.CreateExpense(cmd.Context(), fintrack.ExpenseInput{
				Date:        date,
				Category:    category,
				Amount:      amount,
				Description: description,
			})
			if err != nil {
				return err
			}
			fmt.Printf("created expense %s\n", e.ID)
			return nil
		},
	}
	add.Flags().StringP("category", "c", "", "expense category (required)")
	add.Flags().Float64P("amount", "m", 0, "amount (required)")
	add.Flags().StringP("description", "d", "", "description")
	add.Flags().String("date", "", "occurrence date YYYY-MM-DD (default today)")
	_ = add.MarkFlagRequired("category")
	_ = add.MarkFlagRequired("amount")

	rm := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an expense by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()
			if err := c.DeleteExpense(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("deleted expense %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(list, add, rm)
	return cmd
}

func incomesCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "incomes", Short: "List and mutate incomes"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List incomes, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()
			incomes, err := c.ListIncomes(cmd.Context())
			if err != nil {
				return err
			}
			for _, in := range incomes {
				fmt.Printf("%s  %s  %-16s %10.2f  %s\n", in.ID, in.Date.Format("2006-01-02"), in.Source, in.Amount, in.Description)
			}
			return nil
		},
	}

	add := &cobra.Command{
		Use:   "add",
		Short: "Create an income",
		RunE: func(cmd *cobra.Command, args []string) error {
			source, _ := cmd.Flags().GetString("source")
			amount, _ := cmd.Flags().GetFloat64("amount")
			description, _ := cmd.Flags().GetString("description")
			dateStr, _ := cmd.Flags().GetString("date")
			date, err := parseDate(dateStr)
			if err != nil {
				return err
			}
			c, err := newClient()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()
			in, err := c.CreateIncome(cmd.Context(), fintrack.IncomeInput{
				Date:        date,
				Source:      source,
				Amount:      amount,
				Description: description,
			})
			if err != nil {
				return err
			}
			fmt.Printf("created income %s\n", in.ID)
			return nil
		},
	}
	add.Flags().StringP("source", "s", "", "income source (required)")
	add.Flags().Float64P("amount", "m", 0, "amount (required)")
	add.Flags().StringP("description", "d", "", "description")
	add.Flags().String("date", "", "occurrence date YYYY-MM-DD (default today)")
	_ = add.MarkFlagRequired("source")
	_ = add.MarkFlagRequired("amount")

	rm := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an income by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()
			if err := c.DeleteIncome(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("deleted income %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(list, add, rm)
	return cmd
}

func budgetsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "budgets", Short: "List and mutate budgets"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List budget lines",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()
			budgets, err := c.ListBudgets(cmd.Context())
			if err != nil {
				return err
			}
			for _, b := range budgets {
				fmt.Printf("%s  %-16s allocated %10.2f  spent %10.2f\n", b.ID, b.Category, b.Allocated, b.Spent)
			}
			return nil
		},
	}

	add := &cobra.Command{
		Use:   "add",
		Short: "Create a budget line",
		RunE: func(cmd *cobra.Command, args []string) error {
			category, _ := cmd.Flags().GetString("category")
			allocated, _ := cmd.Flags().GetFloat64("allocated")
			c, err := newClient()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()
			b, err := c.CreateBudget(cmd.Context(), fintrack.BudgetInput{
				Category:  category,
				Allocated: allocated,
			})
			if err != nil {
				return err
			}
			fmt.Printf("created budget %s\n", b.ID)
			return nil
		},
	}
	add.Flags().StringP("category", "c", "", "budget category (required)")
	add.Flags().Float64("allocated", 0, "allocated amount (required)")
	_ = add.MarkFlagRequired("category")
	_ = add.MarkFlagRequired("allocated")

	rm := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a budget line by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()
			if err := c.DeleteBudget(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("deleted budget %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(list, add, rm)
	return cmd
}

func goalsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "goals", Short: "List and mutate saving goals"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List saving goals",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()
			goals, err := c.ListSavingGoals(cmd.Context())
			if err != nil {
				return err
			}
			for _, g := range goals {
				fmt.Printf("%s  %-20s %10.2f / %10.2f  by %s\n", g.ID, g.Name, g.SavedAmount, g.TargetAmount, g.TargetDate.Format("2006-01-02"))
			}
			return nil
		},
	}

	add := &cobra.Command{
		Use:   "add",
		Short: "Create a saving goal",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			category, _ := cmd.Flags().GetString("category")
			target, _ := cmd.Flags().GetFloat64("target")
			deadlineStr, _ := cmd.Flags().GetString("deadline")
			deadline, err := parseDate(deadlineStr)
			if err != nil {
				return err
			}
			c, err := newClient()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()
			g, err := c.CreateSavingGoal(cmd.Context(), fintrack.SavingGoalInput{
				Name:         name,
				Category:     category,
				TargetAmount: target,
				TargetDate:   deadline,
			})
			if err != nil {
				return err
			}
			fmt.Printf("created saving goal %s\n", g.ID)
			return nil
		},
	}
	add.Flags().StringP("name", "n", "", "goal name (required)")
	add.Flags().StringP("category", "c", "", "goal category")
	add.Flags().Float64P("target", "t", 0, "target amount (required)")
	add.Flags().String("deadline", "", "target date YYYY-MM-DD")
	_ = add.MarkFlagRequired("name")
	_ = add.MarkFlagRequired("target")

	rm := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a saving goal by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()
			if err := c.DeleteSavingGoal(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("deleted saving goal %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(list, add, rm)
	return cmd
}
