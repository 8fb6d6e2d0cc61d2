package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"buget/internal/core"
	"buget/internal/ledger"
)

func balancesCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "balances",
		Short: "Show the balance of every budget",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.close()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
			defer w.Flush()
			for _, b := range s.svc.Balances() {
				fmt.Fprintf(w, "%s\t%s\t\n", b.Name, core.FormatBani(b.Balance))
			}
			return nil
		},
	}
}

func reportCmd(opts *globalOptions) *cobra.Command {
	var rng rangeFlags

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize a date range: totals, spending by category and balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.close()

			r, err := rng.resolve(s.today)
			if err != nil {
				return err
			}
			rep := s.svc.Report(r, s.today)
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "Raport %s (generat %s)\n", rep.Range, rep.GeneratedOn)
			writeTotals(out, rep.Totals)

			fmt.Fprintln(out, "\nCheltuieli pe categorii:")
			if len(rep.Categories) == 0 {
				fmt.Fprintln(out, "  (nicio cheltuială)")
			}
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			for _, c := range rep.Categories {
				fmt.Fprintf(w, "  %s\t%s\n", c.Name, core.FormatBani(c.Amount))
			}
			w.Flush()

			fmt.Fprintln(out, "\nSolduri:")
			w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			for _, b := range rep.Balances {
				fmt.Fprintf(w, "  %s\t%s\n", b.Name, core.FormatBani(b.Balance))
			}
			w.Flush()

			if len(rep.Rows) > 0 {
				fmt.Fprintln(out)
				writeTransactions(out, ledger.NewestFirst(rep.Rows))
			}
			return nil
		},
	}
	rng.register(cmd)
	return cmd
}

func budgetsCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budgets",
		Short: "List budgets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.close()
			for _, b := range s.svc.Budgets() {
				fmt.Fprintln(cmd.OutOrStdout(), b)
			}
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Add a budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.close()
			if err := s.svc.AddBudget(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Budget %q ready\n", args[0])
			return nil
		},
	})
	return cmd
}

func categoriesCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List expense categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.close()
			for _, c := range s.svc.Categories() {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Add a category suggestion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.close()
			name, err := s.svc.RegisterCategory(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Category %q ready\n", name)
			return nil
		},
	})
	return cmd
}
