package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"buget/internal/core"
	"buget/internal/ledger"
)

func addCmd(opts *globalOptions) *cobra.Command {
	var (
		date, amount, note string
		to, from           string
		category, desc     string
	)

	cmd := &cobra.Command{
		Use:   "add <income|expense|transfer>",
		Short: "Record a transaction",
		Long: `Record an income into a budget, an expense from Cheltuieli, or a transfer
between two budgets. Amounts use a comma for decimals, e.g. "12,50".`,
		Example: `  bugetctl add income --amount 3000 --to Nealocat
  bugetctl add expense --amount "45,50" --category Piață --desc legume
  bugetctl add transfer --amount 500 --from Nealocat --to Economii`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.close()

			kind, err := core.ParseKind(args[0])
			if err != nil {
				return err
			}
			bani, err := core.ParseAmount(amount)
			if err != nil {
				return fmt.Errorf("--amount %q: %w", amount, err)
			}
			when := s.today
			if date != "" {
				if when, err = core.ParseDate(date); err != nil {
					return fmt.Errorf("--date: %w", err)
				}
			}

			tx, err := s.svc.AddTransaction(cmd.Context(), core.Draft{
				Kind:       kind,
				Date:       when,
				Amount:     bani,
				Note:       note,
				ToBudget:   to,
				FromBudget: from,
				Category:   category,
				Desc:       desc,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s %s on %s (%s)\n",
				tx.Kind().Label(), core.FormatBani(tx.Amount), tx.Date, tx.Flow())
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&amount, "amount", "", "amount in lei")
	f.StringVar(&date, "date", "", "transaction date (YYYY-MM-DD), defaults to today")
	f.StringVar(&note, "note", "", "optional note")
	f.StringVar(&to, "to", "Nealocat", "destination budget (income, transfer)")
	f.StringVar(&from, "from", "", "source budget (transfer)")
	f.StringVar(&category, "category", "", "expense category")
	f.StringVar(&desc, "desc", "", "what the money was spent on (expense)")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

// rangeFlags selects a date range the way the dashboard pickers do.
type rangeFlags struct {
	from, to, preset string
}

func (r *rangeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&r.from, "from", "", "range start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&r.to, "to", "", "range end (YYYY-MM-DD)")
	cmd.Flags().StringVar(&r.preset, "preset", ledger.PresetMonth, "month, lastMonth, 7d or 30d")
}

func (r *rangeFlags) resolve(today core.Date) (ledger.Range, error) {
	if r.from != "" || r.to != "" {
		return ledger.ParseRange(r.from, r.to)
	}
	return ledger.PresetRange(r.preset, today)
}

func listCmd(opts *globalOptions) *cobra.Command {
	var (
		rng        rangeFlags
		kind, text string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions in a date range, newest first",
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
			k, err := ledger.ParseFilterKind(kind)
			if err != nil {
				return err
			}

			txs := s.svc.List(r, ledger.Filter{Kind: k, Text: text})
			out := cmd.OutOrStdout()
			if len(txs) == 0 {
				fmt.Fprintf(out, "No transactions between %s and %s.\n", r.Start, r.End)
				return nil
			}
			writeTransactions(out, txs)
			writeTotals(out, ledger.ComputeTotals(txs))
			return nil
		},
	}

	rng.register(cmd)
	cmd.Flags().StringVar(&kind, "type", ledger.KindAll, "all, income, expense or transfer")
	cmd.Flags().StringVarP(&text, "query", "q", "", "case-insensitive text search")
	return cmd
}

func writeTransactions(out io.Writer, txs []core.Transaction) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "DATE\tTYPE\tAMOUNT\tFLOW\tCATEGORY\tDESCRIPTION\tNOTE")
	for _, tx := range txs {
		_, _, category, desc := tx.Fields()
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			tx.Date, tx.Kind().Label(), core.FormatBani(tx.Amount), tx.Flow(), category, desc, tx.Note)
	}
}

func writeTotals(out io.Writer, t core.Totals) {
	fmt.Fprintf(out, "\nVenituri: %s  Cheltuieli: %s  Transferuri: %s  Net: %s\n",
		core.FormatBani(t.Income), core.FormatBani(t.Expense), core.FormatBani(t.Transfer), core.FormatBani(t.Net))
}
