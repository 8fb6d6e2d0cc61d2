package ledger

import (
	"slices"
	"sort"

	"buget/internal/core"
)

// ComputeBalances folds the log into a balance per budget. Every name in
// budgets is present, starting at zero; budgets only mentioned by
// transactions are included too. Order of txs does not matter and balances
// may be negative.
func ComputeBalances(txs []core.Transaction, budgets []string) map[string]int64 {
	bal := make(map[string]int64, len(budgets))
	for _, b := range budgets {
		bal[b] = 0
	}
	for _, t := range txs {
		switch p := t.Payload.(type) {
		case core.Income:
			bal[p.ToBudget] += t.Amount
		case core.Expense:
			bal[core.ExpensePool] -= t.Amount
		case core.Transfer:
			bal[p.FromBudget] -= t.Amount
			bal[p.ToBudget] += t.Amount
		}
	}
	return bal
}

// BudgetBalances lists bal in the order of budgets, followed by any other
// budget found in bal in name order.
func BudgetBalances(bal map[string]int64, budgets []string) []core.BudgetBalance {
	out := make([]core.BudgetBalance, 0, len(bal))
	for _, b := range budgets {
		out = append(out, core.BudgetBalance{Name: b, Balance: bal[b]})
	}
	var extra []string
	for name := range bal {
		if !slices.Contains(budgets, name) {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		out = append(out, core.BudgetBalance{Name: name, Balance: bal[name]})
	}
	return out
}
