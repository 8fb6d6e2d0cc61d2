package ledger

import (
	"slices"
	"strings"

	"buget/internal/core"
)

const (
	// OtherCategory collects whatever does not fit in a top-N breakdown.
	OtherCategory = "Altele"
	// TopCategoryCount is how many categories charts show before folding.
	TopCategoryCount = 8
)

// ComputeTotals sums txs per kind.
func ComputeTotals(txs []core.Transaction) core.Totals {
	var t core.Totals
	for _, tx := range txs {
		switch tx.Kind() {
		case core.KindIncome:
			t.Income += tx.Amount
		case core.KindExpense:
			t.Expense += tx.Amount
		case core.KindTransfer:
			t.Transfer += tx.Amount
		}
	}
	t.Net = t.Income - t.Expense
	return t
}

// ExpenseByCategory sums expenses per category.
func ExpenseByCategory(txs []core.Transaction) map[string]int64 {
	m := map[string]int64{}
	for _, tx := range txs {
		if exp, ok := tx.Payload.(core.Expense); ok {
			m[exp.Category] += tx.Amount
		}
	}
	return m
}

// RankCategories orders byCat by amount, largest first, ties by name.
func RankCategories(byCat map[string]int64) []core.CategoryAmount {
	out := make([]core.CategoryAmount, 0, len(byCat))
	for name, amount := range byCat {
		out = append(out, core.CategoryAmount{Name: name, Amount: amount})
	}
	slices.SortFunc(out, func(a, b core.CategoryAmount) int {
		if a.Amount != b.Amount {
			if a.Amount > b.Amount {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Name, b.Name)
	})
	return out
}

// TopCategories keeps the limit largest categories and folds the rest into a
// single OtherCategory entry appended at the end.
func TopCategories(byCat map[string]int64, limit int) []core.CategoryAmount {
	ranked := RankCategories(byCat)
	if limit < 1 || len(ranked) <= limit {
		return ranked
	}
	var rest int64
	for _, c := range ranked[limit:] {
		rest += c.Amount
	}
	return append(ranked[:limit:limit], core.CategoryAmount{Name: OtherCategory, Amount: rest})
}
