package core

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string `json:"name"`
	Amount int64  `json:"amountBani"`
}

// BudgetBalance is the derived balance of one budget.
type BudgetBalance struct {
	Name    string `json:"name"`
	Balance int64  `json:"balanceBani"`
}

// Totals summarizes a set of transactions. Transfers move money between
// budgets without changing the total, so Net ignores them.
type Totals struct {
	Income   int64 `json:"income"`
	Expense  int64 `json:"expense"`
	Transfer int64 `json:"transfer"`
	Net      int64 `json:"net"`
}
