package ledger

import "buget/internal/core"

// Dashboard is the data behind the home screen.
type Dashboard struct {
	Today         core.Date             `json:"today"`
	Balances      []core.BudgetBalance  `json:"balances"`
	Month         Range                 `json:"month"`
	MonthTotals   core.Totals           `json:"monthTotals"`
	TopCategories []core.CategoryAmount `json:"topCategories"`
	Backup        BackupAge             `json:"backup"`
	BackupStatus  BackupStatus          `json:"backupStatus"`
}

// BuildDashboard derives the dashboard for today. Balances always cover the
// whole log; totals and categories cover today's calendar month.
func BuildDashboard(st State, today core.Date) Dashboard {
	month := MonthRange(today)
	monthTxs := Query(st.Transactions, month, Filter{})
	age := DaysSinceBackup(st.LastBackup, today)
	return Dashboard{
		Today:         today,
		Balances:      BudgetBalances(ComputeBalances(st.Transactions, st.Budgets), st.Budgets),
		Month:         month,
		MonthTotals:   ComputeTotals(monthTxs),
		TopCategories: TopCategories(ExpenseByCategory(monthTxs), TopCategoryCount),
		Backup:        age,
		BackupStatus:  age.Status(),
	}
}

// Report is the printable summary of a date range.
type Report struct {
	Range       Range                 `json:"range"`
	GeneratedOn core.Date             `json:"generatedOn"`
	Totals      core.Totals           `json:"totals"`
	Categories  []core.CategoryAmount `json:"categories"`
	Chart       []core.CategoryAmount `json:"chart"`
	Balances    []core.BudgetBalance  `json:"balances"`
	Rows        []core.Transaction    `json:"rows"`
}

// BuildReport summarizes r. Balances are those of the whole log at the time
// the report is generated, not as of r.End.
func BuildReport(st State, r Range, today core.Date) Report {
	txs := Query(st.Transactions, r, Filter{})
	byCat := ExpenseByCategory(txs)
	return Report{
		Range:       r,
		GeneratedOn: today,
		Totals:      ComputeTotals(txs),
		Categories:  RankCategories(byCat),
		Chart:       TopCategories(byCat, TopCategoryCount),
		Balances:    BudgetBalances(ComputeBalances(st.Transactions, st.Budgets), st.Budgets),
		Rows:        txs,
	}
}
