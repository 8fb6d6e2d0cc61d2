// Package ledger implements the budgeting ledger: the store that owns budgets,
// categories and the append-only transaction log, and the pure engines that
// derive balances, range queries, totals and the backup reminder from it.
package ledger

import (
	"slices"

	"buget/internal/core"
)

// State is the whole ledger. It is what gets persisted, exported and imported.
type State struct {
	Budgets      []string
	Categories   []string
	Transactions []core.Transaction
	LastBackup   core.Date // zero when no backup was ever exported
}

var (
	defaultBudgets    = []string{"Nealocat", core.ExpensePool, "Economii", "Bancă"}
	defaultCategories = []string{"Meditații/Educație", "Transport", "Facturi", "Piață", "Sănătate", "Cadouri", "Altele"}
)

// DefaultState returns the state of a fresh installation.
func DefaultState() State {
	return State{
		Budgets:      slices.Clone(defaultBudgets),
		Categories:   slices.Clone(defaultCategories),
		Transactions: []core.Transaction{},
	}
}

// Clone returns a copy that shares nothing mutable with s.
func (s State) Clone() State {
	out := State{
		Budgets:      slices.Clone(s.Budgets),
		Categories:   slices.Clone(s.Categories),
		Transactions: slices.Clone(s.Transactions),
		LastBackup:   s.LastBackup,
	}
	if out.Budgets == nil {
		out.Budgets = []string{}
	}
	if out.Categories == nil {
		out.Categories = []string{}
	}
	if out.Transactions == nil {
		out.Transactions = []core.Transaction{}
	}
	return out
}
