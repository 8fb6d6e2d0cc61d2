// Package sheets mirrors ledger transactions into a spreadsheet journal.
package sheets

import (
	"context"

	"github.com/shopspring/decimal"

	"buget/internal/core"
)

// JournalHeader names the journal columns, in order.
var JournalHeader = []string{"Data", "Tip", "Sumă (RON)", "Flux", "Categorie", "Descriere", "Notă", "ID"}

// JournalWriter appends one row per recorded transaction.
type JournalWriter interface {
	AppendTransaction(ctx context.Context, tx core.Transaction) (rowRef string, err error)
}

// Row renders tx as journal cells. The amount is written as a plain decimal
// number so the sheet can sum it.
func Row(tx core.Transaction) []any {
	_, _, category, desc := tx.Fields()
	return []any{
		tx.Date.String(),
		tx.Kind().Label(),
		decimal.New(tx.Amount, -2).StringFixed(2),
		tx.Flow(),
		category,
		desc,
		tx.Note,
		tx.ID,
	}
}
