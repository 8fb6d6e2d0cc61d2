// Package worker consumes ledger events and mirrors them to the journal.
package worker

import (
	"context"
	"fmt"

	"buget/internal/amqp"
	"buget/internal/log"
	"buget/internal/sheets"
)

// JournalWorker appends every recorded transaction to the journal sheet.
type JournalWorker struct {
	journal sheets.JournalWriter
	logger  *log.Logger
}

func NewJournalWorker(journal sheets.JournalWriter, logger *log.Logger) *JournalWorker {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &JournalWorker{journal: journal, logger: logger.WithComponent(log.ComponentWorker)}
}

// HandleEvent processes one ledger event. An error makes the consumer
// requeue the message.
func (w *JournalWorker) HandleEvent(ctx context.Context, ev *amqp.LedgerEvent) error {
	switch ev.Type {
	case amqp.EventTransactionAdded:
		tx := *ev.Transaction
		ref, err := w.journal.AppendTransaction(ctx, tx)
		if err != nil {
			return fmt.Errorf("append transaction %s to journal: %w", tx.ID, err)
		}
		w.logger.InfoContext(ctx, "Transaction mirrored to journal",
			log.NewFields().
				WithTransaction(tx.ID, string(tx.Kind()), tx.Date.String(), tx.Amount).
				WithOperation(log.OpAppend).
				ToSlice()...)
		w.logger.DebugContext(ctx, "Journal row", "ref", ref)

	case amqp.EventBackupRecorded:
		w.logger.InfoContext(ctx, "Backup exported", log.FieldTxDate, ev.Date.String())

	case amqp.EventStateImported:
		w.logger.WarnContext(ctx, "Ledger replaced by import, journal may need a manual rebuild",
			log.FieldCount, ev.Count)

	default:
		w.logger.WarnContext(ctx, "Ignoring unknown ledger event", log.FieldEventType, ev.Type)
	}
	return nil
}
