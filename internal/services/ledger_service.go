// Package services coordinates the ledger store with persistence and event
// publishing.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"buget/internal/amqp"
	"buget/internal/core"
	"buget/internal/ledger"
	"buget/internal/log"
	"buget/internal/storage"
)

// EventPublisher receives ledger events after they have been persisted.
type EventPublisher interface {
	PublishLedgerEvent(ctx context.Context, event *amqp.LedgerEvent) error
}

// LedgerService owns the in-memory ledger and keeps the snapshot store in
// sync with it. Every mutation persists the whole ledger.
type LedgerService struct {
	mu        sync.Mutex // serializes mutate and persist
	store     *ledger.Store
	snapshots storage.SnapshotStore
	publisher EventPublisher
	logger    *log.Logger
}

// NewLedgerService starts with the default ledger; call Load to read the
// persisted one. publisher may be nil.
func NewLedgerService(snapshots storage.SnapshotStore, publisher EventPublisher, logger *log.Logger, opts ...ledger.Option) *LedgerService {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &LedgerService{
		store:     ledger.NewStore(ledger.DefaultState(), opts...),
		snapshots: snapshots,
		publisher: publisher,
		logger:    logger.WithComponent(log.ComponentLedger),
	}
}

// Load replaces the ledger with the persisted snapshot. A missing snapshot or
// one that is not JSON yields the default ledger. Records that fail
// validation are skipped and logged, the rest is kept. Only a failing store
// is an error.
func (s *LedgerService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.snapshots.Load(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		s.logger.InfoContext(ctx, "No saved ledger, starting with defaults")
		s.store.Replace(ledger.DefaultState())
		return nil
	}
	if err != nil {
		return fmt.Errorf("load ledger: %w", err)
	}

	st, err := ledger.DecodeState(raw)
	if err != nil {
		s.logger.WarnContext(ctx, "Saved ledger has unreadable entries, skipping them", log.FieldError, err)
	}
	s.store.Replace(st)
	s.logger.InfoContext(ctx, "Ledger loaded", log.FieldCount, len(st.Transactions))
	return nil
}

// AddTransaction validates and records a draft, then persists the ledger.
// If persisting fails the transaction stays recorded in memory and the error
// is returned along with it.
func (s *LedgerService) AddTransaction(ctx context.Context, d core.Draft) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.store.AddTransaction(d)
	if err != nil {
		return core.Transaction{}, err
	}
	s.logger.InfoContext(ctx, "Transaction recorded",
		log.NewFields().
			WithTransaction(tx.ID, string(tx.Kind()), tx.Date.String(), tx.Amount).
			WithOperation(log.OpCreate).
			ToSlice()...)

	if err := s.persistLocked(ctx); err != nil {
		return tx, err
	}
	s.publish(ctx, amqp.NewTransactionAdded(tx))
	return tx, nil
}

// RegisterCategory adds a category to the suggestion list.
func (s *LedgerService) RegisterCategory(ctx context.Context, name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	registered, err := s.store.RegisterCategory(name)
	if err != nil {
		return "", err
	}
	return registered, s.persistLocked(ctx)
}

// AddBudget adds a budget; adding an existing one changes nothing.
func (s *LedgerService) AddBudget(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.AddBudget(name); err != nil {
		return err
	}
	return s.persistLocked(ctx)
}

func (s *LedgerService) Budgets() []string    { return s.store.Budgets() }
func (s *LedgerService) Categories() []string { return s.store.Categories() }

// Balances returns every budget's balance over the whole log.
func (s *LedgerService) Balances() []core.BudgetBalance {
	st := s.store.Snapshot()
	return ledger.BudgetBalances(ledger.ComputeBalances(st.Transactions, st.Budgets), st.Budgets)
}

// List returns the matching transactions of r, newest first.
func (s *LedgerService) List(r ledger.Range, f ledger.Filter) []core.Transaction {
	return ledger.NewestFirst(ledger.Query(s.store.Transactions(), r, f))
}

func (s *LedgerService) Dashboard(today core.Date) ledger.Dashboard {
	return ledger.BuildDashboard(s.store.Snapshot(), today)
}

func (s *LedgerService) Report(r ledger.Range, today core.Date) ledger.Report {
	return ledger.BuildReport(s.store.Snapshot(), r, today)
}

func (s *LedgerService) BackupStatus(today core.Date) ledger.BackupAge {
	return ledger.DaysSinceBackup(s.store.LastBackup(), today)
}

// LastBackup is the date of the last recorded export, zero if none.
func (s *LedgerService) LastBackup() core.Date {
	return s.store.LastBackup()
}

// Export records today as the last backup, persists, and returns the backup
// document.
func (s *LedgerService) Export(ctx context.Context, today core.Date) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.store.LastBackup()
	s.store.RecordBackup(today)
	body, err := ledger.EncodeState(s.store.Snapshot())
	if err == nil {
		err = s.persistLocked(ctx)
	}
	if err != nil {
		s.store.RecordBackup(prev)
		return nil, fmt.Errorf("export backup: %w", err)
	}
	s.logger.InfoContext(ctx, "Backup exported", log.FieldOperation, log.OpExport, "bytes", len(body))
	s.publish(ctx, amqp.NewBackupRecorded(today))
	return body, nil
}

// Import replaces the whole ledger with a backup document. Nothing changes
// when the document is rejected.
func (s *LedgerService) Import(ctx context.Context, raw []byte) (ledger.State, error) {
	st, err := ledger.DecodeImport(raw)
	if err != nil {
		return ledger.State{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.Replace(st)
	st = s.store.Snapshot()
	s.logger.InfoContext(ctx, "Ledger imported", log.FieldOperation, log.OpImport, log.FieldCount, len(st.Transactions))
	if err := s.persistLocked(ctx); err != nil {
		return st, err
	}
	s.publish(ctx, amqp.NewStateImported(len(st.Transactions)))
	return st, nil
}

// Snapshot returns a copy of the whole ledger.
func (s *LedgerService) Snapshot() ledger.State { return s.store.Snapshot() }

func (s *LedgerService) persistLocked(ctx context.Context) error {
	body, err := ledger.EncodeState(s.store.Snapshot())
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	if err := s.snapshots.Save(ctx, body); err != nil {
		s.logger.ErrorContext(ctx, "Failed to persist ledger", log.FieldOperation, log.OpPersist, log.FieldError, err)
		return fmt.Errorf("persist ledger: %w", err)
	}
	return nil
}

// publish is best effort: the ledger is already persisted.
func (s *LedgerService) publish(ctx context.Context, ev *amqp.LedgerEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishLedgerEvent(ctx, ev); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish ledger event",
			log.FieldEventType, ev.Type,
			log.FieldOperation, log.OpPublish,
			log.FieldError, err)
	}
}
