package ledger

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/text/collate"

	"buget/internal/core"
)

// Store owns the ledger state. All mutation goes through its methods, each of
// which validates completely before touching anything, so a rejected call
// leaves the ledger exactly as it was.
type Store struct {
	mu         sync.RWMutex
	budgets    []string
	categories []string
	txs        []core.Transaction
	lastBackup core.Date

	collator *collate.Collator
	newID    func() string
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the random transaction id source.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// NewStore builds a store from st. The transaction log is put in canonical
// order and records without an id get one.
func NewStore(st State, opts ...Option) *Store {
	s := &Store{
		collator: newCollator(),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.load(st)
	return s
}

func (s *Store) load(st State) {
	st = st.Clone()
	for i := range st.Transactions {
		if st.Transactions[i].ID == "" {
			st.Transactions[i].ID = s.newID()
		}
	}
	sortByDate(st.Transactions)
	s.budgets = st.Budgets
	s.categories = st.Categories
	s.txs = st.Transactions
	s.lastBackup = st.LastBackup
}

// Replace swaps the whole state, as an import does.
func (s *Store) Replace(st State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load(st)
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{
		Budgets:      s.budgets,
		Categories:   s.categories,
		Transactions: s.txs,
		LastBackup:   s.lastBackup,
	}.Clone()
}

func (s *Store) Budgets() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.budgets)
}

func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.categories)
}

// Transactions returns the log in canonical order: ascending date, ties in
// insertion order.
func (s *Store) Transactions() []core.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.txs)
}

func (s *Store) LastBackup() core.Date {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastBackup
}

// RecordBackup stamps the date of a completed export.
func (s *Store) RecordBackup(today core.Date) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastBackup = today
}

// AddBudget adds a budget. Adding a known name is a no-op.
func (s *Store) AddBudget(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: empty budget name", core.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !slices.Contains(s.budgets, name) {
		s.budgets = append(s.budgets, name)
	}
	return nil
}

// RegisterCategory makes sure name is a known category and returns it trimmed.
// Matching is exact and case-sensitive.
func (s *Store) RegisterCategory(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: empty category name", core.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registerCategoryLocked(name)
	return name, nil
}

func (s *Store) registerCategoryLocked(name string) {
	if slices.Contains(s.categories, name) {
		return
	}
	s.categories = append(s.categories, name)
	sortNames(s.collator, s.categories)
}

// AddTransaction validates d against the ledger and appends it.
func (s *Store) AddTransaction(d core.Draft) (core.Transaction, error) {
	if d.Date.IsZero() {
		return core.Transaction{}, core.ErrMissingDate
	}
	if d.Amount <= 0 {
		return core.Transaction{}, core.ErrInvalidAmount
	}
	payload, err := d.Payload()
	if err != nil {
		return core.Transaction{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkBudgetsLocked(payload); err != nil {
		return core.Transaction{}, err
	}
	tx := core.Transaction{
		Date:    d.Date,
		Amount:  d.Amount,
		Note:    strings.TrimSpace(d.Note),
		Payload: payload,
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}

	// Nothing can fail past this point.
	if exp, ok := payload.(core.Expense); ok {
		s.registerCategoryLocked(exp.Category)
	}
	tx.ID = s.newID()
	at := sort.Search(len(s.txs), func(i int) bool { return s.txs[i].Date.After(tx.Date) })
	s.txs = slices.Insert(s.txs, at, tx)
	return tx, nil
}

func (s *Store) checkBudgetsLocked(p core.Payload) error {
	switch p := p.(type) {
	case core.Income:
		if !slices.Contains(s.budgets, p.ToBudget) {
			return fmt.Errorf("%w: %q", core.ErrUnknownBudget, p.ToBudget)
		}
	case core.Transfer:
		for _, name := range []string{p.FromBudget, p.ToBudget} {
			if !slices.Contains(s.budgets, name) {
				return fmt.Errorf("%w: %w: %q", core.ErrInvalidTransfer, core.ErrUnknownBudget, name)
			}
		}
	}
	return nil
}

func sortByDate(txs []core.Transaction) {
	slices.SortStableFunc(txs, func(a, b core.Transaction) int { return a.Date.Compare(b.Date) })
}
