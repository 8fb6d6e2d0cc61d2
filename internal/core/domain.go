package core

import (
	"errors"
	"fmt"
	"strings"
)

const (
	KindIncome   Kind = "income"
	KindExpense  Kind = "expense"
	KindTransfer Kind = "transfer"
)

// ExpensePool is the budget every expense is paid from, whatever its category.
const ExpensePool = "Cheltuieli"

type (
	// Kind is the closed set of transaction types.
	Kind string

	// Payload holds the fields that depend on the transaction kind.
	// It is implemented by Income, Expense and Transfer only.
	Payload interface {
		Kind() Kind
		validate() error
	}

	Income struct {
		ToBudget string
	}

	Expense struct {
		Category string
		Desc     string // what the money was spent on, mandatory
	}

	Transfer struct {
		FromBudget string
		ToBudget   string
	}

	// Transaction is an immutable ledger entry.
	Transaction struct {
		ID      string
		Date    Date
		Amount  int64 // bani, always > 0
		Note    string
		Payload Payload
	}

	// Draft is the raw input for a new transaction before the store accepts it.
	// Only the fields relevant to Kind are read.
	Draft struct {
		Kind       Kind
		Date       Date
		Amount     int64
		Note       string
		ToBudget   string
		FromBudget string
		Category   string
		Desc       string
	}
)

var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrMissingCategory    = errors.New("category is required")
	ErrMissingDescription = errors.New("description is required")
	ErrInvalidTransfer    = errors.New("transfer source and destination are identical")
	ErrInvalidRange       = errors.New("invalid date range")
	ErrInvalidImportShape = errors.New("invalid backup file")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnknownBudget      = errors.New("unknown budget")
	ErrInvalidKind        = errors.New("invalid transaction type")
	ErrMissingDate        = errors.New("date is required")
)

// Kinds lists the transaction kinds in display order.
func Kinds() []Kind { return []Kind{KindIncome, KindExpense, KindTransfer} }

// ParseKind validates a wire value.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindIncome, KindExpense, KindTransfer:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidKind, s)
}

// Label is the Romanian name shown to users.
func (k Kind) Label() string {
	switch k {
	case KindIncome:
		return "Venit"
	case KindExpense:
		return "Cheltuială"
	case KindTransfer:
		return "Transfer"
	}
	return string(k)
}

func (Income) Kind() Kind   { return KindIncome }
func (Expense) Kind() Kind  { return KindExpense }
func (Transfer) Kind() Kind { return KindTransfer }

func (p Income) validate() error {
	if strings.TrimSpace(p.ToBudget) == "" {
		return fmt.Errorf("%w: destination is empty", ErrUnknownBudget)
	}
	return nil
}

func (p Expense) validate() error {
	if strings.TrimSpace(p.Category) == "" {
		return ErrMissingCategory
	}
	if strings.TrimSpace(p.Desc) == "" {
		return ErrMissingDescription
	}
	return nil
}

func (p Transfer) validate() error {
	if strings.TrimSpace(p.FromBudget) == "" || strings.TrimSpace(p.ToBudget) == "" {
		return fmt.Errorf("%w: source and destination are required", ErrInvalidTransfer)
	}
	if p.FromBudget == p.ToBudget {
		return ErrInvalidTransfer
	}
	return nil
}

// Kind returns the kind of the payload, or "" when it is missing.
func (t Transaction) Kind() Kind {
	if t.Payload == nil {
		return ""
	}
	return t.Payload.Kind()
}

// Validate checks the shape of an already built transaction. It does not know
// which budgets exist; the ledger store checks that.
func (t Transaction) Validate() error {
	if t.Date.IsZero() {
		return ErrMissingDate
	}
	if t.Amount <= 0 {
		return ErrInvalidAmount
	}
	if t.Payload == nil {
		return ErrInvalidKind
	}
	return t.Payload.validate()
}

// Fields flattens the payload into the optional wire fields.
func (t Transaction) Fields() (toBudget, fromBudget, category, desc string) {
	switch p := t.Payload.(type) {
	case Income:
		return p.ToBudget, "", "", ""
	case Expense:
		return "", ExpensePool, p.Category, p.Desc
	case Transfer:
		return p.ToBudget, p.FromBudget, "", ""
	}
	return "", "", "", ""
}

// Haystack is the text searched by free-text filters.
func (t Transaction) Haystack() string {
	to, from, cat, desc := t.Fields()
	return strings.Join([]string{cat, desc, t.Note, from, to}, " ")
}

// Flow describes where the money moved, e.g. "Economii → Bancă".
func (t Transaction) Flow() string {
	switch p := t.Payload.(type) {
	case Income:
		return "În: " + p.ToBudget
	case Expense:
		return "Din: " + ExpensePool
	case Transfer:
		return p.FromBudget + " → " + p.ToBudget
	}
	return ""
}

// Payload builds the kind-specific part of the draft, trimming text fields.
func (d Draft) Payload() (Payload, error) {
	switch d.Kind {
	case KindIncome:
		return Income{ToBudget: strings.TrimSpace(d.ToBudget)}, nil
	case KindExpense:
		return Expense{Category: strings.TrimSpace(d.Category), Desc: strings.TrimSpace(d.Desc)}, nil
	case KindTransfer:
		return Transfer{FromBudget: strings.TrimSpace(d.FromBudget), ToBudget: strings.TrimSpace(d.ToBudget)}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidKind, d.Kind)
}
