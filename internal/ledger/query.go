package ledger

import (
	"fmt"
	"slices"
	"strings"

	"buget/internal/core"
)

// Range is a span of calendar days, both ends included.
type Range struct {
	Start core.Date `json:"start"`
	End   core.Date `json:"end"`
}

// NewRange validates the endpoints. The engines never reorder them, so an
// inverted range is rejected here.
func NewRange(start, end core.Date) (Range, error) {
	if start.IsZero() || end.IsZero() {
		return Range{}, fmt.Errorf("%w: both start and end are required", core.ErrInvalidRange)
	}
	if end.Before(start) {
		return Range{}, fmt.Errorf("%w: end %s is before start %s", core.ErrInvalidRange, end, start)
	}
	return Range{Start: start, End: end}, nil
}

// ParseRange builds a Range from two "YYYY-MM-DD" strings.
func ParseRange(startISO, endISO string) (Range, error) {
	if strings.TrimSpace(startISO) == "" || strings.TrimSpace(endISO) == "" {
		return Range{}, fmt.Errorf("%w: both start and end are required", core.ErrInvalidRange)
	}
	start, err := core.ParseDate(strings.TrimSpace(startISO))
	if err != nil {
		return Range{}, fmt.Errorf("%w: %w", core.ErrInvalidRange, err)
	}
	end, err := core.ParseDate(strings.TrimSpace(endISO))
	if err != nil {
		return Range{}, fmt.Errorf("%w: %w", core.ErrInvalidRange, err)
	}
	return NewRange(start, end)
}

// Contains reports whether d falls in [Start, End+1 day).
func (r Range) Contains(d core.Date) bool {
	return !d.Before(r.Start) && d.Before(r.End.AddDays(1))
}

// Days is the number of calendar days covered.
func (r Range) Days() int { return r.Start.DaysUntil(r.End) + 1 }

func (r Range) String() string { return r.Start.String() + ".." + r.End.String() }

// MonthRange covers the calendar month containing d.
func MonthRange(d core.Date) Range {
	start := d.StartOfMonth()
	return Range{Start: start, End: core.NewDate(start.Year(), start.Month()+1, 0)}
}

// LastMonthRange covers the calendar month before the one containing d.
func LastMonthRange(d core.Date) Range {
	start := d.StartOfMonth()
	return Range{Start: core.NewDate(start.Year(), start.Month()-1, 1), End: start.AddDays(-1)}
}

// TrailingDays covers n days ending on d, so TrailingDays(d, 7) is d-6..d.
func TrailingDays(d core.Date, n int) Range {
	if n < 1 {
		n = 1
	}
	return Range{Start: d.AddDays(-(n - 1)), End: d}
}

// Range presets, as offered next to the explicit from/to pickers.
const (
	PresetMonth     = "month"
	PresetLastMonth = "lastMonth"
	Preset7Days     = "7d"
	Preset30Days    = "30d"
)

// PresetRange resolves a preset name relative to today. The empty name is
// the current month.
func PresetRange(preset string, today core.Date) (Range, error) {
	switch preset {
	case "", PresetMonth:
		return MonthRange(today), nil
	case PresetLastMonth:
		return LastMonthRange(today), nil
	case Preset7Days:
		return TrailingDays(today, 7), nil
	case Preset30Days:
		return TrailingDays(today, 30), nil
	}
	return Range{}, fmt.Errorf("%w: unknown preset %q", core.ErrInvalidRange, preset)
}

// KindAll is the wildcard accepted by ParseFilterKind.
const KindAll = "all"

// Filter narrows a range query. The zero Filter matches everything.
type Filter struct {
	Kind core.Kind // empty means any kind
	Text string    // case-insensitive substring
}

// ParseFilterKind accepts "", "all" or a transaction kind.
func ParseFilterKind(s string) (core.Kind, error) {
	if s == "" || s == KindAll {
		return "", nil
	}
	return core.ParseKind(s)
}

// Query returns the transactions of txs dated inside r that match f, keeping
// the order of txs.
func Query(txs []core.Transaction, r Range, f Filter) []core.Transaction {
	needle := strings.ToLower(strings.TrimSpace(f.Text))
	out := make([]core.Transaction, 0)
	for _, t := range txs {
		if !r.Contains(t.Date) {
			continue
		}
		if f.Kind != "" && t.Kind() != f.Kind {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(t.Haystack()), needle) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// NewestFirst returns a reversed copy, the order lists are shown in.
func NewestFirst(txs []core.Transaction) []core.Transaction {
	out := slices.Clone(txs)
	slices.Reverse(out)
	return out
}
