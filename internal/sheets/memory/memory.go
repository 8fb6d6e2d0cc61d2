// Package memory is an in-process journal used for tests and local runs.
package memory

import (
	"context"
	"fmt"
	"sync"

	"buget/internal/core"
	ports "buget/internal/sheets"
)

// Journal keeps appended rows in memory. Transactions already present are
// not appended twice, so redelivered events are harmless.
type Journal struct {
	mu   sync.Mutex
	rows [][]any
	refs map[string]string
}

var _ ports.JournalWriter = (*Journal)(nil)

func New() *Journal {
	return &Journal{refs: map[string]string{}}
}

// AppendTransaction stores the row and returns a synthetic row reference.
func (j *Journal) AppendTransaction(_ context.Context, tx core.Transaction) (string, error) {
	if err := tx.Validate(); err != nil {
		return "", err
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	if ref, ok := j.refs[tx.ID]; ok {
		return ref, nil
	}
	j.rows = append(j.rows, ports.Row(tx))
	ref := fmt.Sprintf("mem:%d", len(j.rows))
	j.refs[tx.ID] = ref
	return ref, nil
}

// Rows returns a copy of the journal.
func (j *Journal) Rows() [][]any {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([][]any, len(j.rows))
	for i, r := range j.rows {
		out[i] = append([]any(nil), r...)
	}
	return out
}
