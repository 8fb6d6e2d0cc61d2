// Package storage persists the ledger snapshot. The ledger is saved and
// loaded as one opaque JSON document; adapters never look inside it.
package storage

import (
	"context"
	"errors"
)

// SnapshotKey identifies the ledger document. Unchanged since the first
// release so existing databases and files stay readable.
const SnapshotKey = "buget_local_v2"

// ErrNotFound is returned by Load when nothing was saved yet.
var ErrNotFound = errors.New("snapshot not found")

// SnapshotStore is the persistence port used by the ledger service.
type SnapshotStore interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, body []byte) error
}
