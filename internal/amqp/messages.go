package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"buget/internal/core"
)

// EventType names what happened to the ledger.
type EventType string

const (
	EventTransactionAdded EventType = "transaction_added"
	EventBackupRecorded   EventType = "backup_recorded"
	EventStateImported    EventType = "state_imported"
)

// LedgerEvent is published after a ledger mutation has been persisted.
// Transaction is set for transaction_added, Date for backup_recorded and
// Count (number of imported transactions) for state_imported.
type LedgerEvent struct {
	Type        EventType         `json:"type"`
	Transaction *core.Transaction `json:"transaction,omitempty"`
	Date        core.Date         `json:"date"`
	Count       int               `json:"count,omitempty"`
	Timestamp   time.Time         `json:"timestamp"`
}

func NewTransactionAdded(tx core.Transaction) *LedgerEvent {
	return &LedgerEvent{Type: EventTransactionAdded, Transaction: &tx, Date: tx.Date, Timestamp: time.Now()}
}

func NewBackupRecorded(day core.Date) *LedgerEvent {
	return &LedgerEvent{Type: EventBackupRecorded, Date: day, Timestamp: time.Now()}
}

func NewStateImported(count int) *LedgerEvent {
	return &LedgerEvent{Type: EventStateImported, Count: count, Timestamp: time.Now()}
}

// ToJSON converts the event to JSON bytes
func (m *LedgerEvent) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// LedgerEventFromJSON decodes and checks an event body.
func LedgerEventFromJSON(data []byte) (*LedgerEvent, error) {
	var msg LedgerEvent
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	switch msg.Type {
	case EventTransactionAdded:
		if msg.Transaction == nil {
			return nil, fmt.Errorf("%s event without transaction", msg.Type)
		}
	case EventBackupRecorded, EventStateImported:
	default:
		return nil, fmt.Errorf("unknown event type %q", msg.Type)
	}
	return &msg, nil
}
