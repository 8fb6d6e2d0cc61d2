package worker

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"buget/internal/amqp"
	"buget/internal/core"
	"buget/internal/log"
	"buget/internal/sheets/memory"
)

type failingJournal struct{}

func (failingJournal) AppendTransaction(context.Context, core.Transaction) (string, error) {
	return "", errors.New("quota exceeded")
}

func testLogger(buf *bytes.Buffer) *log.Logger {
	return log.New(log.Config{Output: buf})
}

func sampleTx() core.Transaction {
	return core.Transaction{
		ID:      "tx-1",
		Date:    core.NewDate(2024, time.March, 2),
		Amount:  12000,
		Payload: core.Expense{Category: "Transport", Desc: "Benzină"},
	}
}

func TestJournalWorker_TransactionAdded(t *testing.T) {
	j := memory.New()
	var buf bytes.Buffer
	w := NewJournalWorker(j, testLogger(&buf))

	if err := w.HandleEvent(context.Background(), amqp.NewTransactionAdded(sampleTx())); err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}
	rows := j.Rows()
	if len(rows) != 1 || rows[0][7] != "tx-1" {
		t.Fatalf("unexpected journal %v", rows)
	}
	if !strings.Contains(buf.String(), "component=worker") || !strings.Contains(buf.String(), "tx_id=tx-1") {
		t.Errorf("unexpected log output %q", buf.String())
	}
}

func TestJournalWorker_JournalFailureIsReturned(t *testing.T) {
	var buf bytes.Buffer
	w := NewJournalWorker(failingJournal{}, testLogger(&buf))

	err := w.HandleEvent(context.Background(), amqp.NewTransactionAdded(sampleTx()))
	if err == nil || !strings.Contains(err.Error(), "quota exceeded") {
		t.Fatalf("expected journal error, got %v", err)
	}
}

func TestJournalWorker_OtherEvents(t *testing.T) {
	j := memory.New()
	var buf bytes.Buffer
	w := NewJournalWorker(j, testLogger(&buf))

	events := []*amqp.LedgerEvent{
		amqp.NewBackupRecorded(core.NewDate(2024, time.March, 10)),
		amqp.NewStateImported(4),
		{Type: "mystery"},
	}
	for _, ev := range events {
		if err := w.HandleEvent(context.Background(), ev); err != nil {
			t.Fatalf("HandleEvent(%s): %v", ev.Type, err)
		}
	}
	if len(j.Rows()) != 0 {
		t.Fatal("only transaction events touch the journal")
	}
	if !strings.Contains(buf.String(), "count=4") {
		t.Errorf("import not logged: %q", buf.String())
	}
}
