package memory

import (
	"context"
	"testing"
	"time"

	"buget/internal/core"
)

func TestJournalAppend(t *testing.T) {
	j := New()
	tx := core.Transaction{
		ID:      "a",
		Date:    core.NewDate(2024, time.March, 1),
		Amount:  500000,
		Payload: core.Income{ToBudget: "Nealocat"},
	}

	ref, err := j.AppendTransaction(context.Background(), tx)
	if err != nil || ref != "mem:1" {
		t.Fatalf("unexpected append: ref=%q err=%v", ref, err)
	}

	// redelivery is a no-op
	ref, err = j.AppendTransaction(context.Background(), tx)
	if err != nil || ref != "mem:1" {
		t.Fatalf("unexpected second append: ref=%q err=%v", ref, err)
	}

	rows := j.Rows()
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0][1] != "Venit" || rows[0][2] != "5000.00" || rows[0][3] != "În: Nealocat" {
		t.Fatalf("unexpected row %v", rows[0])
	}
}

func TestJournalRejectsInvalid(t *testing.T) {
	j := New()
	_, err := j.AppendTransaction(context.Background(), core.Transaction{ID: "x", Date: core.NewDate(2024, 1, 1), Amount: 10, Payload: core.Expense{Desc: "fără categorie"}})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if len(j.Rows()) != 0 {
		t.Fatal("invalid transaction stored")
	}
}
