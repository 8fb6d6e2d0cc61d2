package core

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   string
		want Date
		ok   bool
	}{
		{"2024-03-01", NewDate(2024, time.March, 1), true},
		{"2024-03-01T10:30", NewDate(2024, time.March, 1), true},
		{"2024-02-29", NewDate(2024, time.February, 29), true},
		{"2023-02-29", Date{}, false},
		{"01/03/2024", Date{}, false},
		{"", Date{}, false},
	}
	for _, tc := range cases {
		got, err := ParseDate(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("%q expected %v, got %v (err=%v)", tc.in, tc.want, got, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
	}
}

func TestDateArithmetic(t *testing.T) {
	d := MustParseDate("2024-01-31")
	if got := d.AddDays(1).String(); got != "2024-02-01" {
		t.Fatalf("AddDays(1) = %s", got)
	}
	if got := NewDate(2024, time.March, 0).String(); got != "2024-02-29" {
		t.Fatalf("normalization = %s", got)
	}
	if got := MustParseDate("2024-01-01").DaysUntil(MustParseDate("2024-01-08")); got != 7 {
		t.Fatalf("DaysUntil = %d", got)
	}
	if got := MustParseDate("2024-03-31").DaysUntil(MustParseDate("2024-03-30")); got != -1 {
		t.Fatalf("DaysUntil backwards = %d", got)
	}
	if got := MustParseDate("2024-03-17").StartOfMonth().String(); got != "2024-03-01" {
		t.Fatalf("StartOfMonth = %s", got)
	}
}

func TestDateJSON(t *testing.T) {
	var v struct {
		D Date `json:"d"`
		N Date `json:"n"`
	}
	if err := json.Unmarshal([]byte(`{"d":"2024-03-01","n":null}`), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v.D.String() != "2024-03-01" || !v.N.IsZero() {
		t.Fatalf("unexpected %+v", v)
	}
	out, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"d":"2024-03-01","n":null}` {
		t.Fatalf("unexpected json %s", out)
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		if got, err := ParseKind(string(k)); err != nil || got != k {
			t.Fatalf("ParseKind(%q) = %q, %v", k, got, err)
		}
	}
	if _, err := ParseKind("refund"); !errors.Is(err, ErrInvalidKind) {
		t.Fatalf("expected ErrInvalidKind, got %v", err)
	}
}

func TestTransactionValidate(t *testing.T) {
	day := NewDate(2025, time.January, 1)
	good := []Transaction{
		{Date: day, Amount: 100, Payload: Income{ToBudget: "Nealocat"}},
		{Date: day, Amount: 100, Payload: Expense{Category: "Transport", Desc: "bilet"}},
		{Date: day, Amount: 100, Payload: Transfer{FromBudget: "Economii", ToBudget: "Bancă"}},
	}
	for i, tx := range good {
		if err := tx.Validate(); err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
	}

	bads := []struct {
		tx   Transaction
		want error
	}{
		{Transaction{Amount: 1, Payload: Income{ToBudget: "x"}}, ErrMissingDate},
		{Transaction{Date: day, Amount: 0, Payload: Income{ToBudget: "x"}}, ErrInvalidAmount},
		{Transaction{Date: day, Amount: 1}, ErrInvalidKind},
		{Transaction{Date: day, Amount: 1, Payload: Expense{Desc: "a"}}, ErrMissingCategory},
		{Transaction{Date: day, Amount: 1, Payload: Expense{Category: "c", Desc: "  "}}, ErrMissingDescription},
		{Transaction{Date: day, Amount: 1, Payload: Transfer{FromBudget: "a", ToBudget: "a"}}, ErrInvalidTransfer},
	}
	for i, tc := range bads {
		if err := tc.tx.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("case %d expected %v, got %v", i, tc.want, err)
		}
	}
}

func TestTransactionHaystackAndFlow(t *testing.T) {
	exp := Transaction{Note: "", Payload: Expense{Category: "Piață", Desc: "roșii"}}
	if got := exp.Haystack(); got != "Piață roșii  Cheltuieli " {
		t.Fatalf("haystack = %q", got)
	}
	if got := exp.Flow(); got != "Din: Cheltuieli" {
		t.Fatalf("flow = %q", got)
	}
	tr := Transaction{Payload: Transfer{FromBudget: "Economii", ToBudget: "Bancă"}}
	if got := tr.Flow(); got != "Economii → Bancă" {
		t.Fatalf("flow = %q", got)
	}
}
