package ledger

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buget/internal/core"
)

func sequentialIDs() Option {
	n := 0
	return WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("tx-%d", n)
	})
}

func newTestStore() *Store {
	return NewStore(DefaultState(), sequentialIDs())
}

func d(s string) core.Date { return core.MustParseDate(s) }

func TestRegisterCategory(t *testing.T) {
	s := newTestStore()

	name, err := s.RegisterCategory("  transport ")
	require.NoError(t, err)
	assert.Equal(t, "transport", name)

	_, err = s.RegisterCategory("transport")
	require.NoError(t, err)

	count := 0
	for _, c := range s.Categories() {
		if c == "transport" {
			count++
		}
	}
	assert.Equal(t, 1, count, "registering twice must keep a single entry")
	assert.Contains(t, s.Categories(), "Transport", "matching is case-sensitive")

	_, err = s.RegisterCategory("   ")
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestRegisterCategoryKeepsRomanianOrder(t *testing.T) {
	s := NewStore(State{Categories: []string{"Cadouri", "Transport"}})

	_, err := s.RegisterCategory("Țigări")
	require.NoError(t, err)
	_, err = s.RegisterCategory("Sănătate")
	require.NoError(t, err)
	_, err = s.RegisterCategory("Salariu")
	require.NoError(t, err)

	assert.Equal(t, []string{"Cadouri", "Salariu", "Sănătate", "Transport", "Țigări"}, s.Categories())
}

func TestAddBudget(t *testing.T) {
	s := newTestStore()
	require.NoError(t, s.AddBudget("Vacanță"))
	require.NoError(t, s.AddBudget("Vacanță"))
	assert.Equal(t, []string{"Nealocat", "Cheltuieli", "Economii", "Bancă", "Vacanță"}, s.Budgets())
	assert.ErrorIs(t, s.AddBudget(""), core.ErrInvalidInput)
}

func TestAddTransactionByKind(t *testing.T) {
	s := newTestStore()

	inc, err := s.AddTransaction(core.Draft{Kind: core.KindIncome, Date: d("2024-03-01"), Amount: 10000, ToBudget: "Nealocat", Note: " salariu "})
	require.NoError(t, err)
	assert.Equal(t, "tx-1", inc.ID)
	assert.Equal(t, core.Income{ToBudget: "Nealocat"}, inc.Payload)
	assert.Equal(t, "salariu", inc.Note)

	exp, err := s.AddTransaction(core.Draft{Kind: core.KindExpense, Date: d("2024-03-02"), Amount: 3000, Category: "Vin", Desc: "sticlă"})
	require.NoError(t, err)
	assert.Equal(t, core.Expense{Category: "Vin", Desc: "sticlă"}, exp.Payload)
	assert.Contains(t, s.Categories(), "Vin", "expense registers its category")

	tr, err := s.AddTransaction(core.Draft{Kind: core.KindTransfer, Date: d("2024-03-03"), Amount: 500, FromBudget: "Economii", ToBudget: "Bancă"})
	require.NoError(t, err)
	assert.Equal(t, core.Transfer{FromBudget: "Economii", ToBudget: "Bancă"}, tr.Payload)

	assert.Len(t, s.Transactions(), 3)
}

func TestAddTransactionRejectsWithoutMutation(t *testing.T) {
	cases := []struct {
		name  string
		draft core.Draft
		want  error
	}{
		{"transfer to itself", core.Draft{Kind: core.KindTransfer, Date: d("2024-03-01"), Amount: 100, FromBudget: "Economii", ToBudget: "Economii"}, core.ErrInvalidTransfer},
		{"transfer unknown budget", core.Draft{Kind: core.KindTransfer, Date: d("2024-03-01"), Amount: 100, FromBudget: "Economii", ToBudget: "Lună"}, core.ErrInvalidTransfer},
		{"expense without desc", core.Draft{Kind: core.KindExpense, Date: d("2024-03-01"), Amount: 100, Category: "Nou", Desc: "  "}, core.ErrMissingDescription},
		{"expense without category", core.Draft{Kind: core.KindExpense, Date: d("2024-03-01"), Amount: 100, Desc: "pâine"}, core.ErrMissingCategory},
		{"income unknown budget", core.Draft{Kind: core.KindIncome, Date: d("2024-03-01"), Amount: 100, ToBudget: "Nicăieri"}, core.ErrUnknownBudget},
		{"zero amount", core.Draft{Kind: core.KindIncome, Date: d("2024-03-01"), Amount: 0, ToBudget: "Nealocat"}, core.ErrInvalidAmount},
		{"missing date", core.Draft{Kind: core.KindIncome, Amount: 100, ToBudget: "Nealocat"}, core.ErrMissingDate},
		{"unknown kind", core.Draft{Kind: "refund", Date: d("2024-03-01"), Amount: 100}, core.ErrInvalidKind},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestStore()
			_, err := s.AddTransaction(core.Draft{Kind: core.KindIncome, Date: d("2024-02-01"), Amount: 1, ToBudget: "Nealocat"})
			require.NoError(t, err)
			before := s.Snapshot()

			_, err = s.AddTransaction(tc.draft)

			assert.ErrorIs(t, err, tc.want)
			assert.Equal(t, before, s.Snapshot(), "a rejected transaction must not change the ledger")
		})
	}
}

func TestAddTransactionKeepsDateOrder(t *testing.T) {
	s := newTestStore()
	add := func(date string, amount int64) {
		t.Helper()
		_, err := s.AddTransaction(core.Draft{Kind: core.KindIncome, Date: d(date), Amount: amount, ToBudget: "Nealocat"})
		require.NoError(t, err)
	}
	add("2024-03-05", 1)
	add("2024-03-01", 2)
	add("2024-03-05", 3)
	add("2024-03-03", 4)
	add("2024-03-01", 5)

	var got []int64
	for _, tx := range s.Transactions() {
		got = append(got, tx.Amount)
	}
	assert.Equal(t, []int64{2, 5, 4, 1, 3}, got, "ascending by date, ties in insertion order")
}

func TestNewStoreSortsAndAssignsIDs(t *testing.T) {
	st := DefaultState()
	st.Transactions = []core.Transaction{
		{ID: "b", Date: d("2024-03-02"), Amount: 1, Payload: core.Income{ToBudget: "Nealocat"}},
		{Date: d("2024-03-01"), Amount: 2, Payload: core.Income{ToBudget: "Nealocat"}},
	}
	s := NewStore(st, sequentialIDs())

	txs := s.Transactions()
	require.Len(t, txs, 2)
	assert.Equal(t, "tx-1", txs[0].ID)
	assert.Equal(t, "b", txs[1].ID)
	assert.Equal(t, "", st.Transactions[1].ID, "the input state is not modified")
}

func TestSnapshotIsACopy(t *testing.T) {
	s := newTestStore()
	snap := s.Snapshot()
	snap.Budgets[0] = "changed"
	snap.Categories = append(snap.Categories, "x")
	assert.Equal(t, "Nealocat", s.Budgets()[0])
	assert.NotContains(t, s.Categories(), "x")
}

func TestRecordBackupAndReplace(t *testing.T) {
	s := newTestStore()
	assert.True(t, s.LastBackup().IsZero())
	s.RecordBackup(d("2024-05-01"))
	assert.Equal(t, d("2024-05-01"), s.LastBackup())

	s.Replace(State{Budgets: []string{"A"}})
	assert.Equal(t, []string{"A"}, s.Budgets())
	assert.Empty(t, s.Categories())
	assert.Empty(t, s.Transactions())
	assert.True(t, s.LastBackup().IsZero())
}
