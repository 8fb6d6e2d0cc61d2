package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buget/internal/core"
)

type harness struct {
	t    *testing.T
	file string
}

func newHarness(t *testing.T) *harness {
	return &harness{t: t, file: filepath.Join(t.TempDir(), "buget.json")}
}

func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--backend", "file", "--file", h.file, "--today", "2024-03-15"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run(args...)
	require.NoError(h.t, err, strings.Join(args, " "))
	return out
}

func TestAddAndBalances(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("add", "income", "--amount", "3000", "--to", "Nealocat", "--date", "2024-03-01")
	assert.Contains(t, out, "Venit")
	assert.Contains(t, out, core.FormatBani(300000))

	h.mustRun("add", "transfer", "--amount", "500", "--from", "Nealocat", "--to", "Economii")
	h.mustRun("add", "expense", "--amount", "45,50", "--category", "Piață", "--desc", "legume")

	out = h.mustRun("balances")
	assert.Contains(t, out, "Nealocat")
	assert.Contains(t, out, core.FormatBani(250000))
	assert.Contains(t, out, core.FormatBani(50000))
	assert.Contains(t, out, core.FormatBani(-4550))
}

func TestAddRejectsInvalidInput(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("add", "expense", "--amount", "10", "--desc", "fără categorie")
	assert.ErrorIs(t, err, core.ErrMissingCategory)

	_, err = h.run("add", "income", "--amount=-5")
	assert.ErrorIs(t, err, core.ErrInvalidAmount)

	_, err = h.run("add", "refund", "--amount", "5")
	assert.ErrorIs(t, err, core.ErrInvalidKind)

	_, err = os.Stat(h.file)
	assert.True(t, os.IsNotExist(err), "nothing should have been persisted")
}

func TestListAndReport(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "income", "--amount", "3000", "--date", "2024-03-01")
	h.mustRun("add", "expense", "--amount", "120", "--category", "Transport", "--desc", "abonament", "--date", "2024-02-20")
	h.mustRun("add", "expense", "--amount", "45,50", "--category", "Piață", "--desc", "legume", "--date", "2024-03-10")

	out := h.mustRun("list")
	assert.Contains(t, out, "legume")
	assert.NotContains(t, out, "abonament")
	assert.Less(t, strings.Index(out, "2024-03-10"), strings.Index(out, "2024-03-01"), "newest first")

	out = h.mustRun("list", "--preset", "lastMonth", "--type", "expense")
	assert.Contains(t, out, "abonament")

	out = h.mustRun("list", "--from", "2024-01-01", "--to", "2024-01-31")
	assert.Contains(t, out, "No transactions")

	_, err := h.run("list", "--from", "2024-03-31", "--to", "2024-03-01")
	assert.ErrorIs(t, err, core.ErrInvalidRange)

	out = h.mustRun("report", "--from", "2024-02-01", "--to", "2024-03-31")
	assert.Contains(t, out, "2024-02-01..2024-03-31")
	assert.Less(t, strings.Index(out, "Transport"), strings.Index(out, "Piață"), "categories ranked by amount")
}

func TestBudgetsAndCategories(t *testing.T) {
	h := newHarness(t)
	h.mustRun("budgets", "add", "Vacanță")
	h.mustRun("categories", "add", "Chirie")

	assert.Contains(t, h.mustRun("budgets"), "Vacanță")
	assert.Contains(t, h.mustRun("categories"), "Chirie")
	h.mustRun("add", "income", "--amount", "100", "--to", "Vacanță")
}

func TestExportImportAndBackupStatus(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "income", "--amount", "3000")

	assert.Contains(t, h.mustRun("backup-status"), "No backup yet")

	backup := filepath.Join(t.TempDir(), "backup.json")
	out := h.mustRun("export", "-o", backup)
	assert.Contains(t, out, backup)
	assert.Contains(t, h.mustRun("backup-status"), "0 days ago")

	other := newHarness(t)
	out = other.mustRun("import", backup)
	assert.Contains(t, out, "Imported 1 transactions")
	assert.Contains(t, other.mustRun("list"), core.FormatBani(300000))

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"budgets":[]}`), 0600))
	_, err := other.run("import", bad)
	assert.ErrorIs(t, err, core.ErrInvalidImportShape)
	assert.Contains(t, other.mustRun("list"), core.FormatBani(300000), "failed import leaves the ledger untouched")
}
