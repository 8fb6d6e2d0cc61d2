package http

import (
	"fmt"
	"io"
	"net/http"

	"buget/internal/core"
	"buget/internal/ledger"
	"buget/internal/log"
)

type balanceView struct {
	Name    string `json:"name"`
	Balance int64  `json:"balanceBani"`
	Display string `json:"display"`
}

func balanceViews(in []core.BudgetBalance) []balanceView {
	out := make([]balanceView, len(in))
	for i, b := range in {
		out[i] = balanceView{Name: b.Name, Balance: b.Balance, Display: core.FormatBani(b.Balance)}
	}
	return out
}

type transactionList struct {
	Range        ledger.Range       `json:"range"`
	Type         string             `json:"type"`
	Query        string             `json:"q,omitempty"`
	Count        int                `json:"count"`
	Totals       core.Totals        `json:"totals"`
	Transactions []core.Transaction `json:"transactions"`
}

type backupStatusView struct {
	LastBackup core.Date           `json:"lastBackupISO"`
	Never      bool                `json:"never"`
	Days       int                 `json:"days"`
	Status     ledger.BackupStatus `json:"status"`
	Remind     bool                `json:"remind"`
}

type importSummary struct {
	Budgets      int       `json:"budgets"`
	Categories   int       `json:"categories"`
	Transactions int       `json:"transactions"`
	LastBackup   core.Date `json:"lastBackupISO"`
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	status, _ := StatusForError(err)
	if status >= http.StatusInternalServerError {
		log.LogError(r.Context(), "Request failed", err, op, nil)
	} else {
		log.FromContext(r.Context()).DebugContext(r.Context(), "Request rejected", log.FieldOperation, op, log.FieldError, err)
	}
	ErrorFromDomain(err).Write(w)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	NewResponse().JSON(s.svc.Dashboard(s.today())).Write(w)
}

func (s *Server) handleBalances(w http.ResponseWriter, r *http.Request) {
	NewResponse().JSON(balanceViews(s.svc.Balances())).Write(w)
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rng, err := ParseRangeQuery(q, s.today())
	if err != nil {
		s.fail(w, r, log.OpList, err)
		return
	}
	filter, err := ParseFilterQuery(q)
	if err != nil {
		s.fail(w, r, log.OpList, err)
		return
	}

	txs := s.svc.List(rng, filter)
	kind := string(filter.Kind)
	if kind == "" {
		kind = ledger.KindAll
	}
	NewResponse().JSON(transactionList{
		Range:        rng,
		Type:         kind,
		Query:        filter.Text,
		Count:        len(txs),
		Totals:       ledger.ComputeTotals(txs),
		Transactions: txs,
	}).Write(w)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		s.fail(w, r, log.OpParse, err)
		return
	}
	draft, err := ParseDraft(p, s.today())
	if err != nil {
		s.fail(w, r, log.OpParse, err)
		return
	}

	tx, err := s.svc.AddTransaction(r.Context(), draft)
	if err != nil {
		s.fail(w, r, log.OpCreate, err)
		return
	}
	NewResponse().
		Status(http.StatusCreated).
		Header("Location", "/api/transactions?from="+tx.Date.String()+"&to="+tx.Date.String()).
		JSON(tx).
		Write(w)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	rng, err := ParseRangeQuery(r.URL.Query(), s.today())
	if err != nil {
		s.fail(w, r, log.OpRead, err)
		return
	}
	NewResponse().JSON(s.svc.Report(rng, s.today())).Write(w)
}

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	NewResponse().JSON(s.svc.Budgets()).Write(w)
}

func (s *Server) handleCreateBudget(w http.ResponseWriter, r *http.Request) {
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		s.fail(w, r, log.OpParse, err)
		return
	}
	if err := s.svc.AddBudget(r.Context(), p.Get("name")); err != nil {
		s.fail(w, r, log.OpCreate, err)
		return
	}
	NewResponse().Status(http.StatusCreated).JSON(s.svc.Budgets()).Write(w)
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	NewResponse().JSON(s.svc.Categories()).Write(w)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		s.fail(w, r, log.OpParse, err)
		return
	}
	if _, err := s.svc.RegisterCategory(r.Context(), p.Get("name")); err != nil {
		s.fail(w, r, log.OpCreate, err)
		return
	}
	NewResponse().Status(http.StatusCreated).JSON(s.svc.Categories()).Write(w)
}

// handleExport downloads the backup and stamps today as the last backup.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	body, err := s.svc.Export(r.Context(), s.today())
	if err != nil {
		s.fail(w, r, log.OpExport, err)
		return
	}
	NewResponse().
		Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", ledger.BackupFileName)).
		Raw(body).
		Write(w)
}

// handleImport replaces the ledger with the uploaded backup document.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.fail(w, r, log.OpImport, fmt.Errorf("%w: %w", core.ErrInvalidImportShape, err))
		return
	}
	st, err := s.svc.Import(r.Context(), raw)
	if err != nil {
		s.fail(w, r, log.OpImport, err)
		return
	}
	NewResponse().JSON(importSummary{
		Budgets:      len(st.Budgets),
		Categories:   len(st.Categories),
		Transactions: len(st.Transactions),
		LastBackup:   st.LastBackup,
	}).Write(w)
}

func (s *Server) handleBackupStatus(w http.ResponseWriter, r *http.Request) {
	today := s.today()
	age := s.svc.BackupStatus(today)
	view := backupStatusView{
		Never:  age.Never,
		Days:   age.Days,
		Status: age.Status(),
		Remind: age.NeedsReminder(),
	}
	if !age.Never {
		view.LastBackup = s.svc.LastBackup()
	}
	NewResponse().JSON(view).Write(w)
}
