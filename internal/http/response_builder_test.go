package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"buget/internal/core"
)

func TestResponseBuilder_JSON(t *testing.T) {
	rr := httptest.NewRecorder()
	NewResponse().Status(http.StatusCreated).Header("X-Test", "1").JSON(map[string]int{"n": 1}).Write(rr)

	if rr.Code != http.StatusCreated {
		t.Errorf("status = %d", rr.Code)
	}
	if rr.Header().Get("Content-Type") != "application/json; charset=utf-8" {
		t.Errorf("content type = %q", rr.Header().Get("Content-Type"))
	}
	if rr.Header().Get("X-Test") != "1" {
		t.Error("custom header missing")
	}
	if rr.Body.String() != `{"n":1}` {
		t.Errorf("body = %q", rr.Body.String())
	}
}

func TestResponseBuilder_Raw(t *testing.T) {
	rr := httptest.NewRecorder()
	NewResponse().Raw([]byte(`{"raw":true}`)).Write(rr)
	if rr.Body.String() != `{"raw":true}` {
		t.Errorf("body = %q", rr.Body.String())
	}
}

func TestStatusForError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{core.ErrInvalidAmount, http.StatusUnprocessableEntity, "invalid_amount"},
		{fmt.Errorf("x: %w", core.ErrMissingCategory), http.StatusUnprocessableEntity, "missing_category"},
		{core.ErrMissingDescription, http.StatusUnprocessableEntity, "missing_description"},
		{fmt.Errorf("%w: %w", core.ErrInvalidTransfer, core.ErrUnknownBudget), http.StatusUnprocessableEntity, "invalid_transfer"},
		{core.ErrUnknownBudget, http.StatusUnprocessableEntity, "unknown_budget"},
		{core.ErrInvalidImportShape, http.StatusBadRequest, "invalid_import"},
		{core.ErrInvalidRange, http.StatusBadRequest, "invalid_range"},
		{core.ErrInvalidKind, http.StatusBadRequest, "invalid_type"},
		{core.ErrInvalidInput, http.StatusBadRequest, "invalid_input"},
		{errors.New("disk full"), http.StatusInternalServerError, "internal"},
	}
	for _, tt := range tests {
		status, code := StatusForError(tt.err)
		if status != tt.status || code != tt.code {
			t.Errorf("StatusForError(%v) = %d %s, want %d %s", tt.err, status, code, tt.status, tt.code)
		}
	}
}

func TestErrorFromDomain_HidesInternalErrors(t *testing.T) {
	rr := httptest.NewRecorder()
	ErrorFromDomain(errors.New("open /var/lib/secret.db: permission denied")).Write(rr)

	var body ErrorBody
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Error != "internal error" || body.Code != "internal" {
		t.Errorf("unexpected body %+v", body)
	}

	rr = httptest.NewRecorder()
	ErrorFromDomain(core.ErrMissingCategory).Write(rr)
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Error != core.ErrMissingCategory.Error() {
		t.Errorf("validation message should be echoed, got %q", body.Error)
	}
}
