// Package http serves the ledger as a JSON API.
//
// This file holds the helpers that turn request data into domain input:
// transaction drafts from JSON or form bodies, and date ranges and filters
// from query strings.

package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"buget/internal/core"
	"buget/internal/ledger"
)

// maxBodyBytes bounds request bodies, backups included.
const maxBodyBytes = 10 << 20

// RequestBodyParser reads a JSON object or form-encoded body once and
// exposes its fields as trimmed strings.
type RequestBodyParser struct {
	body     []byte
	jsonData map[string]any
	formData url.Values
	parsed   bool
	err      error
}

func NewRequestBodyParser(r *http.Request) *RequestBodyParser {
	p := &RequestBodyParser{}
	p.body, p.err = io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	return p
}

// Parse decodes the body as JSON when it looks like an object, otherwise
// as form data.
func (p *RequestBodyParser) Parse() error {
	if p.parsed {
		return p.err
	}
	p.parsed = true
	if p.err != nil {
		return p.err
	}

	trimmed := strings.TrimSpace(string(p.body))
	if trimmed == "" {
		p.formData = url.Values{}
		return nil
	}
	if trimmed[0] == '{' {
		p.jsonData = make(map[string]any)
		if err := json.Unmarshal(p.body, &p.jsonData); err != nil {
			p.err = fmt.Errorf("%w: %w", core.ErrInvalidInput, err)
		}
		return p.err
	}
	p.formData, p.err = url.ParseQuery(trimmed)
	if p.err != nil {
		p.err = fmt.Errorf("%w: %w", core.ErrInvalidInput, p.err)
	}
	return p.err
}

// Get returns a field from the parsed body.
func (p *RequestBodyParser) Get(key string) string {
	if p.jsonData != nil {
		if val, ok := p.jsonData[key]; ok {
			return sanitizeInput(stringValue(val))
		}
		return ""
	}
	if p.formData != nil {
		return sanitizeInput(p.formData.Get(key))
	}
	return ""
}

func stringValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// sanitizeInput drops control characters except tab and newlines, and trims.
func sanitizeInput(s string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' && r != '\n' && r != '\r' {
			return -1
		}
		return r
	}, s))
}

// ParseDraft builds a transaction draft from the body fields type, date,
// amount, note, toBudget, fromBudget, category and desc. A missing date
// means today; amount is user text such as "12,50".
func ParseDraft(p *RequestBodyParser, today core.Date) (core.Draft, error) {
	kind, err := core.ParseKind(p.Get("type"))
	if err != nil {
		return core.Draft{}, err
	}

	date := today
	if v := p.Get("date"); v != "" {
		date, err = core.ParseDate(v)
		if err != nil {
			return core.Draft{}, fmt.Errorf("%w: date %q", core.ErrInvalidInput, v)
		}
	}

	amount, err := core.ParseAmount(p.Get("amount"))
	if err != nil {
		return core.Draft{}, err
	}

	return core.Draft{
		Kind:       kind,
		Date:       date,
		Amount:     amount,
		Note:       p.Get("note"),
		ToBudget:   p.Get("toBudget"),
		FromBudget: p.Get("fromBudget"),
		Category:   p.Get("category"),
		Desc:       p.Get("desc"),
	}, nil
}

// ParseRangeQuery reads from/to (ISO dates) or a preset. Without either the
// current month is used. Explicit dates win over a preset.
func ParseRangeQuery(q url.Values, today core.Date) (ledger.Range, error) {
	from, to := strings.TrimSpace(q.Get("from")), strings.TrimSpace(q.Get("to"))
	if from != "" || to != "" {
		return ledger.ParseRange(from, to)
	}
	return ledger.PresetRange(strings.TrimSpace(q.Get("preset")), today)
}

// ParseFilterQuery reads the type and q parameters.
func ParseFilterQuery(q url.Values) (ledger.Filter, error) {
	kind, err := ledger.ParseFilterKind(strings.TrimSpace(q.Get("type")))
	if err != nil {
		return ledger.Filter{}, err
	}
	return ledger.Filter{Kind: kind, Text: q.Get("q")}, nil
}
