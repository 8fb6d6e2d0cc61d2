// This file builds JSON responses and maps domain errors to status codes.

package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"buget/internal/core"
)

// ResponseBuilder provides a fluent API for JSON responses.
type ResponseBuilder struct {
	statusCode int
	headers    map[string]string
	payload    any
	raw        []byte
}

// NewResponse creates a builder with a 200 status.
func NewResponse() *ResponseBuilder {
	return &ResponseBuilder{statusCode: http.StatusOK, headers: map[string]string{}}
}

func (b *ResponseBuilder) Status(code int) *ResponseBuilder {
	b.statusCode = code
	return b
}

func (b *ResponseBuilder) Header(name, value string) *ResponseBuilder {
	b.headers[name] = value
	return b
}

// JSON sets a value to be encoded as the body.
func (b *ResponseBuilder) JSON(v any) *ResponseBuilder {
	b.payload = v
	b.raw = nil
	return b
}

// Raw sets an already encoded JSON body.
func (b *ResponseBuilder) Raw(body []byte) *ResponseBuilder {
	b.raw = body
	b.payload = nil
	return b
}

// Write sends the response.
func (b *ResponseBuilder) Write(w http.ResponseWriter) {
	body := b.raw
	if b.payload != nil {
		var err error
		body, err = json.Marshal(b.payload)
		if err != nil {
			http.Error(w, `{"error":"encode response"}`, http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	for name, value := range b.headers {
		w.Header().Set(name, value)
	}
	w.WriteHeader(b.statusCode)
	if len(body) > 0 {
		_, _ = w.Write(body)
	}
}

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// ErrorResponse creates an error response with a message and machine code.
func ErrorResponse(statusCode int, code, message string) *ResponseBuilder {
	return NewResponse().Status(statusCode).JSON(ErrorBody{Error: message, Code: code})
}

type errorMapping struct {
	target error
	status int
	code   string
}

// Order matters: a transfer naming an unknown budget wraps both
// ErrInvalidTransfer and ErrUnknownBudget and reports the former.
var errorMappings = []errorMapping{
	{core.ErrInvalidImportShape, http.StatusBadRequest, "invalid_import"},
	{core.ErrInvalidRange, http.StatusBadRequest, "invalid_range"},
	{core.ErrInvalidKind, http.StatusBadRequest, "invalid_type"},
	{core.ErrInvalidInput, http.StatusBadRequest, "invalid_input"},
	{core.ErrInvalidAmount, http.StatusUnprocessableEntity, "invalid_amount"},
	{core.ErrMissingDate, http.StatusUnprocessableEntity, "missing_date"},
	{core.ErrMissingCategory, http.StatusUnprocessableEntity, "missing_category"},
	{core.ErrMissingDescription, http.StatusUnprocessableEntity, "missing_description"},
	{core.ErrInvalidTransfer, http.StatusUnprocessableEntity, "invalid_transfer"},
	{core.ErrUnknownBudget, http.StatusUnprocessableEntity, "unknown_budget"},
}

// StatusForError maps an error to its HTTP status and code. Anything that
// is not a domain validation error is a 500.
func StatusForError(err error) (int, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.code
		}
	}
	return http.StatusInternalServerError, "internal"
}

// ErrorFromDomain builds the response for err. Internal errors are not
// echoed to the client.
func ErrorFromDomain(err error) *ResponseBuilder {
	status, code := StatusForError(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	return ErrorResponse(status, code, msg)
}
