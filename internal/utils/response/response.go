// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Every handler sends JSON back to the client, except the plain-text
// report variants. Centralising the header/status/encode steps here keeps
// error shapes identical across endpoints.
package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/student-roster/internal/roster"
)

// ─────────────────────────────────────────────────────────────────────────────
// Response is the standard envelope returned for error cases:
//
//	{ "status": "error", "error": "field Name is required" }
//
// ─────────────────────────────────────────────────────────────────────────────
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// WriteJSON writes a JSON-encoded response with the given HTTP status code.
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// WriteText renders a plain-text body produced by render.
func WriteText(w http.ResponseWriter, status int, render func(io.Writer) error) error {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	return render(w)
}

// GeneralError wraps any Go error into our standard Response shape.
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// WriteError picks the status code from the error's kind:
//
//	roster.ValidationError → 400 with per-field messages
//	roster.ErrNotFound     → 404
//	anything else          → 500
//
// ─────────────────────────────────────────────────────────────────────────────
func WriteError(w http.ResponseWriter, err error) error {
	var verr *roster.ValidationError
	switch {
	case errors.As(err, &verr):
		return WriteJSON(w, http.StatusBadRequest, ValidationError(verr.Fields))
	case errors.Is(err, roster.ErrNotFound):
		return WriteJSON(w, http.StatusNotFound, GeneralError(err))
	default:
		return WriteJSON(w, http.StatusInternalServerError, GeneralError(err))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// ValidationError converts validator field errors into one readable line:
//
//	{ "status": "error", "error": "field Name is required, field Height must be greater than 0" }
//
// ─────────────────────────────────────────────────────────────────────────────
func ValidationError(errs validator.ValidationErrors) Response {
	var errMessages []string

	for _, e := range errs {
		switch e.ActualTag() {
		case "required":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is required", e.Field()))
		case "oneof":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must be one of: %s", e.Field(), strings.ReplaceAll(e.Param(), " ", ", ")))
		case "gt":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must be greater than %s", e.Field(), e.Param()))
		default:
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is invalid", e.Field()))
		}
	}

	return Response{
		Status: StatusError,
		Error:  strings.Join(errMessages, ", "),
	}
}
