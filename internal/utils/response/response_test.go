package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-roster/internal/roster"
	"github.com/aanand-mishra/student-roster/internal/storage/memory"
	"github.com/aanand-mishra/student-roster/internal/types"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestWriteErrorValidation(t *testing.T) {
	store := roster.New(memory.New(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	_, err := store.Add(types.Student{Name: "Anna", Gender: "x", Height: -2, ClassNumber: "5A"})
	require.Error(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, WriteError(rec, err))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode(t, rec)
	assert.Equal(t, StatusError, resp.Status)
	assert.Contains(t, resp.Error, "field Gender must be one of: Fiú, Lány")
	assert.Contains(t, resp.Error, "field Height must be greater than 0")
	assert.Contains(t, resp.Error, "field Weight is required")
}

func TestWriteErrorNotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, WriteError(rec, fmt.Errorf("roster.Delete: %w", roster.ErrNotFound)))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestWriteErrorInternal(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, WriteError(rec, errors.New("disk full")))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "disk full", decode(t, rec).Error)
}

func TestWriteText(t *testing.T) {
	rec := httptest.NewRecorder()
	err := WriteText(rec, http.StatusOK, func(w io.Writer) error {
		_, err := io.WriteString(w, "hello")
		return err
	})
	require.NoError(t, err)

	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "hello", rec.Body.String())
}
