// Package student contains the HTTP handlers for the Student resource.
//
// HANDLER PATTERN USED HERE — THE CLOSURE / FACTORY PATTERN:
// ────────────────────────────────────────────────────────────
// Each exported function receives its dependencies once at startup and
// returns the http.HandlerFunc the router calls on every request:
//
//	router.HandleFunc("POST /api/students", student.New(store))
package student

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aanand-mishra/student-roster/internal/roster"
	"github.com/aanand-mishra/student-roster/internal/types"
	"github.com/aanand-mishra/student-roster/internal/utils/response"
)

// Store is the slice of roster.Store the handlers use.
type Store interface {
	GetAll() ([]types.Student, error)
	Get(id int64) (types.Student, error)
	Add(student types.Student) (types.Student, error)
	Update(student types.Student) (types.Student, error)
	Delete(id int64) error
}

// Loader reloads the roster from its row source.
type Loader interface {
	LoadFromSource(ctx context.Context, src roster.RowSource) (roster.LoadResult, error)
}

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /api/students
//
// Request body (JSON):
//
//	{ "name": "Anna", "gender": "Lány", "height": 160, "weight": 50, "class_number": "5A" }
//
// Success response (201 Created): the stored student including its id.
//
// Error responses:
//
//	400 Bad Request  — empty body, malformed JSON, or failed validation
//	500 Internal     — backend error
//
// ─────────────────────────────────────────────────────────────────────────────
func New(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a student")

		student, ok := decodeStudent(w, r)
		if !ok {
			return
		}

		created, err := store.Add(student)
		if err != nil {
			slog.Warn("error creating student", slog.String("error", err.Error()))
			response.WriteError(w, err)
			return
		}

		slog.Info("student created", slog.Int64("id", created.ID))
		response.WriteJSON(w, http.StatusCreated, created)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetByID handles GET /api/students/{id}
//
//	400 Bad Request  — id is not a valid integer
//	404 Not Found    — no student with that id
//
// ─────────────────────────────────────────────────────────────────────────────
func GetByID(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		slog.Info("getting a student", slog.Int64("id", id))

		student, err := store.Get(id)
		if err != nil {
			response.WriteError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, student)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET /api/students
// Returns every student in roster order.
//
// Success response (200 OK):
//
//	[
//	  { "id": 1, "name": "Anna", "gender": "Lány", ... },
//	  { "id": 2, "name": "Béla", "gender": "Fiú",  ... }
//	]
//
// Returns an empty array [] (not null) when the roster is empty.
// ─────────────────────────────────────────────────────────────────────────────
func GetList(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all students")

		students, err := store.GetAll()
		if err != nil {
			slog.Error("error getting students", slog.String("error", err.Error()))
			response.WriteError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, students)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles PUT /api/students/{id}
// Replaces ALL fields of an existing student. The id in the path wins
// over any id in the body.
//
//	400 Bad Request  — invalid id, empty body, or validation failure
//	404 Not Found    — no student with that id
//
// ─────────────────────────────────────────────────────────────────────────────
func Update(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		slog.Info("updating a student", slog.Int64("id", id))

		student, ok := decodeStudent(w, r)
		if !ok {
			return
		}
		student.ID = id

		updated, err := store.Update(student)
		if err != nil {
			slog.Warn("error updating student",
				slog.Int64("id", id),
				slog.String("error", err.Error()))
			response.WriteError(w, err)
			return
		}

		slog.Info("student updated", slog.Int64("id", id))
		response.WriteJSON(w, http.StatusOK, updated)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Delete handles DELETE /api/students/{id}
// Permanently removes a student; the id is never handed out again.
//
// Success response (200 OK):
//
//	{ "status": "deleted" }
//
// Error responses:
//
//	400 Bad Request  — invalid id
//	404 Not Found    — no student with that id
//
// ─────────────────────────────────────────────────────────────────────────────
func Delete(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		slog.Info("deleting a student", slog.Int64("id", id))

		if err := store.Delete(id); err != nil {
			slog.Warn("error deleting student",
				slog.Int64("id", id),
				slog.String("error", err.Error()))
			response.WriteError(w, err)
			return
		}

		slog.Info("student deleted", slog.Int64("id", id))
		response.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Reload handles POST /api/students/reload
// Rebuilds the roster from the CSV source, discarding edits made since
// the last load.
//
// Success response (200 OK):
//
//	{ "loaded": 12, "skipped": 1 }
//
// ─────────────────────────────────────────────────────────────────────────────
func Reload(loader Loader, src roster.RowSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("reloading roster")

		res, err := loader.LoadFromSource(r.Context(), src)
		if err != nil {
			slog.Error("error reloading roster", slog.String("error", err.Error()))
			response.WriteError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, res)
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest,
			response.GeneralError(errors.New("invalid id: must be an integer")))
		return 0, false
	}
	return id, true
}

func decodeStudent(w http.ResponseWriter, r *http.Request) (types.Student, bool) {
	var student types.Student

	err := json.NewDecoder(r.Body).Decode(&student)
	if errors.Is(err, io.EOF) {
		response.WriteJSON(w, http.StatusBadRequest,
			response.GeneralError(errors.New("request body is empty")))
		return types.Student{}, false
	}
	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
		return types.Student{}, false
	}

	return student, true
}
