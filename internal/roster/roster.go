// Package roster is the authoritative student collection: it validates
// input, owns the initial CSV population and exposes the CRUD surface the
// control layer calls. Identity assignment and mutual exclusion are
// delegated to the storage backend.
package roster

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/student-roster/internal/storage"
	"github.com/aanand-mishra/student-roster/internal/types"
)

// RowSource yields raw roster rows in file order.
type RowSource interface {
	Rows(ctx context.Context) ([]types.Row, error)
}

// LoadResult summarises one LoadFromSource call.
type LoadResult struct {
	Loaded  int `json:"loaded"`
	Skipped int `json:"skipped"`
}

// Store wraps a storage backend with validation and CSV loading.
type Store struct {
	storage  storage.Storage
	validate *validator.Validate
	log      *slog.Logger
}

// New returns a Store over the given backend. A nil logger falls back to
// slog.Default().
func New(storage storage.Storage, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		storage:  storage,
		validate: validator.New(),
		log:      log,
	}
}

// LoadFromSource replaces the roster with the well-formed rows of src.
// The old records are dropped rather than appended to, so calling it
// twice never duplicates records; the loaded rows get ids after the
// highest one issued so far, in row order. Malformed rows are logged and counted, never returned as an
// error. If src itself fails the current roster is left untouched.
func (s *Store) LoadFromSource(ctx context.Context, src RowSource) (LoadResult, error) {
	rows, err := src.Rows(ctx)
	if err != nil {
		return LoadResult{}, fmt.Errorf("roster.LoadFromSource: %w", err)
	}

	students := make([]types.Student, 0, len(rows))
	var res LoadResult

	for _, row := range rows {
		student, err := s.parseRow(row)
		if err != nil {
			res.Skipped++
			s.log.Warn("skipping malformed row",
				slog.Int("line", row.Line),
				slog.String("reason", err.Error()))
			continue
		}
		students = append(students, student)
	}

	loaded, err := s.storage.ReplaceAll(students)
	if err != nil {
		return LoadResult{}, fmt.Errorf("roster.LoadFromSource: %w", err)
	}
	res.Loaded = len(loaded)

	s.log.Info("roster loaded",
		slog.Int("loaded", res.Loaded),
		slog.Int("skipped", res.Skipped))

	return res, nil
}

// GetAll returns a snapshot of every student in insertion order.
func (s *Store) GetAll() ([]types.Student, error) {
	return s.storage.GetStudents()
}

// Get returns one student or an error wrapping ErrNotFound.
func (s *Store) Get(id int64) (types.Student, error) {
	return s.storage.GetStudentByID(id)
}

// Add validates student, assigns it a fresh id and appends it. Any id
// set by the caller is ignored.
func (s *Store) Add(student types.Student) (types.Student, error) {
	student, err := s.check(student)
	if err != nil {
		return types.Student{}, err
	}
	student.ID = 0

	created, err := s.storage.CreateStudent(student)
	if err != nil {
		return types.Student{}, fmt.Errorf("roster.Add: %w", err)
	}

	return created, nil
}

// Update replaces every field of the student with the same id.
func (s *Store) Update(student types.Student) (types.Student, error) {
	student, err := s.check(student)
	if err != nil {
		return types.Student{}, err
	}

	updated, err := s.storage.UpdateStudentByID(student.ID, student)
	if err != nil {
		return types.Student{}, fmt.Errorf("roster.Update: %w", err)
	}

	return updated, nil
}

// Delete removes the student with the given id.
func (s *Store) Delete(id int64) error {
	if err := s.storage.DeleteStudentByID(id); err != nil {
		return fmt.Errorf("roster.Delete: %w", err)
	}
	return nil
}

// check trims text fields and runs the struct's validate rules.
func (s *Store) check(student types.Student) (types.Student, error) {
	student = student.Normalize()

	if err := s.validate.Struct(student); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return types.Student{}, &ValidationError{Fields: verrs}
		}
		return types.Student{}, fmt.Errorf("roster: validate: %w", err)
	}

	return student, nil
}

// parseRow turns a five-field row into a validated Student. Numbers use
// the invariant '.' decimal point.
func (s *Store) parseRow(row types.Row) (types.Student, error) {
	if len(row.Fields) != 5 {
		return types.Student{}, fmt.Errorf("expected 5 fields, got %d", len(row.Fields))
	}

	height, err := parseMeasure(row.Fields[2])
	if err != nil {
		return types.Student{}, fmt.Errorf("height: %w", err)
	}
	weight, err := parseMeasure(row.Fields[3])
	if err != nil {
		return types.Student{}, fmt.Errorf("weight: %w", err)
	}

	return s.check(types.Student{
		Name:        row.Fields[0],
		Gender:      types.Gender(row.Fields[1]),
		Height:      height,
		Weight:      weight,
		ClassNumber: row.Fields[4],
	})
}

func parseMeasure(field string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", field)
	}
	return v, nil
}
