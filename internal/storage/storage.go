// Package storage defines the Storage interface, the contract any
// roster backend must satisfy.
//
// The roster and report packages depend only on this interface, so the
// in-memory backend and the SQLite backend are interchangeable and the
// choice is made once in main.go from configuration.
package storage

import (
	"errors"

	"github.com/aanand-mishra/student-roster/internal/types"
)

// ErrNotFound is returned (wrapped, with the id) when an operation
// references a student that does not exist.
var ErrNotFound = errors.New("student not found")

// Storage is the backend contract.
//
// Implementations own id assignment: ids are positive, unique among live
// records and never handed out twice for the lifetime of the backend,
// ReplaceAll included.
// Implementations must be safe for concurrent use.
type Storage interface {
	// CreateStudent assigns a fresh id, stores the record and returns it.
	CreateStudent(student types.Student) (types.Student, error)

	// GetStudentByID fetches a single student. Wraps ErrNotFound.
	GetStudentByID(id int64) (types.Student, error)

	// GetStudents returns every student in insertion order.
	// Returns an empty slice (not nil) if there are none.
	GetStudents() ([]types.Student, error)

	// UpdateStudentByID replaces the fields of an existing student and
	// returns the stored record. Wraps ErrNotFound.
	UpdateStudentByID(id int64, student types.Student) (types.Student, error)

	// DeleteStudentByID removes a student permanently. Wraps ErrNotFound.
	DeleteStudentByID(id int64) error

	// ReplaceAll drops every record and stores the given ones in slice
	// order, numbered after the highest id issued so far. It is atomic:
	// on error the previous contents are kept.
	ReplaceAll(students []types.Student) ([]types.Student, error)

	// Close releases backend resources.
	Close() error
}
