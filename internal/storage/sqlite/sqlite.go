// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// WHY SQLite?
// ───────────
// It gives the roster real SQL ordering and AUTOINCREMENT id semantics
// without a server process. The default path is ":memory:", so the
// roster still lives only as long as the process; point storage.path at
// a file to keep a scratch copy around while debugging.
//
// The blank import below registers the sqlite3 driver with database/sql.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/aanand-mishra/student-roster/internal/storage"
	"github.com/aanand-mishra/student-roster/internal/types"

	// Blank import: side-effect only (registers the "sqlite3" driver).
	_ "github.com/mattn/go-sqlite3"
)

// SQLite is the concrete implementation of storage.Storage.
type SQLite struct {
	Db *sql.DB
}

var _ storage.Storage = (*SQLite)(nil)

// New opens the SQLite database at storagePath, creates the students
// table if it does not already exist, and returns a ready-to-use *SQLite.
func New(storagePath string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", storagePath)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// One connection: every ":memory:" connection is a separate database,
	// and a single writer serializes all mutations.
	db.SetMaxOpenConns(1)

	// AUTOINCREMENT (rather than plain INTEGER PRIMARY KEY) guarantees an
	// id freed by DELETE is never handed out again.
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS students (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			name         TEXT    NOT NULL,
			gender       TEXT    NOT NULL,
			height       REAL    NOT NULL,
			weight       REAL    NOT NULL,
			class_number TEXT    NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// CreateStudent inserts a new row and returns it with the generated id.
// Values go through ? placeholders, never string concatenation.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) CreateStudent(student types.Student) (types.Student, error) {
	stmt, err := s.Db.Prepare(
		"INSERT INTO students (name, gender, height, weight, class_number) VALUES (?, ?, ?, ?, ?)",
	)
	if err != nil {
		return types.Student{}, fmt.Errorf("CreateStudent: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.Exec(student.Name, string(student.Gender), student.Height, student.Weight, student.ClassNumber)
	if err != nil {
		return types.Student{}, fmt.Errorf("CreateStudent: exec: %w", err)
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return types.Student{}, fmt.Errorf("CreateStudent: last insert id: %w", err)
	}

	student.ID = lastID
	return student, nil
}

// GetStudentByID fetches exactly one student row matched by primary key.
func (s *SQLite) GetStudentByID(id int64) (types.Student, error) {
	stmt, err := s.Db.Prepare(
		"SELECT id, name, gender, height, weight, class_number FROM students WHERE id = ? LIMIT 1",
	)
	if err != nil {
		return types.Student{}, fmt.Errorf("GetStudentByID: prepare: %w", err)
	}
	defer stmt.Close()

	student, err := scanStudent(stmt.QueryRow(id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Student{}, fmt.Errorf("GetStudentByID: id %d: %w", id, storage.ErrNotFound)
		}
		return types.Student{}, fmt.Errorf("GetStudentByID: scan: %w", err)
	}

	return student, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// GetStudents returns all rows ordered by id. Ids only grow, so id order
// is insertion order.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) GetStudents() ([]types.Student, error) {
	rows, err := s.Db.Query(
		"SELECT id, name, gender, height, weight, class_number FROM students ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("GetStudents: query: %w", err)
	}
	defer rows.Close()

	students := make([]types.Student, 0)

	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("GetStudents: scan row: %w", err)
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetStudents: rows iteration: %w", err)
	}

	return students, nil
}

// UpdateStudentByID replaces a student's data and returns the stored row.
// RowsAffected tells us whether the id existed.
func (s *SQLite) UpdateStudentByID(id int64, student types.Student) (types.Student, error) {
	stmt, err := s.Db.Prepare(
		"UPDATE students SET name = ?, gender = ?, height = ?, weight = ?, class_number = ? WHERE id = ?",
	)
	if err != nil {
		return types.Student{}, fmt.Errorf("UpdateStudentByID: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.Exec(student.Name, string(student.Gender), student.Height, student.Weight, student.ClassNumber, id)
	if err != nil {
		return types.Student{}, fmt.Errorf("UpdateStudentByID: exec: %w", err)
	}

	if err := requireAffected(result, id); err != nil {
		return types.Student{}, fmt.Errorf("UpdateStudentByID: %w", err)
	}

	return s.GetStudentByID(id)
}

// DeleteStudentByID removes a student row by primary key.
func (s *SQLite) DeleteStudentByID(id int64) error {
	stmt, err := s.Db.Prepare("DELETE FROM students WHERE id = ?")
	if err != nil {
		return fmt.Errorf("DeleteStudentByID: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.Exec(id)
	if err != nil {
		return fmt.Errorf("DeleteStudentByID: exec: %w", err)
	}

	if err := requireAffected(result, id); err != nil {
		return fmt.Errorf("DeleteStudentByID: %w", err)
	}

	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// ReplaceAll empties the table and inserts the new rows in one
// transaction. sqlite_sequence is left alone, so the new rows continue
// after the highest id ever issued. If anything fails the transaction
// rolls back and the old roster stays.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) ReplaceAll(students []types.Student) ([]types.Student, error) {
	tx, err := s.Db.Begin()
	if err != nil {
		return nil, fmt.Errorf("ReplaceAll: begin: %w", err)
	}
	// Rollback after a successful Commit is a no-op.
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM students"); err != nil {
		return nil, fmt.Errorf("ReplaceAll: clear: %w", err)
	}

	stmt, err := tx.Prepare(
		"INSERT INTO students (name, gender, height, weight, class_number) VALUES (?, ?, ?, ?, ?)",
	)
	if err != nil {
		return nil, fmt.Errorf("ReplaceAll: prepare: %w", err)
	}
	defer stmt.Close()

	out := make([]types.Student, 0, len(students))
	for _, student := range students {
		result, err := stmt.Exec(student.Name, string(student.Gender), student.Height, student.Weight, student.ClassNumber)
		if err != nil {
			return nil, fmt.Errorf("ReplaceAll: insert: %w", err)
		}
		student.ID, err = result.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("ReplaceAll: last insert id: %w", err)
		}
		out = append(out, student)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("ReplaceAll: commit: %w", err)
	}

	return out, nil
}

func (s *SQLite) Close() error {
	return s.Db.Close()
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanStudent reads columns in SELECT order:
// id, name, gender, height, weight, class_number.
func scanStudent(row scanner) (types.Student, error) {
	var (
		student types.Student
		gender  string
	)

	if err := row.Scan(
		&student.ID,
		&student.Name,
		&gender,
		&student.Height,
		&student.Weight,
		&student.ClassNumber,
	); err != nil {
		return types.Student{}, err
	}

	student.Gender = types.Gender(gender)
	return student, nil
}

func requireAffected(result sql.Result, id int64) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("id %d: %w", id, storage.ErrNotFound)
	}
	return nil
}
