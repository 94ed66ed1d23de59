// Package memory provides the default in-process implementation of
// storage.Storage. Records live in a slice guarded by a sync.RWMutex;
// nothing survives the process.
package memory

import (
	"fmt"
	"sync"

	"github.com/aanand-mishra/student-roster/internal/storage"
	"github.com/aanand-mishra/student-roster/internal/types"
)

// Memory is an in-memory storage.Storage.
type Memory struct {
	mu       sync.RWMutex
	students []types.Student
	// nextID only moves forward, so deleting the highest id never lets
	// Add hand it out again.
	nextID int64
}

var _ storage.Storage = (*Memory)(nil)

// New returns an empty store whose first id will be 1.
func New() *Memory {
	return &Memory{
		students: make([]types.Student, 0),
		nextID:   1,
	}
}

// CreateStudent stores student under the next unused id.
func (m *Memory) CreateStudent(student types.Student) (types.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	student.ID = m.nextID
	m.nextID++
	m.students = append(m.students, student)

	return student, nil
}

// GetStudentByID returns the record with the given id or wraps
// storage.ErrNotFound.
func (m *Memory) GetStudentByID(id int64) (types.Student, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := m.indexOf(id)
	if i < 0 {
		return types.Student{}, fmt.Errorf("GetStudentByID: id %d: %w", id, storage.ErrNotFound)
	}

	return m.students[i], nil
}

// GetStudents returns a copy; callers may not mutate the store through it.
func (m *Memory) GetStudents() ([]types.Student, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]types.Student, len(m.students))
	copy(out, m.students)

	return out, nil
}

// UpdateStudentByID overwrites the record in place, keeping its position
// in roster order.
func (m *Memory) UpdateStudentByID(id int64, student types.Student) (types.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return types.Student{}, fmt.Errorf("UpdateStudentByID: id %d: %w", id, storage.ErrNotFound)
	}

	student.ID = id
	m.students[i] = student

	return student, nil
}

// DeleteStudentByID removes the record; later records shift down so
// insertion order is preserved.
func (m *Memory) DeleteStudentByID(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return fmt.Errorf("DeleteStudentByID: id %d: %w", id, storage.ErrNotFound)
	}

	m.students = append(m.students[:i], m.students[i+1:]...)

	return nil
}

// ReplaceAll swaps the whole roster for students. The new records are
// numbered from nextID, so no id issued before the swap comes back.
func (m *Memory) ReplaceAll(students []types.Student) ([]types.Student, error) {
	fresh := make([]types.Student, len(students))

	m.mu.Lock()
	for i, s := range students {
		s.ID = m.nextID
		m.nextID++
		fresh[i] = s
	}
	m.students = fresh
	m.mu.Unlock()

	out := make([]types.Student, len(fresh))
	copy(out, fresh)

	return out, nil
}

// Close is a no-op; there is nothing to release.
func (m *Memory) Close() error { return nil }

// indexOf must be called with mu held.
func (m *Memory) indexOf(id int64) int {
	for i := range m.students {
		if m.students[i].ID == id {
			return i
		}
	}
	return -1
}
