package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-roster/internal/storage"
	"github.com/aanand-mishra/student-roster/internal/storage/storagetest"
	"github.com/aanand-mishra/student-roster/internal/types"
)

func TestMemory(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Storage {
		return New()
	})
}

func TestGetStudentsReturnsCopy(t *testing.T) {
	m := New()
	_, err := m.CreateStudent(types.Student{Name: "Anna", Gender: types.GenderGirl, Height: 160, Weight: 50, ClassNumber: "5A"})
	require.NoError(t, err)

	all, err := m.GetStudents()
	require.NoError(t, err)
	all[0].Name = "mutated"

	got, err := m.GetStudentByID(1)
	require.NoError(t, err)
	assert.Equal(t, "Anna", got.Name)
}
