package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-roster/internal/storage"
	"github.com/aanand-mishra/student-roster/internal/storage/storagetest"
	"github.com/aanand-mishra/student-roster/internal/types"
)

func TestSQLite(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Storage {
		db, err := New(":memory:")
		require.NoError(t, err)
		t.Cleanup(func() { db.Close() })
		return db
	})
}

func TestFileDatabaseKeepsGenderAndMeasurements(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.db")

	db, err := New(path)
	require.NoError(t, err)

	created, err := db.CreateStudent(types.Student{
		Name: "Dóra", Gender: types.GenderGirl, Height: 158.4, Weight: 47.25, ClassNumber: "7C",
	})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	reopened, err := New(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.GetStudentByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}
