// Package storagetest holds the behaviour every storage.Storage backend
// must share. Backend packages call Run from their own _test.go files.
package storagetest

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-roster/internal/storage"
	"github.com/aanand-mishra/student-roster/internal/types"
)

// Factory returns a fresh, empty backend.
type Factory func(t *testing.T) storage.Storage

func anna() types.Student {
	return types.Student{Name: "Anna", Gender: types.GenderGirl, Height: 160, Weight: 50, ClassNumber: "5A"}
}

func bela() types.Student {
	return types.Student{Name: "Béla", Gender: types.GenderBoy, Height: 170, Weight: 65, ClassNumber: "5A"}
}

func cili() types.Student {
	return types.Student{Name: "Cili", Gender: types.GenderGirl, Height: 155, Weight: 48, ClassNumber: "6B"}
}

// Run executes the conformance suite against backends built by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Run("EmptyStore", func(t *testing.T) {
		s := newStore(t)

		all, err := s.GetStudents()
		require.NoError(t, err)
		assert.NotNil(t, all)
		assert.Empty(t, all)
	})

	t.Run("CreateAssignsSequentialIDs", func(t *testing.T) {
		s := newStore(t)

		a, err := s.CreateStudent(anna())
		require.NoError(t, err)
		b, err := s.CreateStudent(bela())
		require.NoError(t, err)

		assert.Equal(t, int64(1), a.ID)
		assert.Equal(t, int64(2), b.ID)

		got, err := s.GetStudentByID(2)
		require.NoError(t, err)
		assert.Equal(t, b, got)
	})

	t.Run("GetStudentsKeepsInsertionOrder", func(t *testing.T) {
		s := newStore(t)

		for _, st := range []types.Student{cili(), anna(), bela()} {
			_, err := s.CreateStudent(st)
			require.NoError(t, err)
		}

		all, err := s.GetStudents()
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "Cili", all[0].Name)
		assert.Equal(t, "Anna", all[1].Name)
		assert.Equal(t, "Béla", all[2].Name)
	})

	t.Run("UpdateReplacesOnlyTarget", func(t *testing.T) {
		s := newStore(t)

		_, err := s.CreateStudent(anna())
		require.NoError(t, err)
		b, err := s.CreateStudent(bela())
		require.NoError(t, err)

		changed := anna()
		changed.Name = "Anna Kovács"
		changed.Height = 162.5

		updated, err := s.UpdateStudentByID(1, changed)
		require.NoError(t, err)
		assert.Equal(t, int64(1), updated.ID)
		assert.Equal(t, "Anna Kovács", updated.Name)
		assert.Equal(t, 162.5, updated.Height)

		other, err := s.GetStudentByID(2)
		require.NoError(t, err)
		assert.Equal(t, b, other)
	})

	t.Run("UpdateUnknownID", func(t *testing.T) {
		s := newStore(t)

		_, err := s.UpdateStudentByID(42, anna())
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("DeleteRemovesRecord", func(t *testing.T) {
		s := newStore(t)

		_, err := s.CreateStudent(anna())
		require.NoError(t, err)
		_, err = s.CreateStudent(bela())
		require.NoError(t, err)

		require.NoError(t, s.DeleteStudentByID(1))

		all, err := s.GetStudents()
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, int64(2), all[0].ID)

		_, err = s.GetStudentByID(1)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("DeleteUnknownID", func(t *testing.T) {
		s := newStore(t)

		err := s.DeleteStudentByID(7)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("DeletedIDIsNotReused", func(t *testing.T) {
		s := newStore(t)

		_, err := s.CreateStudent(anna())
		require.NoError(t, err)
		_, err = s.CreateStudent(bela())
		require.NoError(t, err)
		require.NoError(t, s.DeleteStudentByID(2))

		c, err := s.CreateStudent(cili())
		require.NoError(t, err)
		assert.Equal(t, int64(3), c.ID)
	})

	t.Run("ReplaceAllContinuesIDs", func(t *testing.T) {
		s := newStore(t)

		for i := 0; i < 4; i++ {
			_, err := s.CreateStudent(anna())
			require.NoError(t, err)
		}
		require.NoError(t, s.DeleteStudentByID(4))

		loaded, err := s.ReplaceAll([]types.Student{bela(), cili()})
		require.NoError(t, err)
		require.Len(t, loaded, 2)
		assert.Equal(t, int64(5), loaded[0].ID)
		assert.Equal(t, int64(6), loaded[1].ID)

		all, err := s.GetStudents()
		require.NoError(t, err)
		assert.Equal(t, loaded, all)

		next, err := s.CreateStudent(anna())
		require.NoError(t, err)
		assert.Equal(t, int64(7), next.ID)
	})

	t.Run("IDAddedBeforeReplaceIsNotReused", func(t *testing.T) {
		s := newStore(t)

		_, err := s.ReplaceAll([]types.Student{anna(), bela()})
		require.NoError(t, err)
		before, err := s.CreateStudent(cili())
		require.NoError(t, err)

		_, err = s.ReplaceAll([]types.Student{anna(), bela()})
		require.NoError(t, err)
		after, err := s.CreateStudent(cili())
		require.NoError(t, err)

		assert.NotEqual(t, before.ID, after.ID)
		assert.Greater(t, after.ID, before.ID)
	})

	t.Run("ReplaceAllTwiceDoesNotDuplicate", func(t *testing.T) {
		s := newStore(t)

		batch := []types.Student{anna(), bela()}
		_, err := s.ReplaceAll(batch)
		require.NoError(t, err)
		_, err = s.ReplaceAll(batch)
		require.NoError(t, err)

		all, err := s.GetStudents()
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("ConcurrentCreateAndDelete", func(t *testing.T) {
		s := newStore(t)

		const workers, perWorker = 8, 25

		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < perWorker; i++ {
					created, err := s.CreateStudent(anna())
					if !assert.NoError(t, err) {
						return
					}
					// Every other record is removed again by its creator.
					if i%2 == 0 {
						assert.NoError(t, s.DeleteStudentByID(created.ID))
					}
				}
			}()
		}
		wg.Wait()

		all, err := s.GetStudents()
		require.NoError(t, err)
		assert.Len(t, all, workers*(perWorker/2))
		assertUniqueIDs(t, all)
	})

	t.Run("ConcurrentReplaceAll", func(t *testing.T) {
		s := newStore(t)

		const workers, perWorker = 6, 10
		batch := []types.Student{anna(), bela(), cili()}

		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				for i := 0; i < perWorker; i++ {
					_, err := s.ReplaceAll(batch)
					assert.NoError(t, err)
				}
			}()
			go func() {
				defer wg.Done()
				for i := 0; i < perWorker; i++ {
					created, err := s.CreateStudent(anna())
					if !assert.NoError(t, err) {
						return
					}
					// A concurrent ReplaceAll may already have dropped it.
					if err := s.DeleteStudentByID(created.ID); err != nil {
						assert.ErrorIs(t, err, storage.ErrNotFound)
					}
				}
			}()
		}
		wg.Wait()

		all, err := s.GetStudents()
		require.NoError(t, err)
		// Every created record was deleted by its creator or dropped by a
		// ReplaceAll, so only the last batch is left.
		assert.Len(t, all, len(batch))
		assertUniqueIDs(t, all)

		// Whatever survived, the next id is past all of them.
		next, err := s.CreateStudent(cili())
		require.NoError(t, err)
		for _, st := range all {
			assert.Greater(t, next.ID, st.ID)
		}
	})
}

func assertUniqueIDs(t *testing.T, students []types.Student) {
	t.Helper()
	seen := make(map[int64]bool, len(students))
	for _, st := range students {
		assert.False(t, seen[st.ID], "duplicate id %d", st.ID)
		seen[st.ID] = true
	}
}
