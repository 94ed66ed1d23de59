package report

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-roster/internal/types"
)

type snapshot []types.Student

func (s snapshot) GetAll() ([]types.Student, error) { return s, nil }

type failing struct{}

func (failing) GetAll() ([]types.Student, error) { return nil, errors.New("backend down") }

var (
	anna = types.Student{ID: 1, Name: "Anna", Gender: types.GenderGirl, Height: 160, Weight: 50, ClassNumber: "5A"}
	bela = types.Student{ID: 2, Name: "Béla", Gender: types.GenderBoy, Height: 170, Weight: 65, ClassNumber: "5A"}
)

func TestReportsOnTwoStudents(t *testing.T) {
	e := New(snapshot{anna, bela})

	avgs, err := e.ClassAverages()
	require.NoError(t, err)
	assert.Equal(t, map[string]ClassAverage{
		"5A": {AvgWeight: 57.5, AvgHeight: 165.0, Count: 2},
	}, avgs)

	girl, err := e.TallestGirl()
	require.NoError(t, err)
	require.NotNil(t, girl)
	assert.Equal(t, "Anna", girl.Name)

	boy, err := e.HeaviestBoy()
	require.NoError(t, err)
	require.NotNil(t, boy)
	assert.Equal(t, "Béla", boy.Name)
}

func TestExtremumTieGoesToFirst(t *testing.T) {
	cili := types.Student{ID: 3, Name: "Cili", Gender: types.GenderGirl, Height: 160, Weight: 45, ClassNumber: "6B"}
	dani := types.Student{ID: 4, Name: "Dani", Gender: types.GenderBoy, Height: 150, Weight: 65, ClassNumber: "6B"}

	e := New(snapshot{anna, cili, bela, dani})

	girl, err := e.TallestGirl()
	require.NoError(t, err)
	assert.Equal(t, "Anna", girl.Name)

	boy, err := e.HeaviestBoy()
	require.NoError(t, err)
	assert.Equal(t, "Béla", boy.Name)
}

func TestExtremumPicksMaximum(t *testing.T) {
	tall := types.Student{ID: 5, Name: "Emese", Gender: types.GenderGirl, Height: 171.5, Weight: 55, ClassNumber: "7A"}
	heavy := types.Student{ID: 6, Name: "Feri", Gender: types.GenderBoy, Height: 165, Weight: 80.2, ClassNumber: "7A"}

	e := New(snapshot{anna, bela, tall, heavy})

	girl, err := e.TallestGirl()
	require.NoError(t, err)
	assert.Equal(t, tall, *girl)

	boy, err := e.HeaviestBoy()
	require.NoError(t, err)
	assert.Equal(t, heavy, *boy)
}

func TestEmptyRoster(t *testing.T) {
	e := New(snapshot{})

	avgs, err := e.ClassAverages()
	require.NoError(t, err)
	assert.Empty(t, avgs)

	girl, err := e.TallestGirl()
	require.NoError(t, err)
	assert.Nil(t, girl)

	boy, err := e.HeaviestBoy()
	require.NoError(t, err)
	assert.Nil(t, boy)
}

func TestOnlyOneGender(t *testing.T) {
	e := New(snapshot{bela})

	girl, err := e.TallestGirl()
	require.NoError(t, err)
	assert.Nil(t, girl)
}

func TestSnapshotErrorsPropagate(t *testing.T) {
	e := New(failing{})

	_, err := e.ClassAverages()
	assert.Error(t, err)
	_, err = e.TallestGirl()
	assert.Error(t, err)
	_, err = e.HeaviestBoy()
	assert.Error(t, err)
}

func TestSortedByClassLabel(t *testing.T) {
	rows := Sorted(map[string]ClassAverage{
		"6B":  {AvgWeight: 1, AvgHeight: 2, Count: 1},
		"10A": {AvgWeight: 3, AvgHeight: 4, Count: 1},
		"5A":  {AvgWeight: 5, AvgHeight: 6, Count: 1},
	})

	require.Len(t, rows, 3)
	assert.Equal(t, "10A", rows[0].ClassNumber)
	assert.Equal(t, "5A", rows[1].ClassNumber)
	assert.Equal(t, "6B", rows[2].ClassNumber)
}

func TestWriteClassAverages(t *testing.T) {
	var buf bytes.Buffer
	err := WriteClassAverages(&buf, map[string]ClassAverage{
		"5A": {AvgWeight: 57.5, AvgHeight: 165, Count: 2},
	})
	require.NoError(t, err)

	assert.Equal(t, "Osztályok Átlagai:\n\nOsztály 5A:\n  Magasság: 165.00 cm\n  Testsúly: 57.50 kg\n\n", buf.String())
}

func TestWriteStudent(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteStudent(&buf, "Legmagasabb Lány", &anna, "Nincs lány tanuló."))
	assert.Equal(t, "Legmagasabb Lány:\n\nNév: Anna\nMagasság: 160 cm\nTestsúly: 50 kg\nOsztály: 5A\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteStudent(&buf, "Legmagasabb Lány", nil, "Nincs lány tanuló."))
	assert.Equal(t, "Nincs lány tanuló.\n", buf.String())
}
