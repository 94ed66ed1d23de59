package reports

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-roster/internal/report"
	"github.com/aanand-mishra/student-roster/internal/types"
	"github.com/aanand-mishra/student-roster/internal/utils/response"
)

type roster []types.Student

func (r roster) GetAll() ([]types.Student, error) { return r, nil }

func serve(t *testing.T, h http.HandlerFunc, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

var students = roster{
	{ID: 1, Name: "Anna", Gender: types.GenderGirl, Height: 160, Weight: 50, ClassNumber: "5A"},
	{ID: 2, Name: "Béla", Gender: types.GenderBoy, Height: 170, Weight: 65, ClassNumber: "5A"},
	{ID: 3, Name: "Cili", Gender: types.GenderGirl, Height: 150, Weight: 42, ClassNumber: "4B"},
}

func TestClassAveragesJSON(t *testing.T) {
	rec := serve(t, ClassAverages(report.New(students)), "/api/reports/class-averages")
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []report.ClassRow
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "4B", rows[0].ClassNumber)
	assert.Equal(t, "5A", rows[1].ClassNumber)
	assert.Equal(t, 57.5, rows[1].AvgWeight)
	assert.Equal(t, 165.0, rows[1].AvgHeight)
	assert.Equal(t, 2, rows[1].Count)
}

func TestClassAveragesText(t *testing.T) {
	rec := serve(t, ClassAverages(report.New(students)), "/api/reports/class-averages?format=text")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Contains(t, rec.Body.String(), "Osztály 5A:\n  Magasság: 165.00 cm\n  Testsúly: 57.50 kg")
}

func TestTallestGirl(t *testing.T) {
	rec := serve(t, TallestGirl(report.New(students)), "/api/reports/tallest-girl")
	require.Equal(t, http.StatusOK, rec.Code)

	var got types.Student
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "Anna", got.Name)
}

func TestHeaviestBoyText(t *testing.T) {
	rec := serve(t, HeaviestBoy(report.New(students)), "/api/reports/heaviest-boy?format=text")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Contains(t, rec.Body.String(), "Legsúlyosabb Fiú:")
	assert.Contains(t, rec.Body.String(), "Név: Béla")
}

func TestSingleReportOnEmptyRoster(t *testing.T) {
	engine := report.New(roster{})

	rec := serve(t, HeaviestBoy(engine), "/api/reports/heaviest-boy")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp response.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Nincs fiú tanuló.", resp.Error)

	rec = serve(t, TallestGirl(engine), "/api/reports/tallest-girl?format=text")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Nincs lány tanuló.\n", rec.Body.String())

	rec = serve(t, ClassAverages(engine), "/api/reports/class-averages")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}
