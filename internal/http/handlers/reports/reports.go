// Package reports exposes the roster reports over HTTP. Each handler
// answers JSON by default and the plain-text report with ?format=text.
package reports

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/student-roster/internal/report"
	"github.com/aanand-mishra/student-roster/internal/types"
	"github.com/aanand-mishra/student-roster/internal/utils/response"
)

// Reporter is implemented by *report.Engine.
type Reporter interface {
	ClassAverages() (map[string]report.ClassAverage, error)
	TallestGirl() (*types.Student, error)
	HeaviestBoy() (*types.Student, error)
}

// ClassAverages handles GET /api/reports/class-averages.
//
// JSON response (200 OK), sorted by class label:
//
//	[ { "class_number": "5A", "avg_weight": 57.5, "avg_height": 165, "count": 2 } ]
func ClassAverages(reporter Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("building class averages report")

		averages, err := reporter.ClassAverages()
		if err != nil {
			slog.Error("error building class averages", slog.String("error", err.Error()))
			response.WriteError(w, err)
			return
		}

		if wantsText(r) {
			response.WriteText(w, http.StatusOK, func(out io.Writer) error {
				return report.WriteClassAverages(out, averages)
			})
			return
		}

		response.WriteJSON(w, http.StatusOK, report.Sorted(averages))
	}
}

// TallestGirl handles GET /api/reports/tallest-girl.
// Responds 404 when the roster has no girls.
func TallestGirl(reporter Reporter) http.HandlerFunc {
	return single(reporter.TallestGirl, "Legmagasabb Lány", "Nincs lány tanuló.")
}

// HeaviestBoy handles GET /api/reports/heaviest-boy.
// Responds 404 when the roster has no boys.
func HeaviestBoy(reporter Reporter) http.HandlerFunc {
	return single(reporter.HeaviestBoy, "Legsúlyosabb Fiú", "Nincs fiú tanuló.")
}

func single(query func() (*types.Student, error), title, empty string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("building student report", slog.String("report", title))

		student, err := query()
		if err != nil {
			slog.Error("error building student report",
				slog.String("report", title),
				slog.String("error", err.Error()))
			response.WriteError(w, err)
			return
		}

		status := http.StatusOK
		if student == nil {
			status = http.StatusNotFound
		}

		if wantsText(r) {
			response.WriteText(w, status, func(out io.Writer) error {
				return report.WriteStudent(out, title, student, empty)
			})
			return
		}

		if student == nil {
			response.WriteJSON(w, status, response.GeneralError(errors.New(empty)))
			return
		}
		response.WriteJSON(w, status, student)
	}
}

func wantsText(r *http.Request) bool {
	return r.URL.Query().Get("format") == "text"
}
