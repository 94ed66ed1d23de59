// Package report answers the three canned roster queries. It only reads:
// every query works on a fresh snapshot and never mutates the roster.
package report

import (
	"fmt"
	"sort"

	"github.com/aanand-mishra/student-roster/internal/types"
)

// Snapshotter is the read view the engine needs. *roster.Store satisfies it.
type Snapshotter interface {
	GetAll() ([]types.Student, error)
}

// ClassAverage holds the means for one class.
type ClassAverage struct {
	AvgWeight float64 `json:"avg_weight"`
	AvgHeight float64 `json:"avg_height"`
	Count     int     `json:"count"`
}

// ClassRow is one line of the sorted class report.
type ClassRow struct {
	ClassNumber string `json:"class_number"`
	ClassAverage
}

// Engine runs the report queries.
type Engine struct {
	src Snapshotter
}

func New(src Snapshotter) *Engine {
	return &Engine{src: src}
}

// ClassAverages groups students by class label and averages weight and
// height independently. A class appears only if it has students, so no
// group is ever empty.
func (e *Engine) ClassAverages() (map[string]ClassAverage, error) {
	students, err := e.src.GetAll()
	if err != nil {
		return nil, fmt.Errorf("report.ClassAverages: %w", err)
	}

	type sums struct {
		weight, height float64
		n              int
	}
	groups := make(map[string]*sums)

	for _, s := range students {
		g, ok := groups[s.ClassNumber]
		if !ok {
			g = &sums{}
			groups[s.ClassNumber] = g
		}
		g.weight += s.Weight
		g.height += s.Height
		g.n++
	}

	out := make(map[string]ClassAverage, len(groups))
	for class, g := range groups {
		out[class] = ClassAverage{
			AvgWeight: g.weight / float64(g.n),
			AvgHeight: g.height / float64(g.n),
			Count:     g.n,
		}
	}

	return out, nil
}

// Sorted orders class averages by class label for display.
func Sorted(averages map[string]ClassAverage) []ClassRow {
	rows := make([]ClassRow, 0, len(averages))
	for class, avg := range averages {
		rows = append(rows, ClassRow{ClassNumber: class, ClassAverage: avg})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].ClassNumber < rows[j].ClassNumber
	})
	return rows
}

// TallestGirl returns the girl with the greatest height, or nil if there
// are no girls. Ties go to the first one in roster order.
func (e *Engine) TallestGirl() (*types.Student, error) {
	s, err := e.extremum(types.GenderGirl, func(s types.Student) float64 { return s.Height })
	if err != nil {
		return nil, fmt.Errorf("report.TallestGirl: %w", err)
	}
	return s, nil
}

// HeaviestBoy returns the boy with the greatest weight, or nil if there
// are no boys. Ties go to the first one in roster order.
func (e *Engine) HeaviestBoy() (*types.Student, error) {
	s, err := e.extremum(types.GenderBoy, func(s types.Student) float64 { return s.Weight })
	if err != nil {
		return nil, fmt.Errorf("report.HeaviestBoy: %w", err)
	}
	return s, nil
}

func (e *Engine) extremum(gender types.Gender, key func(types.Student) float64) (*types.Student, error) {
	students, err := e.src.GetAll()
	if err != nil {
		return nil, err
	}

	var best *types.Student
	for i := range students {
		if students[i].Gender != gender {
			continue
		}
		// Strictly greater keeps the earliest record on a tie.
		if best == nil || key(students[i]) > key(*best) {
			best = &students[i]
		}
	}

	return best, nil
}
