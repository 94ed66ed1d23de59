package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/aanand-mishra/student-roster/internal/types"
)

// WriteClassAverages renders the class report as plain text, classes in
// label order and averages to two decimals. Labels are Hungarian, like
// the gender values and the CSV data.
func WriteClassAverages(w io.Writer, averages map[string]ClassAverage) error {
	if _, err := fmt.Fprint(w, "Osztályok Átlagai:\n\n"); err != nil {
		return err
	}

	for _, row := range Sorted(averages) {
		_, err := fmt.Fprintf(w, "Osztály %s:\n  Magasság: %.2f cm\n  Testsúly: %.2f kg\n\n",
			row.ClassNumber, row.AvgHeight, row.AvgWeight)
		if err != nil {
			return err
		}
	}

	return nil
}

// WriteStudent renders a single-student report under title. A nil
// student prints empty instead.
func WriteStudent(w io.Writer, title string, s *types.Student, empty string) error {
	if s == nil {
		_, err := fmt.Fprintln(w, empty)
		return err
	}

	_, err := fmt.Fprintf(w, "%s:\n\nNév: %s\nMagasság: %s cm\nTestsúly: %s kg\nOsztály: %s\n",
		title, s.Name, formatMeasure(s.Height), formatMeasure(s.Weight), s.ClassNumber)
	return err
}

// formatMeasure prints the shortest exact form: 160 rather than 160.00.
func formatMeasure(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
