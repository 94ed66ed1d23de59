// Package csvsource reads the roster CSV file into raw rows.
//
// It does no domain parsing: a row with the wrong field count is passed
// through untouched so the roster can count it as skipped. Only a
// missing or unreadable file is an error.
package csvsource

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/aanand-mishra/student-roster/internal/types"
)

// File is a row source backed by a CSV file on disk.
type File struct {
	Path string
	// Separator defaults to ',' when zero.
	Separator rune
	// HasHeader drops the first record.
	HasHeader bool
}

// New builds a File from the textual separator used in configuration.
func New(path, separator string, hasHeader bool) (*File, error) {
	f := &File{Path: path, HasHeader: hasHeader}

	if separator != "" {
		r, size := utf8.DecodeRuneInString(separator)
		if size != len(separator) || r == utf8.RuneError || r == '"' || r == '\r' || r == '\n' {
			return nil, fmt.Errorf("csvsource.New: invalid separator %q", separator)
		}
		f.Separator = r
	}

	return f, nil
}

// Rows opens the file and returns every record in file order.
func (f *File) Rows(ctx context.Context) ([]types.Row, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("csvsource.Rows: open: %w", err)
	}
	defer file.Close()

	return f.read(ctx, file)
}

func (f *File) read(ctx context.Context, in io.Reader) ([]types.Row, error) {
	r := csv.NewReader(in)
	if f.Separator != 0 {
		r.Comma = f.Separator
	}
	// Variable field counts reach the roster instead of failing the read.
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.LazyQuotes = true

	rows := make([]types.Row, 0)
	first := true

	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("csvsource.Rows: %w", err)
		}

		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		header := first && f.HasHeader
		first = false

		if err != nil {
			// A malformed record spoils one row, not the file.
			var perr *csv.ParseError
			if !errors.As(err, &perr) {
				return nil, fmt.Errorf("csvsource.Rows: read: %w", err)
			}
			if !header {
				rows = append(rows, types.Row{Line: perr.StartLine})
			}
			continue
		}

		if header {
			continue
		}

		line, _ := r.FieldPos(0)
		for i := range record {
			record[i] = strings.TrimSpace(record[i])
		}
		if line == 1 {
			// Spreadsheet exports often start with a UTF-8 BOM.
			record[0] = strings.TrimPrefix(record[0], "\ufeff")
		}

		rows = append(rows, types.Row{Line: line, Fields: record})
	}

	return rows, nil
}
