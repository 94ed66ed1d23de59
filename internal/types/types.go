// Package types holds the shared data structures used across the
// application. Keeping them in one place prevents import cycles:
// handlers, storage, roster and report can all import types without
// depending on each other.
package types

import "strings"

// Gender is one of the two values the roster input control offers.
// The values are the Hungarian labels used in the source CSV files.
type Gender string

const (
	GenderBoy  Gender = "Fiú"
	GenderGirl Gender = "Lány"
)

// Student represents one roster entry.
//
// Struct tags serve two purposes:
//
//  1. json:"..."     — controls the field name in API responses.
//  2. validate:"..." — rules checked by go-playground/validator.
//     "required" rejects zero values, "gt=0" rejects non-positive
//     measurements and "oneof" pins gender to the known labels.
type Student struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"         validate:"required"`
	Gender      Gender  `json:"gender"       validate:"required,oneof=Fiú Lány"`
	Height      float64 `json:"height"       validate:"required,gt=0"`
	Weight      float64 `json:"weight"       validate:"required,gt=0"`
	ClassNumber string  `json:"class_number" validate:"required"`
}

// Normalize trims surrounding whitespace from the text fields so that a
// blank-looking value fails the "required" rule.
func (s Student) Normalize() Student {
	s.Name = strings.TrimSpace(s.Name)
	s.Gender = Gender(strings.TrimSpace(string(s.Gender)))
	s.ClassNumber = strings.TrimSpace(s.ClassNumber)
	return s
}

// Row is one raw record from a row source, fields in file order:
// name, gender, height, weight, class.
type Row struct {
	Line   int
	Fields []string
}
