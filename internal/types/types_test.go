package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTrimsTextFields(t *testing.T) {
	s := Student{ID: 3, Name: "  Anna ", Gender: " Lány", Height: 160, Weight: 50, ClassNumber: "5A\t"}

	got := s.Normalize()

	assert.Equal(t, Student{ID: 3, Name: "Anna", Gender: GenderGirl, Height: 160, Weight: 50, ClassNumber: "5A"}, got)
	assert.Equal(t, "  Anna ", s.Name)
}
