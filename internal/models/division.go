package models

import (
	"errors"
	"slices"
)

// ErrInvalidDivision is returned for a label outside Divisions.
var ErrInvalidDivision = errors.New("invalid division")

// Divisions are the training-day labels a workout can be filed under,
// in picklist order.
var Divisions = []string{"A", "B", "C", "D", "E", "F", "G"}

// ParseDivision returns label unchanged if it is one of Divisions.
func ParseDivision(label string) (string, error) {
	if !slices.Contains(Divisions, label) {
		return "", ErrInvalidDivision
	}
	return label, nil
}
