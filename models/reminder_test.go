package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidClock(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"00:00", true},
		{"09:30", true},
		{"12:00", true},
		{"23:59", true},
		{"9:30", false},
		{"09:5", false},
		{"24:00", false},
		{"12:60", false},
		{"0930", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidClock(tt.input))
		})
	}
}
