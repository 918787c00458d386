package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUniqueUint(t *testing.T) {
	tests := []struct {
		name     string
		input    []uint
		expected []uint
	}{
		{
			name:     "removes duplicates keeping order",
			input:    []uint{3, 1, 3, 2, 1},
			expected: []uint{3, 1, 2},
		},
		{
			name:     "already unique",
			input:    []uint{1, 2, 3},
			expected: []uint{1, 2, 3},
		},
		{
			name:     "empty",
			input:    nil,
			expected: []uint{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, UniqueUint(tt.input))
		})
	}
}
