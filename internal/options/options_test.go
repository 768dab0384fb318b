package options

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestInstructionsPerFrame(t *testing.T) {
	tests := []struct {
		speed    int
		expected int
	}{
		{DefaultSpeed, 11},
		{600, 10},
		{60, 1},
		{30, 1},
		{0, 1},
	}

	for _, tt := range tests {
		opts := Program{Flags: Flags{Speed: tt.speed}}
		assert.Equal(t, tt.expected, opts.InstructionsPerFrame())
	}
}
