package gui

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/set"
)

func TestKeypadKeysUnique(t *testing.T) {
	seen := set.New[ebiten.Key]()
	for _, key := range keypadKeys {
		assert.False(t, seen.Contains(key), "duplicate key mapping")
		seen.Add(key)
	}
	assert.Equal(t, machine.KeyCount, len(seen))
}

func TestLayout(t *testing.T) {
	g := &game{}
	width, height := g.Layout(1280, 720)
	assert.Equal(t, machine.Width, width)
	assert.Equal(t, machine.Height, height)
}
