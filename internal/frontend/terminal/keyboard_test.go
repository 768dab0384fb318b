package terminal

import (
	"testing"
	"time"

	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrogolib/assert"
)

func TestHeldKeys(t *testing.T) {
	m := machine.New()
	now := time.Now()

	var keys heldKeys
	keys.press(0x5, now)
	keys.press(0x1C, now) // masked to key C

	keys.apply(m, now)
	assert.True(t, m.KeyPressed(0x5))
	assert.True(t, m.KeyPressed(0xC))
	assert.False(t, m.KeyPressed(0x0))

	keys.press(0xC, now.Add(keyHoldDuration/2))
	keys.apply(m, now.Add(keyHoldDuration))
	assert.False(t, m.KeyPressed(0x5))
	assert.True(t, m.KeyPressed(0xC))

	keys.reset()
	keys.apply(m, now)
	_, ok := m.FirstPressedKey()
	assert.False(t, ok)
}
