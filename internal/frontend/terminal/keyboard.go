package terminal

import (
	"time"

	"github.com/retroenv/retrochip8/internal/machine"
)

// keyHoldDuration is how long a key counts as held after its last key press
// event. Terminals report no key releases, auto repeat refreshes held keys.
const keyHoldDuration = 150 * time.Millisecond

// heldKeys tracks keypad state from press-only terminal key events.
type heldKeys struct {
	until [machine.KeyCount]time.Time
}

func (h *heldKeys) press(key byte, now time.Time) {
	h.until[key&0xF] = now.Add(keyHoldDuration)
}

// apply updates the machine keypad, releasing keys whose hold time expired.
func (h *heldKeys) apply(m *machine.Machine, now time.Time) {
	for key, until := range h.until {
		m.SetKey(byte(key), now.Before(until))
	}
}

func (h *heldKeys) reset() {
	h.until = [machine.KeyCount]time.Time{}
}
