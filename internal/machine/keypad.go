package machine

// SetKey sets the pressed state of a keypad key. Keys outside 0x0-0xF are ignored.
func (m *Machine) SetKey(key byte, pressed bool) {
	if int(key) >= KeyCount {
		return
	}
	m.keys[key] = pressed
}

// KeyPressed returns whether the key identified by the low nibble of key is pressed.
func (m *Machine) KeyPressed(key byte) bool {
	return m.keys[key&0xF]
}

// FirstPressedKey returns the lowest pressed key.
func (m *Machine) FirstPressedKey() (byte, bool) {
	for i, pressed := range m.keys {
		if pressed {
			return byte(i), true
		}
	}
	return 0, false
}

// ReleaseKeys releases all keys.
func (m *Machine) ReleaseKeys() {
	m.keys = [KeyCount]bool{}
}
