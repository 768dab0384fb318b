// Package keymap maps the left hand block of a QWERTY keyboard to the
// hexadecimal CHIP-8 keypad:
//
//	1 2 3 4        1 2 3 C
//	Q W E R   ->   4 5 6 D
//	A S D F        7 8 9 E
//	Z X C V        A 0 B F
package keymap

import "unicode"

// layout is indexed by keypad key.
var layout = [16]rune{
	'x', '1', '2', '3',
	'q', 'w', 'e', 'a',
	's', 'd', 'z', 'c',
	'4', 'r', 'f', 'v',
}

// Key returns the keypad key for a keyboard character.
func Key(ch rune) (byte, bool) {
	ch = unicode.ToLower(ch)
	for key, r := range layout {
		if r == ch {
			return byte(key), true
		}
	}
	return 0, false
}

// Rune returns the keyboard character of a keypad key.
func Rune(key byte) rune {
	return layout[key&0xF]
}
