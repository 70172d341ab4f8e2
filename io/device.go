// Package io provides the peripheral devices attached to the CHIP-8 virtual
// machine. It includes the Display contract with its 64x32 Framebuffer, the
// Keypad contract with the 16-key Keys pad, the built-in font glyphs, and ROM
// image reading.
package io

// Display is the framebuffer surface the CPU draws sprites onto.
// Pixels are addressed with (0, 0) at the top left.
type Display interface {
	// SetPixel XORs value into the pixel at (x, y) and reports whether a lit
	// pixel was erased by the write.
	SetPixel(x, y int, value bool) (erased bool)
	// Clear turns every pixel off.
	Clear()
}

// Keypad reports the state of the 16-key hexadecimal keypad.
type Keypad interface {
	// Pressed returns true if the key (0x0-0xF) is held down.
	Pressed(key uint8) bool
	// Any returns the lowest numbered key held down, if any.
	Any() (key uint8, ok bool)
}
