package io

import (
	"bufio"
	"io"
	"iter"
	"maps"
	"strconv"
	"strings"
)

const (
	SCREEN_WIDTH  = 64 // Display width in pixels.
	SCREEN_HEIGHT = 32 // Display height in pixels.
)

// Framebuffer is the monochrome 64x32 Display of the CHIP-8.
type Framebuffer struct {
	Cell [SCREEN_HEIGHT][SCREEN_WIDTH]bool

	dirty bool
}

var _ Display = (*Framebuffer)(nil)

// Defines returns an iter of defines for the display.
func (fb *Framebuffer) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"SCREEN_WIDTH":  strconv.Itoa(SCREEN_WIDTH),
		"SCREEN_HEIGHT": strconv.Itoa(SCREEN_HEIGHT),
	})
}

// SetPixel XORs value into the cell at (x, y).
// Coordinates outside of the display are ignored.
func (fb *Framebuffer) SetPixel(x, y int, value bool) (erased bool) {
	if !value || x < 0 || y < 0 || x >= SCREEN_WIDTH || y >= SCREEN_HEIGHT {
		return
	}

	cell := &fb.Cell[y][x]
	erased = *cell
	*cell = !*cell
	fb.dirty = true

	return
}

// Pixel returns the state of the cell at (x, y).
func (fb *Framebuffer) Pixel(x, y int) bool {
	if x < 0 || y < 0 || x >= SCREEN_WIDTH || y >= SCREEN_HEIGHT {
		return false
	}
	return fb.Cell[y][x]
}

// Clear turns off all cells.
func (fb *Framebuffer) Clear() {
	clear(fb.Cell[:])
	fb.dirty = true
}

// Dirty returns true if the framebuffer changed since the last Clean().
func (fb *Framebuffer) Dirty() bool {
	return fb.dirty
}

// Clean marks the framebuffer as presented.
func (fb *Framebuffer) Clean() {
	fb.dirty = false
}

// Lit returns the number of lit cells.
func (fb *Framebuffer) Lit() (count int) {
	for y := range SCREEN_HEIGHT {
		for x := range SCREEN_WIDTH {
			if fb.Cell[y][x] {
				count++
			}
		}
	}
	return
}

// Render writes the framebuffer as text, one line per row, using on and
// off for the cell glyphs.
func (fb *Framebuffer) Render(w io.Writer, on, off string) (err error) {
	out := bufio.NewWriter(w)
	for y := range SCREEN_HEIGHT {
		for x := range SCREEN_WIDTH {
			glyph := off
			if fb.Cell[y][x] {
				glyph = on
			}
			_, err = out.WriteString(glyph)
			if err != nil {
				return
			}
		}
		err = out.WriteByte('\n')
		if err != nil {
			return
		}
	}

	err = out.Flush()
	return
}

// String renders the framebuffer with '#' and '.' cells.
func (fb *Framebuffer) String() string {
	var sb strings.Builder
	fb.Render(&sb, "#", ".")
	return sb.String()
}
