package main

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/chip8/io"
)

func TestKeypadKey(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		char byte
		key  uint8
		ok   bool
	}){
		{'1', 0x1, true},
		{'4', 0xC, true},
		{'w', 0x5, true},
		{'W', 0x5, true},
		{'x', 0x0, true},
		{'v', 0xF, true},
		{'5', 0, false},
		{' ', 0, false},
	}

	for _, entry := range table {
		key, ok := keypadKey(entry.char)
		assert.Equal(entry.ok, ok, string(entry.char))
		assert.Equal(entry.key, key, string(entry.char))
	}

	// Every keypad key is reachable.
	seen := map[uint8]bool{}
	for _, key := range keymap {
		seen[key] = true
	}
	assert.Equal(io.KEY_COUNT, len(seen))
}

func TestFrameText(t *testing.T) {
	assert := assert.New(t)

	fb := &io.Framebuffer{}
	fb.SetPixel(0, 0, true)

	text := frameText(fb)
	lines := strings.Split(text, "\r\n")
	assert.Equal(io.SCREEN_HEIGHT+1, len(lines))
	assert.True(strings.HasPrefix(lines[0], "██  "))
	assert.Equal(strings.Repeat("  ", io.SCREEN_WIDTH), lines[1])
}

func TestNewTerminal_NotATerminal(t *testing.T) {
	assert := assert.New(t)

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	defer w.Close()

	pt, err := newTerminal(r, w)
	assert.Error(err)
	assert.Nil(pt)
}
