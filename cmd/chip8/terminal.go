package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"

	"github.com/ezrec/chip8/emulator"
	"github.com/ezrec/chip8/io"
)

const (
	KEY_HOLD = 150 * time.Millisecond // Terminals report presses only.

	CHAR_ESC    = 0x1b
	CHAR_CTRL_C = 0x03

	ANSI_HOME        = "\x1b[H"
	ANSI_CLEAR       = "\x1b[2J"
	ANSI_HIDE_CURSOR = "\x1b[?25l"
	ANSI_SHOW_CURSOR = "\x1b[?25h"
)

// keymap maps the left hand QWERTY block onto the hexadecimal keypad.
//
//	1 2 3 4     1 2 3 C
//	q w e r     4 5 6 D
//	a s d f     7 8 9 E
//	z x c v     A 0 B F
var keymap = map[byte]uint8{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// keypadKey returns the keypad key for a terminal character.
func keypadKey(char byte) (key uint8, ok bool) {
	if char >= 'A' && char <= 'Z' {
		char += 'a' - 'A'
	}
	key, ok = keymap[char]
	return
}

// frameText renders the display for a raw mode terminal.
func frameText(fb *io.Framebuffer) string {
	var sb strings.Builder
	fb.Render(&sb, "██", "  ")

	// Raw mode does no output processing.
	return strings.ReplaceAll(sb.String(), "\n", "\r\n")
}

// terminal is a posix terminal in raw mode.
type terminal struct {
	input  *os.File
	output *os.File

	canAttr unix.Termios
	rawAttr unix.Termios
}

func newTerminal(input, output *os.File) (pt *terminal, err error) {
	pt = &terminal{
		input:  input,
		output: output,
	}

	err = termios.Tcgetattr(pt.input.Fd(), &pt.canAttr)
	if err != nil {
		pt = nil
		return
	}
	pt.rawAttr = pt.canAttr
	termios.Cfmakeraw(&pt.rawAttr)

	return
}

// RawMode puts terminal into raw mode
func (pt *terminal) RawMode() {
	termios.Tcsetattr(pt.input.Fd(), termios.TCIFLUSH, &pt.rawAttr)
}

// CanonicalMode puts terminal into normal, everyday canonical mode
func (pt *terminal) CanonicalMode() {
	termios.Tcsetattr(pt.input.Fd(), termios.TCIFLUSH, &pt.canAttr)
}

// readKeys taps the keypad for each key read, until ESC or ctrl-C.
func (pt *terminal) readKeys(ctx context.Context, cancel context.CancelFunc, keys *io.Keys) {
	defer cancel()

	buf := make([]byte, 16)
	for ctx.Err() == nil {
		n, err := pt.input.Read(buf)
		if err != nil {
			return
		}
		for _, char := range buf[:n] {
			if char == CHAR_ESC || char == CHAR_CTRL_C {
				return
			}
			key, ok := keypadKey(char)
			if ok {
				keys.Tap(key, time.Now().Add(KEY_HOLD))
			}
		}
	}
}

// runTerminal runs the emulator at the frame rate, drawing to the terminal,
// until cancelled.
func runTerminal(ctx context.Context, emu *emulator.Emulator) (err error) {
	pt, err := newTerminal(os.Stdin, os.Stdout)
	if err != nil {
		return
	}
	pt.RawMode()
	defer pt.CanonicalMode()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go pt.readKeys(ctx, cancel, &emu.Keys)

	pt.output.WriteString(ANSI_CLEAR + ANSI_HIDE_CURSOR)
	defer pt.output.WriteString(ANSI_SHOW_CURSOR + "\r\n")

	ticker := time.NewTicker(time.Second / emulator.FRAME_RATE)
	defer ticker.Stop()

	sounding := false
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			emu.Keys.Expire(now)

			// A halted program stays on screen until ESC.
			_, err = emu.Frame()
			if err != nil {
				return
			}

			sound := emu.Sound()
			if sound && !sounding {
				pt.output.WriteString("\a")
			}
			sounding = sound

			if emu.Screen.Dirty() {
				pt.output.WriteString(ANSI_HOME + frameText(&emu.Screen))
				emu.Screen.Clean()
			}
		}
	}
}
