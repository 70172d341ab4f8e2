// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"iter"
	"maps"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ezrec/chip8/cpu"
	"github.com/ezrec/chip8/internal"
	"github.com/ezrec/chip8/io"
)

const (
	CYCLES_PER_FRAME = 10 // Default instructions executed per frame.
	FRAME_RATE       = 60 // Frames per second, and timer decrement rate.
)

var _emulator_defines = map[string]string{
	"FRAME_RATE": fmt.Sprintf("%v", FRAME_RATE),
}

// Emulator state. CPU + display + keypad + ROM.
type Emulator struct {
	Verbose  bool               // If set, enables verbose logging.
	Log      logrus.FieldLogger // Destination of verbose logging.
	*cpu.Cpu                    // Reference to the CPU simulation.
	Program  *cpu.Program       // Reference to the currently running program listing.

	Screen  io.Framebuffer // Display.
	Keys    io.Keys        // Keypad.
	Rom     io.Rom         // ROM image, used when Program is empty.
	History History        // Recently executed addresses.

	CyclesPerFrame int // Instructions executed per Frame().
}

// NewEmulator creates a new emulator, with a time seeded random source.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Log:            logrus.StandardLogger(),
		Program:        &cpu.Program{},
		CyclesPerFrame: CYCLES_PER_FRAME,
	}

	emu.Cpu = cpu.NewCpu(&emu.Screen, rand.New(rand.NewSource(time.Now().UnixNano())))
	emu.Cpu.Log = emu.Log
	emu.Cpu.Keypad = &emu.Keys

	return
}

// Seed replaces the random source with a deterministic one.
func (emu *Emulator) Seed(seed int64) {
	emu.Cpu.Random = rand.New(rand.NewSource(seed))
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
		emu.Screen.Defines(),
	)
}

// Reset the emulator state, and load the font and program.
// The program is the assembled Program if it has any opcodes, or the Rom.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = false

	if len(emu.Program.Opcodes) > 0 {
		emu.Rom.Data = emu.Program.Binary()
	}

	emu.Cpu.Reset()
	emu.Keys.Reset()
	emu.History.Rewind()

	err = emu.Cpu.Load(cpu.FONT_BASE, io.FONT[:])
	if err != nil {
		return
	}

	err = emu.Cpu.Load(cpu.PROGRAM_START, emu.Rom.Data)
	if err != nil {
		return
	}

	if emu.Verbose {
		emu.Log.WithFields(logrus.Fields{
			"rom":     len(emu.Rom.Data),
			"opcodes": len(emu.Program.Opcodes),
		}).Info("emulator: reset")
	}

	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Log = emu.Log

	return
}

// Ticks returns the total instructions executed since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Address returns the current program counter.
func (emu *Emulator) Address() uint16 {
	return emu.Cpu.Pc
}

// Code returns the instruction at the program counter.
func (emu *Emulator) Code() (code cpu.Decoded) {
	word, err := emu.Cpu.Fetch()
	if err != nil {
		return
	}

	code, _ = cpu.Decode(word)
	code.Word = word
	return
}

// LineNo returns the current line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	dbg := emu.Program.Debug(emu.Cpu.Pc)
	if dbg.Opcode == nil {
		return 0
	}

	return dbg.LineNo
}

// Sound returns true while the sound timer is running.
func (emu *Emulator) Sound() bool {
	return emu.Cpu.Sound > 0
}

// TickTimers decrements the delay and sound timers, once per frame.
func (emu *Emulator) TickTimers() {
	if emu.Cpu.Delay > 0 {
		emu.Cpu.Delay--
	}
	if emu.Cpu.Sound > 0 {
		emu.Cpu.Sound--
	}
}

// Tick performs a single instruction of the emulator.
// The emulator is done when the program jumps to itself.
func (emu *Emulator) Tick() (done bool, err error) {
	// CPU tracing follows the emulator.
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Log = emu.Log

	address := emu.Cpu.Pc
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{Address: address, LineNo: lineno, Err: err}
		}
	}()

	emu.History.Record(address)

	code, err := emu.Cpu.Step()
	if err != nil {
		return
	}

	done = code.Op == cpu.OP_JUMP && emu.Cpu.Pc == address

	return
}

// Frame executes CyclesPerFrame instructions, stopping early when done,
// then decrements the timers.
func (emu *Emulator) Frame() (done bool, err error) {
	for range emu.CyclesPerFrame {
		done, err = emu.Tick()
		if err != nil {
			return
		}
		if done {
			break
		}
	}

	emu.TickTimers()

	return
}

// Backtrace returns the recently executed instructions, oldest first.
func (emu *Emulator) Backtrace() iter.Seq2[uint16, cpu.Decoded] {
	return func(yield func(address uint16, code cpu.Decoded) bool) {
		for address := range emu.History.All() {
			var code cpu.Decoded
			if int(address)+1 < cpu.MEMORY_SIZE {
				word := uint16(emu.Cpu.Memory[address])<<8 | uint16(emu.Cpu.Memory[address+1])
				code, _ = cpu.Decode(word)
				code.Word = word
			}
			if !yield(address, code) {
				return
			}
		}
	}
}
