package cpu

import (
	"fmt"
	"iter"
	"maps"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ezrec/chip8/io"
)

// Display is the framebuffer the CPU draws onto.
type Display io.Display

// Keypad is the hexadecimal keypad the CPU polls.
type Keypad io.Keypad

// Random is a source of random numbers, such as *rand.Rand.
type Random interface {
	Uint32() uint32
}

// Memory layout and register constants.
const (
	MEMORY_SIZE    = 0x1000 // Addressable memory.
	PROGRAM_START  = 0x200  // Start of program memory, and initial PC.
	FONT_BASE      = 0x000  // Address of the built-in font glyphs.
	REGISTER_COUNT = 16     // Number of V registers.
	REG_FLAG       = 0xF    // VF, the carry/borrow/collision flag.
	WORD_SIZE      = 2      // Bytes per instruction word.
)

var _cpu_defines = map[string]string{
	"MEMORY_SIZE":     fmt.Sprintf("0x%x", MEMORY_SIZE),
	"PROGRAM_START":   fmt.Sprintf("0x%x", PROGRAM_START),
	"FONT_BASE":       fmt.Sprintf("0x%x", FONT_BASE),
	"FONT_GLYPH_SIZE": fmt.Sprintf("%d", io.FONT_GLYPH_SIZE),
	"STACK_LIMIT":     fmt.Sprintf("%d", STACK_LIMIT),
}

// Quirks selects between historical interpretations of ambiguous instructions.
type Quirks struct {
	// ShiftUsesVy shifts Vy into Vx, as the COSMAC VIP interpreter did,
	// instead of shifting Vx in place.
	ShiftUsesVy bool
	// MemoryIncrementsI advances I past the transferred registers on
	// store_memory and read_memory.
	MemoryIncrementsI bool
}

// Cpu is the CHIP-8 virtual machine state.
//
// A Cpu is not safe for concurrent use; callers serialize Step().
type Cpu struct {
	Verbose bool               // Set to enable verbose logging.
	Log     logrus.FieldLogger // Destination of verbose logging.
	Quirks  Quirks             // Instruction interpretation.

	Display Display // Framebuffer for display_clear and draw.
	Keypad  Keypad  // Keypad for the key instructions, optional.
	Random  Random  // Random source for the random instruction.

	Memory [MEMORY_SIZE]byte    // Main memory.
	V      [REGISTER_COUNT]uint8 // Register bank.
	I      uint16               // Index register.
	Pc     uint16               // Program counter.
	Stack  Stack                // Return address stack.
	Delay  uint8                // Delay timer.
	Sound  uint8                // Sound timer.

	Ticks int // Instructions executed counter.
}

// NewCpu creates a CPU in the reset state, attached to a display and a
// random source.
func NewCpu(display Display, random Random) (cpu *Cpu) {
	cpu = &Cpu{
		Log:     logrus.StandardLogger(),
		Display: display,
		Random:  random,
		Pc:      PROGRAM_START,
		Stack:   NewStack(),
	}

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Reset the CPU state.
// - Clears memory, registers, stack, and timers.
// - Clears the display.
// - Sets the PC to the program start.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		cpu.Log.Info("cpu: reset")
	}

	clear(cpu.Memory[:])
	clear(cpu.V[:])
	cpu.I = 0
	cpu.Pc = PROGRAM_START
	cpu.Stack.Reset()
	cpu.Delay = 0
	cpu.Sound = 0
	cpu.Ticks = 0

	if cpu.Display != nil {
		cpu.Display.Clear()
	}
}

// Load copies data into memory at address.
func (cpu *Cpu) Load(address uint16, data []byte) (err error) {
	if int(address)+len(data) > MEMORY_SIZE {
		err = ErrIndexOutOfBounds
		return
	}

	copy(cpu.Memory[address:], data)
	return
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "   pc: %03X\n", cpu.Pc)
	fmt.Fprintf(&sb, "    i: %03X\n", cpu.I)
	for n, val := range cpu.V {
		fmt.Fprintf(&sb, "   v%X: %02X\n", n, val)
	}
	if top, ok := cpu.Stack.Peek(); ok {
		fmt.Fprintf(&sb, "stack: %03X (%d)\n", top, cpu.Stack.Depth())
	} else {
		fmt.Fprintf(&sb, "stack: ---\n")
	}
	fmt.Fprintf(&sb, "delay: %02X\n", cpu.Delay)
	fmt.Fprintf(&sb, "sound: %02X\n", cpu.Sound)

	text = sb.String()
	return
}

// Fetch reads the big-endian instruction word at the PC.
func (cpu *Cpu) Fetch() (word uint16, err error) {
	if int(cpu.Pc)+1 >= MEMORY_SIZE {
		err = ErrIndexOutOfBounds
		return
	}

	word = uint16(cpu.Memory[cpu.Pc])<<8 | uint16(cpu.Memory[cpu.Pc+1])
	return
}

// Step executes a single instruction cycle, returning the instruction
// that was executed.
func (cpu *Cpu) Step() (code Decoded, err error) {
	word, err := cpu.Fetch()
	if err != nil {
		return
	}

	code, err = Decode(word)
	if err != nil {
		return
	}

	err = cpu.Execute(code)
	return
}

// Execute executes a single decoded instruction located at the PC.
//
// Every precondition is checked before any state is modified, so a
// failed instruction leaves the CPU untouched.
func (cpu *Cpu) Execute(code Decoded) (err error) {
	if code.Instruction == nil {
		err = ErrUnknownInstruction(code.Word)
		return
	}

	if len(code.Args) != len(code.Instruction.Args) {
		err = ErrArgumentCount
		return
	}
	for n, arg := range code.Instruction.Args {
		if code.Args[n] > arg.Limit() {
			err = ErrArgument
			return
		}
	}

	if cpu.Verbose {
		cpu.Log.WithFields(logrus.Fields{
			"pc":   fmt.Sprintf("%03x", cpu.Pc),
			"word": fmt.Sprintf("%04x", code.Word),
			"op":   code.Name(),
		}).Info(code.String())
	}

	next_pc := cpu.Pc + WORD_SIZE

	x := code.arg(0)
	y := code.arg(1)
	kk := uint8(y)
	vx := cpu.V[x&0xf]
	vy := cpu.V[y&0xf]

	skip := func(cond bool) {
		if cond {
			next_pc += WORD_SIZE
		}
	}

	// set_flag writes the result, then VF, so VF wins when x is F.
	set_flag := func(value uint8, flag bool) {
		cpu.V[x] = value
		cpu.V[REG_FLAG] = 0
		if flag {
			cpu.V[REG_FLAG] = 1
		}
	}

	switch code.Op {
	case OP_DISPLAY_CLEAR:
		if cpu.Display == nil {
			err = ErrNotImplemented(code.Name())
			return
		}
		cpu.Display.Clear()
	case OP_RETURN:
		addr, ok := cpu.Stack.Pop()
		if !ok {
			err = ErrStackUnderflow
			return
		}
		next_pc = addr
	case OP_CALL:
		if !cpu.Stack.Push(next_pc) {
			err = ErrStackOverflow
			return
		}
		next_pc = code.arg(0)
	case OP_JUMP:
		next_pc = code.arg(0)
	case OP_JUMP_OFFSET:
		next_pc = code.arg(0) + uint16(cpu.V[0])
	case OP_SKIP_EQUAL:
		skip(vx == kk)
	case OP_SKIP_NOT_EQUAL:
		skip(vx != kk)
	case OP_SKIP_EQUAL_REGISTER:
		skip(vx == vy)
	case OP_SKIP_NOT_EQUAL_REGISTER:
		skip(vx != vy)
	case OP_LOAD_BYTE_TO_VX:
		cpu.V[x] = kk
	case OP_ADD_BYTE_TO_VX:
		cpu.V[x] = vx + kk
	case OP_SET_VX_TO_VY:
		cpu.V[x] = vy
	case OP_OR_VX_VY:
		cpu.V[x] = vx | vy
	case OP_AND_VX_VY:
		cpu.V[x] = vx & vy
	case OP_XOR_VX_VY:
		cpu.V[x] = vx ^ vy
	case OP_ADD_VX_VY:
		sum := uint16(vx) + uint16(vy)
		set_flag(uint8(sum), sum > 0xff)
	case OP_SUB_VX_VY:
		set_flag(vx-vy, vx >= vy)
	case OP_SUBN_VX_VY:
		set_flag(vy-vx, vy >= vx)
	case OP_SHR_VX_VY:
		src := vx
		if cpu.Quirks.ShiftUsesVy {
			src = vy
		}
		set_flag(src>>1, src&0x01 != 0)
	case OP_SHL_VX_VY:
		src := vx
		if cpu.Quirks.ShiftUsesVy {
			src = vy
		}
		set_flag(src<<1, src&0x80 != 0)
	case OP_RANDOM:
		if cpu.Random == nil {
			err = ErrNotImplemented(code.Name())
			return
		}
		cpu.V[x] = uint8(cpu.Random.Uint32()) & kk
	case OP_LOAD_ADDRESS:
		cpu.I = code.arg(0)
	case OP_ADD_I:
		cpu.I += uint16(vx)
	case OP_LOAD_SPRITE:
		cpu.I = FONT_BASE + uint16(vx)*io.FONT_GLYPH_SIZE
	case OP_LOAD_BCD:
		if int(cpu.I)+2 >= MEMORY_SIZE {
			err = ErrIndexOutOfBounds
			return
		}
		cpu.Memory[cpu.I] = vx / 100
		cpu.Memory[cpu.I+1] = (vx / 10) % 10
		cpu.Memory[cpu.I+2] = vx % 10
	case OP_STORE_MEMORY:
		if int(cpu.I)+int(x) >= MEMORY_SIZE {
			err = ErrIndexOutOfBounds
			return
		}
		copy(cpu.Memory[cpu.I:int(cpu.I)+int(x)+1], cpu.V[:x+1])
		if cpu.Quirks.MemoryIncrementsI {
			cpu.I += x + 1
		}
	case OP_READ_MEMORY:
		if int(cpu.I)+int(x) >= MEMORY_SIZE {
			err = ErrIndexOutOfBounds
			return
		}
		copy(cpu.V[:x+1], cpu.Memory[cpu.I:int(cpu.I)+int(x)+1])
		if cpu.Quirks.MemoryIncrementsI {
			cpu.I += x + 1
		}
	case OP_DRAW:
		err = cpu.draw(vx, vy, int(code.arg(2)))
		if err != nil {
			return
		}
	case OP_LOAD_DELAY_TIMER:
		cpu.V[x] = cpu.Delay
	case OP_SET_DELAY_TIMER:
		cpu.Delay = vx
	case OP_SET_SOUND_TIMER:
		cpu.Sound = vx
	case OP_SKIP_KEY_PRESSED, OP_SKIP_KEY_NOT_PRESSED, OP_WAIT_KEY_PRESS:
		if cpu.Keypad == nil {
			err = ErrNotImplemented(code.Name())
			return
		}
		switch code.Op {
		case OP_SKIP_KEY_PRESSED:
			skip(cpu.Keypad.Pressed(vx & 0xf))
		case OP_SKIP_KEY_NOT_PRESSED:
			skip(!cpu.Keypad.Pressed(vx & 0xf))
		case OP_WAIT_KEY_PRESS:
			key, ok := cpu.Keypad.Any()
			if !ok {
				// Don't advance to next PC.
				next_pc = cpu.Pc
			} else {
				cpu.V[x] = key
			}
		}
	default:
		err = ErrUnknownInstruction(code.Word)
		return
	}

	cpu.Pc = next_pc
	cpu.Ticks++

	return
}

// draw XORs an n byte sprite at I onto the display at (vx, vy), wrapping
// around the display edges. VF is set if any lit pixel was erased.
func (cpu *Cpu) draw(vx, vy uint8, n int) (err error) {
	if cpu.Display == nil {
		err = ErrNotImplemented(OP_DRAW.String())
		return
	}

	if int(cpu.I)+n > MEMORY_SIZE {
		err = ErrIndexOutOfBounds
		return
	}

	collided := false
	for row := range n {
		sprite := cpu.Memory[int(cpu.I)+row]
		for col := range 8 {
			if sprite&(0x80>>col) == 0 {
				continue
			}
			px := (int(vx) + col) % io.SCREEN_WIDTH
			py := (int(vy) + row) % io.SCREEN_HEIGHT
			if cpu.Display.SetPixel(px, py, true) {
				collided = true
			}
		}
	}

	cpu.V[REG_FLAG] = 0
	if collided {
		cpu.V[REG_FLAG] = 1
	}

	return
}
