package cpu

import (
	"iter"
)

// Op identifies an instruction of the CHIP-8 instruction set.
type Op int

//go:generate go tool stringer -linecomment -type=Op,ArgKind
const (
	OP_DISPLAY_CLEAR           = Op(0)  // display_clear
	OP_RETURN                  = Op(1)  // return
	OP_JUMP                    = Op(2)  // jump
	OP_CALL                    = Op(3)  // call
	OP_SKIP_EQUAL              = Op(4)  // skip_equal
	OP_SKIP_NOT_EQUAL          = Op(5)  // skip_not_equal
	OP_SKIP_EQUAL_REGISTER     = Op(6)  // skip_equal_register
	OP_LOAD_BYTE_TO_VX         = Op(7)  // load_byte_to_vx
	OP_ADD_BYTE_TO_VX          = Op(8)  // add_byte_to_vx
	OP_SET_VX_TO_VY            = Op(9)  // set_vx_to_vy
	OP_OR_VX_VY                = Op(10) // or_vx_vy
	OP_AND_VX_VY               = Op(11) // and_vx_vy
	OP_XOR_VX_VY               = Op(12) // xor_vx_vy
	OP_ADD_VX_VY               = Op(13) // add_vx_vy
	OP_SUB_VX_VY               = Op(14) // sub_vx_vy
	OP_SHR_VX_VY               = Op(15) // shr_vx_vy
	OP_SUBN_VX_VY              = Op(16) // subn_vx_vy
	OP_SHL_VX_VY               = Op(17) // shl_vx_vy
	OP_SKIP_NOT_EQUAL_REGISTER = Op(18) // skip_not_equal_register
	OP_LOAD_ADDRESS            = Op(19) // load_address
	OP_JUMP_OFFSET             = Op(20) // jump_offset
	OP_RANDOM                  = Op(21) // random
	OP_DRAW                    = Op(22) // draw
	OP_SKIP_KEY_PRESSED        = Op(23) // skip_key_pressed
	OP_SKIP_KEY_NOT_PRESSED    = Op(24) // skip_key_not_pressed
	OP_LOAD_DELAY_TIMER        = Op(25) // load_delay_timer
	OP_WAIT_KEY_PRESS          = Op(26) // wait_key_press
	OP_SET_DELAY_TIMER         = Op(27) // set_delay_timer
	OP_SET_SOUND_TIMER         = Op(28) // set_sound_timer
	OP_ADD_I                   = Op(29) // add_i
	OP_LOAD_SPRITE             = Op(30) // load_sprite
	OP_LOAD_BCD                = Op(31) // load_bcd
	OP_STORE_MEMORY            = Op(32) // store_memory
	OP_READ_MEMORY             = Op(33) // read_memory
)

// ArgKind is the semantic kind of an instruction argument.
type ArgKind int

const (
	ARG_REGISTER = ArgKind(0) // register
	ARG_ADDRESS  = ArgKind(1) // address
	ARG_BYTE     = ArgKind(2) // byte
	ARG_NIBBLE   = ArgKind(3) // nibble
)

// Argument describes where an argument is encoded in an instruction word.
type Argument struct {
	Mask  uint16  // Bits of the word holding the argument.
	Shift uint    // Right shift applied after masking.
	Kind  ArgKind // Semantic kind.
}

// Limit returns the largest value the argument can encode.
func (arg Argument) Limit() uint16 {
	return arg.Mask >> arg.Shift
}

// Instruction describes a single instruction of the instruction set.
// A word w encodes the instruction when w & Mask == Opcode.
type Instruction struct {
	Op     Op
	Opcode uint16
	Mask   uint16
	Args   []Argument
}

// Name returns the instruction name.
func (ins *Instruction) Name() string {
	return ins.Op.String()
}

var (
	argX    = Argument{Mask: 0x0F00, Shift: 8, Kind: ARG_REGISTER}
	argY    = Argument{Mask: 0x00F0, Shift: 4, Kind: ARG_REGISTER}
	argNNN  = Argument{Mask: 0x0FFF, Shift: 0, Kind: ARG_ADDRESS}
	argKK   = Argument{Mask: 0x00FF, Shift: 0, Kind: ARG_BYTE}
	argN    = Argument{Mask: 0x000F, Shift: 0, Kind: ARG_NIBBLE}
	argsXY  = []Argument{argX, argY}
	argsXKK = []Argument{argX, argKK}
	argsX   = []Argument{argX}
	argsNNN = []Argument{argNNN}
)

// catalog is the CHIP-8 instruction set, in opcode order.
var catalog = [...]Instruction{
	{OP_DISPLAY_CLEAR, 0x00E0, 0xFFFF, nil},
	{OP_RETURN, 0x00EE, 0xFFFF, nil},
	{OP_JUMP, 0x1000, 0xF000, argsNNN},
	{OP_CALL, 0x2000, 0xF000, argsNNN},
	{OP_SKIP_EQUAL, 0x3000, 0xF000, argsXKK},
	{OP_SKIP_NOT_EQUAL, 0x4000, 0xF000, argsXKK},
	{OP_SKIP_EQUAL_REGISTER, 0x5000, 0xF00F, argsXY},
	{OP_LOAD_BYTE_TO_VX, 0x6000, 0xF000, argsXKK},
	{OP_ADD_BYTE_TO_VX, 0x7000, 0xF000, argsXKK},
	{OP_SET_VX_TO_VY, 0x8000, 0xF00F, argsXY},
	{OP_OR_VX_VY, 0x8001, 0xF00F, argsXY},
	{OP_AND_VX_VY, 0x8002, 0xF00F, argsXY},
	{OP_XOR_VX_VY, 0x8003, 0xF00F, argsXY},
	{OP_ADD_VX_VY, 0x8004, 0xF00F, argsXY},
	{OP_SUB_VX_VY, 0x8005, 0xF00F, argsXY},
	{OP_SHR_VX_VY, 0x8006, 0xF00F, argsXY},
	{OP_SUBN_VX_VY, 0x8007, 0xF00F, argsXY},
	{OP_SHL_VX_VY, 0x800E, 0xF00F, argsXY},
	{OP_SKIP_NOT_EQUAL_REGISTER, 0x9000, 0xF00F, argsXY},
	{OP_LOAD_ADDRESS, 0xA000, 0xF000, argsNNN},
	{OP_JUMP_OFFSET, 0xB000, 0xF000, argsNNN},
	{OP_RANDOM, 0xC000, 0xF000, argsXKK},
	{OP_DRAW, 0xD000, 0xF000, []Argument{argX, argY, argN}},
	{OP_SKIP_KEY_PRESSED, 0xE09E, 0xF0FF, argsX},
	{OP_SKIP_KEY_NOT_PRESSED, 0xE0A1, 0xF0FF, argsX},
	{OP_LOAD_DELAY_TIMER, 0xF007, 0xF0FF, argsX},
	{OP_WAIT_KEY_PRESS, 0xF00A, 0xF0FF, argsX},
	{OP_SET_DELAY_TIMER, 0xF015, 0xF0FF, argsX},
	{OP_SET_SOUND_TIMER, 0xF018, 0xF0FF, argsX},
	{OP_ADD_I, 0xF01E, 0xF0FF, argsX},
	{OP_LOAD_SPRITE, 0xF029, 0xF0FF, argsX},
	{OP_LOAD_BCD, 0xF033, 0xF0FF, argsX},
	{OP_STORE_MEMORY, 0xF055, 0xF0FF, argsX},
	{OP_READ_MEMORY, 0xF065, 0xF0FF, argsX},
}

// byNibble indexes the catalog by the high nibble of the opcode.
var byNibble = func() (index [16][]*Instruction) {
	for n := range catalog {
		ins := &catalog[n]
		nibble := ins.Opcode >> 12
		index[nibble] = append(index[nibble], ins)
	}
	return
}()

// Instructions returns an iterator over the instruction catalog, in opcode order.
// The instructions must not be modified.
func Instructions() iter.Seq[*Instruction] {
	return func(yield func(ins *Instruction) bool) {
		for n := range catalog {
			if !yield(&catalog[n]) {
				return
			}
		}
	}
}

// Lookup returns the catalog entry of an op.
func Lookup(op Op) (ins *Instruction, ok bool) {
	if op < 0 || int(op) >= len(catalog) {
		return
	}

	// The catalog is laid out in Op order.
	return &catalog[op], true
}
