package cpu

import (
	"fmt"
	"strings"
)

// Decoded is an instruction word matched against the catalog, with its
// argument values extracted in catalog order.
type Decoded struct {
	*Instruction
	Word uint16
	Args []uint16
}

// Decode matches a word to its instruction and extracts the arguments.
func Decode(word uint16) (code Decoded, err error) {
	for _, ins := range byNibble[word>>12] {
		if word&ins.Mask != ins.Opcode {
			continue
		}
		code = Decoded{
			Instruction: ins,
			Word:        word,
			Args:        make([]uint16, len(ins.Args)),
		}
		for n, arg := range ins.Args {
			code.Args[n] = (word & arg.Mask) >> arg.Shift
		}
		return
	}

	err = ErrUnknownInstruction(word)
	return
}

// Encode builds the word for an op from its argument values.
func Encode(op Op, args ...uint16) (word uint16, err error) {
	ins, ok := Lookup(op)
	if !ok {
		err = ErrUnknownInstruction(0)
		return
	}

	if len(args) != len(ins.Args) {
		err = ErrArgumentCount
		return
	}

	word = ins.Opcode
	for n, arg := range ins.Args {
		if args[n] > arg.Limit() {
			word = 0
			err = ErrArgument
			return
		}
		word |= (args[n] << arg.Shift) & arg.Mask
	}

	return
}

// arg returns the n'th argument value, or 0 if the instruction has fewer.
func (code Decoded) arg(n int) uint16 {
	if n >= len(code.Args) {
		return 0
	}
	return code.Args[n]
}

// form is the assembly language form of an instruction.
//
// Operand patterns:
//   - "Vx", "Vy": register arguments, "Vy?" may be omitted.
//   - "addr", "byte", "nibble": value arguments.
//   - anything else is a literal operand.
type form struct {
	Mnemonic string
	Operands []string
}

var formMap = map[Op]form{
	OP_DISPLAY_CLEAR:           {"cls", nil},
	OP_RETURN:                  {"ret", nil},
	OP_JUMP:                    {"jp", []string{"addr"}},
	OP_CALL:                    {"call", []string{"addr"}},
	OP_SKIP_EQUAL:              {"se", []string{"Vx", "byte"}},
	OP_SKIP_NOT_EQUAL:          {"sne", []string{"Vx", "byte"}},
	OP_SKIP_EQUAL_REGISTER:     {"se", []string{"Vx", "Vy"}},
	OP_LOAD_BYTE_TO_VX:         {"ld", []string{"Vx", "byte"}},
	OP_ADD_BYTE_TO_VX:          {"add", []string{"Vx", "byte"}},
	OP_SET_VX_TO_VY:            {"ld", []string{"Vx", "Vy"}},
	OP_OR_VX_VY:                {"or", []string{"Vx", "Vy"}},
	OP_AND_VX_VY:               {"and", []string{"Vx", "Vy"}},
	OP_XOR_VX_VY:               {"xor", []string{"Vx", "Vy"}},
	OP_ADD_VX_VY:               {"add", []string{"Vx", "Vy"}},
	OP_SUB_VX_VY:               {"sub", []string{"Vx", "Vy"}},
	OP_SHR_VX_VY:               {"shr", []string{"Vx", "Vy?"}},
	OP_SUBN_VX_VY:              {"subn", []string{"Vx", "Vy"}},
	OP_SHL_VX_VY:               {"shl", []string{"Vx", "Vy?"}},
	OP_SKIP_NOT_EQUAL_REGISTER: {"sne", []string{"Vx", "Vy"}},
	OP_LOAD_ADDRESS:            {"ld", []string{"I", "addr"}},
	OP_JUMP_OFFSET:             {"jp", []string{"V0", "addr"}},
	OP_RANDOM:                  {"rnd", []string{"Vx", "byte"}},
	OP_DRAW:                    {"drw", []string{"Vx", "Vy", "nibble"}},
	OP_SKIP_KEY_PRESSED:        {"skp", []string{"Vx"}},
	OP_SKIP_KEY_NOT_PRESSED:    {"sknp", []string{"Vx"}},
	OP_LOAD_DELAY_TIMER:        {"ld", []string{"Vx", "DT"}},
	OP_WAIT_KEY_PRESS:          {"ld", []string{"Vx", "K"}},
	OP_SET_DELAY_TIMER:         {"ld", []string{"DT", "Vx"}},
	OP_SET_SOUND_TIMER:         {"ld", []string{"ST", "Vx"}},
	OP_ADD_I:                   {"add", []string{"I", "Vx"}},
	OP_LOAD_SPRITE:             {"ld", []string{"F", "Vx"}},
	OP_LOAD_BCD:                {"ld", []string{"B", "Vx"}},
	OP_STORE_MEMORY:            {"ld", []string{"[I]", "Vx"}},
	OP_READ_MEMORY:             {"ld", []string{"Vx", "[I]"}},
}

// String returns the assembly language form of the instruction, ie "ld V1, $0A".
func (code Decoded) String() string {
	if code.Instruction == nil {
		return fmt.Sprintf(".byte $%02X $%02X", code.Word>>8, code.Word&0xff)
	}

	stx := formMap[code.Op]

	// Register and value arguments appear in catalog order.
	next := 0
	operands := make([]string, 0, len(stx.Operands))
	for _, operand := range stx.Operands {
		var text string
		switch strings.TrimSuffix(operand, "?") {
		case "Vx", "Vy":
			text = fmt.Sprintf("V%X", code.arg(next))
			next++
		case "addr":
			text = fmt.Sprintf("$%03X", code.arg(next))
			next++
		case "byte":
			text = fmt.Sprintf("$%02X", code.arg(next))
			next++
		case "nibble":
			text = fmt.Sprintf("$%X", code.arg(next))
			next++
		default:
			text = operand
		}
		operands = append(operands, text)
	}

	if len(operands) == 0 {
		return stx.Mnemonic
	}

	return stx.Mnemonic + " " + strings.Join(operands, ", ")
}
