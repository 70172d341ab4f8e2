package cpu

import (
	"fmt"
	"io"
	"iter"
	"strings"
)

// Opcode is a line of assembled source with its location and generated bytes.
type Opcode struct {
	LineNo  int      // Source line number.
	Address uint16   // Memory address of the first byte.
	Words   []string // Source words, after label and equate processing.
	Data    []byte   // Generated bytes.
	Code    bool     // Set if Data is a single instruction word.
}

// Program is an assembled CHIP-8 program, loaded at PROGRAM_START.
type Program struct {
	Opcodes []Opcode
}

// Debug locates the opcode covering an address.
type Debug struct {
	*Opcode
	Index int // Offset of the address within the opcode's data.
}

// Debug returns the opcode that generated the byte at address.
func (prog *Program) Debug(address uint16) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if address >= op.Address && int(address) < int(op.Address)+len(op.Data) {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  int(address - op.Address),
			}
			break
		}
	}

	return
}

// Binary returns the ROM image of the program.
func (prog *Program) Binary() (bins []byte) {
	for _, op := range prog.Opcodes {
		bins = append(bins, op.Data...)
	}

	return
}

// Codes returns an iterator over the instructions of the program, by address.
func (prog *Program) Codes() iter.Seq2[uint16, Decoded] {
	return func(yield func(address uint16, code Decoded) bool) {
		for _, op := range prog.Opcodes {
			if !op.Code || len(op.Data) != WORD_SIZE {
				continue
			}
			word := uint16(op.Data[0])<<8 | uint16(op.Data[1])
			code, err := Decode(word)
			if err != nil {
				continue
			}
			if !yield(op.Address, code) {
				return
			}
		}
	}
}

// Listing writes an address, hex and source listing of the program.
func (prog *Program) Listing(w io.Writer) (err error) {
	for _, op := range prog.Opcodes {
		hex := make([]string, len(op.Data))
		for n, b := range op.Data {
			hex[n] = fmt.Sprintf("%02X", b)
		}
		_, err = fmt.Fprintf(w, "%03X: %-12s ; %4d: %v\n",
			op.Address, strings.Join(hex, " "), op.LineNo, strings.Join(op.Words, " "))
		if err != nil {
			return
		}
	}
	return
}
