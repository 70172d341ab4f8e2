package cpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testProgram() *Program {
	return &Program{
		Opcodes: []Opcode{
			{LineNo: 1, Address: 0x200, Words: []string{"ld", "v0", "0x10"},
				Data: []byte{0x60, 0x10}, Code: true},
			{LineNo: 2, Address: 0x202, Words: []string{".byte", "1", "2", "3"},
				Data: []byte{0x01, 0x02, 0x03}},
			{LineNo: 4, Address: 0x205, Words: []string{"cls"},
				Data: []byte{0x00, 0xE0}, Code: true},
		},
	}
}

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	dbg := prog.Debug(0x200)
	assert.NotNil(dbg.Opcode)
	assert.Equal(1, dbg.Opcode.LineNo)
	assert.Equal(0, dbg.Index)

	dbg = prog.Debug(0x201)
	assert.NotNil(dbg.Opcode)
	assert.Equal(1, dbg.Opcode.LineNo)
	assert.Equal(1, dbg.Index)

	dbg = prog.Debug(0x204)
	assert.NotNil(dbg.Opcode)
	assert.Equal(2, dbg.Opcode.LineNo)
	assert.Equal(2, dbg.Index)

	dbg = prog.Debug(0x206)
	assert.NotNil(dbg.Opcode)
	assert.Equal(4, dbg.Opcode.LineNo)
	assert.Equal(1, dbg.Index)
}

func TestProgram_Debug_NotFound(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	dbg := prog.Debug(0x1ff)
	assert.Nil(dbg.Opcode)
	assert.Equal(0, dbg.Index)

	dbg = prog.Debug(0x207)
	assert.Nil(dbg.Opcode)
	assert.Equal(0, dbg.Index)
}

func TestProgram_Binary(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()
	assert.Equal([]byte{0x60, 0x10, 0x01, 0x02, 0x03, 0x00, 0xE0}, prog.Binary())

	assert.Nil((&Program{}).Binary())
}

func TestProgram_Codes(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	var addresses []uint16
	var ops []Op
	for address, code := range prog.Codes() {
		addresses = append(addresses, address)
		ops = append(ops, code.Op)
	}

	assert.Equal([]uint16{0x200, 0x205}, addresses)
	assert.Equal([]Op{OP_LOAD_BYTE_TO_VX, OP_DISPLAY_CLEAR}, ops)

	// Early termination
	count := 0
	for range prog.Codes() {
		count++
		break
	}
	assert.Equal(1, count)
}

func TestProgram_Listing(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	var sb strings.Builder
	err := prog.Listing(&sb)
	assert.NoError(err)

	lines := strings.Split(strings.TrimSuffix(sb.String(), "\n"), "\n")
	assert.Equal(3, len(lines))
	assert.Equal("200: 60 10        ;    1: ld v0 0x10", lines[0])
	assert.Equal("202: 01 02 03     ;    2: .byte 1 2 3", lines[1])
	assert.Equal("205: 00 E0        ;    4: cls", lines[2])
}
