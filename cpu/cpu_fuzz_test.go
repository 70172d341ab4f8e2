package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/chip8/io"
)

func FuzzDecode(f *testing.F) {
	for ins := range Instructions() {
		f.Add(ins.Opcode)
		f.Add(ins.Opcode | ^ins.Mask)
	}
	f.Add(uint16(0x0000))
	f.Add(uint16(0xFFFF))

	f.Fuzz(func(t *testing.T, word uint16) {
		assert := assert.New(t)

		code, err := Decode(word)
		if err != nil {
			assert.ErrorIs(err, ErrUnknownInstruction(0))
			assert.Nil(code.Instruction)
			return
		}

		assert.Equal(code.Opcode, word&code.Mask)

		again, err := Encode(code.Op, code.Args...)
		assert.NoError(err)
		assert.Equal(word, again)
	})
}

func FuzzCpu(f *testing.F) {
	for ins := range Instructions() {
		f.Add(ins.Opcode, uint16(0x300), uint8(0), false)
		f.Add(ins.Opcode|^ins.Mask, uint16(0xFFF), uint8(0xFF), true)
	}

	f.Fuzz(func(t *testing.T, word uint16, index uint16, value uint8, stacked bool) {
		assert := assert.New(t)

		screen := &io.Framebuffer{}
		cpu := NewCpu(screen, fixedRandom(0x5A))
		cpu.Keypad = &io.Keys{}
		assert.NoError(cpu.Load(FONT_BASE, io.FONT[:]))

		cpu.I = index & 0xFFF
		for n := range cpu.V {
			cpu.V[n] = value + uint8(n)
		}
		if stacked {
			for cpu.Stack.Push(0x400) {
			}
		}

		code, err := Decode(word)
		if err != nil {
			return
		}

		before := takeSnapshot(cpu)
		lit := screen.Lit()

		err = cpu.Execute(code)
		if err != nil {
			// Failed instructions have no side effects.
			assert.Equal(before, takeSnapshot(cpu))
			assert.Equal(lit, screen.Lit())
			assert.Equal(0, cpu.Ticks)
			return
		}

		assert.Equal(1, cpu.Ticks)

		switch code.Op {
		case OP_ADD_VX_VY, OP_SUB_VX_VY, OP_SUBN_VX_VY, OP_SHR_VX_VY, OP_SHL_VX_VY, OP_DRAW:
			assert.LessOrEqual(cpu.V[REG_FLAG], uint8(1))
		case OP_JUMP, OP_CALL, OP_RETURN, OP_JUMP_OFFSET:
		default:
			assert.LessOrEqual(cpu.Pc-before.Pc, uint16(2*WORD_SIZE))
		}
	})
}
