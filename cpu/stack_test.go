package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStack_Push(t *testing.T) {
	assert := assert.New(t)

	s := NewStack()
	assert.True(s.Empty())
	assert.False(s.Full())
	assert.Equal(-1, s.Pointer)

	assert.True(s.Push(0x0234))
	assert.False(s.Empty())
	assert.Equal(0, s.Pointer)
	assert.Equal(1, s.Depth())
	assert.Equal(uint16(0x0234), s.Data[0])
}

func TestStack_Pop(t *testing.T) {
	assert := assert.New(t)

	s := NewStack()
	s.Push(0x0234)
	s.Push(0x0abc)

	val, ok := s.Pop()
	assert.True(ok)
	assert.Equal(uint16(0x0abc), val)
	assert.Equal(1, s.Depth())

	val, ok = s.Pop()
	assert.True(ok)
	assert.Equal(uint16(0x0234), val)
	assert.Equal(-1, s.Pointer)
}

func TestStack_Pop_Empty(t *testing.T) {
	assert := assert.New(t)

	s := NewStack()
	val, ok := s.Pop()
	assert.False(ok)
	assert.Equal(uint16(0), val)
	assert.Equal(-1, s.Pointer)
}

func TestStack_Peek(t *testing.T) {
	assert := assert.New(t)

	s := NewStack()
	s.Push(0x0234)
	s.Push(0x0abc)

	val, ok := s.Peek()
	assert.True(ok)
	assert.Equal(uint16(0x0abc), val)
	assert.Equal(2, s.Depth())
}

func TestStack_Peek_Empty(t *testing.T) {
	assert := assert.New(t)

	s := NewStack()
	val, ok := s.Peek()
	assert.False(ok)
	assert.Equal(uint16(0), val)
}

func TestStack_Capacity(t *testing.T) {
	assert := assert.New(t)

	s := NewStack()

	for i := range STACK_LIMIT {
		assert.False(s.Full())
		assert.True(s.Push(uint16(i)))
	}

	assert.True(s.Full())
	assert.Equal(STACK_LIMIT-1, s.Pointer)

	assert.False(s.Push(0xfff))
	assert.Equal(STACK_LIMIT-1, s.Pointer)
	assert.Equal(uint16(STACK_LIMIT-1), s.Data[STACK_LIMIT-1])
}

func TestStack_Reset(t *testing.T) {
	assert := assert.New(t)

	s := NewStack()
	s.Push(0x0234)
	s.Push(0x0abc)

	s.Reset()
	assert.True(s.Empty())
	assert.Equal(0, s.Depth())
	assert.Equal([STACK_LIMIT]uint16{}, s.Data)
}
