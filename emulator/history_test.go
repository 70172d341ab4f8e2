package emulator

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistory(t *testing.T) {
	assert := assert.New(t)

	hist := &History{Capacity: 3}
	assert.Equal(0, hist.Len())
	assert.Nil(slices.Collect(hist.All()))

	hist.Record(0x200)
	hist.Record(0x202)
	assert.Equal([]uint16{0x200, 0x202}, slices.Collect(hist.All()))

	hist.Record(0x204)
	hist.Record(0x206)
	hist.Record(0x208)
	assert.Equal(3, hist.Len())
	assert.Equal([]uint16{0x204, 0x206, 0x208}, slices.Collect(hist.All()))

	hist.Rewind()
	assert.Equal(0, hist.Len())
	assert.Equal(3, hist.Capacity)
}

func TestHistory_Default(t *testing.T) {
	assert := assert.New(t)

	hist := &History{}
	for n := range 2 * HISTORY_DEFAULT_CAPACITY {
		hist.Record(uint16(n))
	}

	addresses := slices.Collect(hist.All())
	assert.Equal(HISTORY_DEFAULT_CAPACITY, len(addresses))
	assert.Equal(uint16(HISTORY_DEFAULT_CAPACITY), addresses[0])
	assert.Equal(uint16(2*HISTORY_DEFAULT_CAPACITY-1), addresses[len(addresses)-1])
}
