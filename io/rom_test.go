package io

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRom_Unmarshal(t *testing.T) {
	assert := assert.New(t)

	rom := &Rom{}

	err := rom.Unmarshal(bytes.NewReader([]byte{0x00, 0xE0, 0x12}))
	assert.NoError(err)
	assert.Equal([]byte{0x00, 0xE0, 0x12}, rom.Data)
	assert.Equal(2, rom.Words())

	var buff bytes.Buffer
	err = rom.Marshal(&buff)
	assert.NoError(err)
	assert.Equal(rom.Data, buff.Bytes())
}

func TestRom_Limits(t *testing.T) {
	assert := assert.New(t)

	rom := &Rom{Data: []byte{1}}

	err := rom.Unmarshal(bytes.NewReader(nil))
	assert.ErrorIs(err, ErrRomEmpty)
	assert.Equal([]byte{1}, rom.Data)

	err = rom.Unmarshal(bytes.NewReader(make([]byte, ROM_LIMIT)))
	assert.NoError(err)
	assert.Equal(ROM_LIMIT, len(rom.Data))

	err = rom.Unmarshal(bytes.NewReader(make([]byte, ROM_LIMIT+100)))
	assert.ErrorIs(err, ErrRomSize(0))
	var es ErrRomSize
	assert.True(errors.As(err, &es))
	assert.Equal(ROM_LIMIT+1, int(es))
	assert.Equal(ROM_LIMIT, len(rom.Data))
}

func TestFont(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(KEY_COUNT*FONT_GLYPH_SIZE, len(FONT))

	// Glyphs are 4 pixels wide.
	for n, row := range FONT {
		assert.Zero(row&0x0F, "row %d", n)
	}
}
