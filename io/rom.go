package io

import (
	"io"
)

const (
	ROM_LIMIT = 0x1000 - 0x200 // Largest ROM image that fits above the interpreter area.
)

// Rom is a CHIP-8 program image, loaded verbatim at the program start address.
type Rom struct {
	Data []byte
}

// Unmarshal reads a ROM image, replacing any existing data.
func (rom *Rom) Unmarshal(file io.Reader) (err error) {
	data, err := io.ReadAll(io.LimitReader(file, ROM_LIMIT+1))
	if err != nil {
		return
	}

	switch {
	case len(data) == 0:
		err = ErrRomEmpty
		return
	case len(data) > ROM_LIMIT:
		err = ErrRomSize(len(data))
		return
	}

	rom.Data = data
	return
}

// Marshal writes the ROM image.
func (rom *Rom) Marshal(file io.Writer) (err error) {
	_, err = file.Write(rom.Data)
	return
}

// Words returns the number of 16-bit instruction words in the image.
func (rom *Rom) Words() int {
	return (len(rom.Data) + 1) / 2
}
