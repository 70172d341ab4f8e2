package io

import (
	"errors"

	"github.com/ezrec/chip8/translate"
)

var f = translate.From

var (
	// Rom errors
	ErrRomEmpty = errors.New(f("rom empty"))
)

// ErrRomSize is returned for ROM images that do not fit in program memory.
type ErrRomSize int

func (err ErrRomSize) Error() string {
	return f("rom of %d+ bytes exceeds %d bytes", int(err), ROM_LIMIT)
}

func (err ErrRomSize) Is(target error) (ok bool) {
	_, ok = target.(ErrRomSize)
	return
}
