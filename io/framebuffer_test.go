package io

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFramebuffer_SetPixel(t *testing.T) {
	assert := assert.New(t)

	fb := &Framebuffer{}
	assert.False(fb.Dirty())

	assert.False(fb.SetPixel(3, 4, true))
	assert.True(fb.Pixel(3, 4))
	assert.True(fb.Dirty())
	assert.Equal(1, fb.Lit())

	fb.Clean()
	assert.False(fb.Dirty())

	// Unset bits do not change the cell.
	assert.False(fb.SetPixel(3, 4, false))
	assert.True(fb.Pixel(3, 4))
	assert.False(fb.Dirty())

	// Set bits toggle the cell, and report the erasure.
	assert.True(fb.SetPixel(3, 4, true))
	assert.False(fb.Pixel(3, 4))
	assert.Equal(0, fb.Lit())
}

func TestFramebuffer_OutOfRange(t *testing.T) {
	assert := assert.New(t)

	fb := &Framebuffer{}

	for _, xy := range [][2]int{{-1, 0}, {0, -1}, {SCREEN_WIDTH, 0}, {0, SCREEN_HEIGHT}} {
		assert.False(fb.SetPixel(xy[0], xy[1], true))
		assert.False(fb.Pixel(xy[0], xy[1]))
	}
	assert.Equal(0, fb.Lit())
	assert.False(fb.Dirty())
}

func TestFramebuffer_Clear(t *testing.T) {
	assert := assert.New(t)

	fb := &Framebuffer{}
	fb.SetPixel(0, 0, true)
	fb.SetPixel(SCREEN_WIDTH-1, SCREEN_HEIGHT-1, true)
	fb.Clean()

	fb.Clear()
	assert.Equal(0, fb.Lit())
	assert.True(fb.Dirty())
}

func TestFramebuffer_String(t *testing.T) {
	assert := assert.New(t)

	fb := &Framebuffer{}
	fb.SetPixel(0, 0, true)
	fb.SetPixel(2, 1, true)

	lines := strings.Split(fb.String(), "\n")
	assert.Equal(SCREEN_HEIGHT+1, len(lines))
	assert.Equal("", lines[SCREEN_HEIGHT])
	assert.Equal("#"+strings.Repeat(".", SCREEN_WIDTH-1), lines[0])
	assert.Equal("..#"+strings.Repeat(".", SCREEN_WIDTH-3), lines[1])
	assert.Equal(strings.Repeat(".", SCREEN_WIDTH), lines[2])
}

type failWriter struct{}

func (fw failWriter) Write(data []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

func TestFramebuffer_Render(t *testing.T) {
	assert := assert.New(t)

	fb := &Framebuffer{}
	fb.SetPixel(1, 0, true)

	var sb strings.Builder
	err := fb.Render(&sb, "[]", "  ")
	assert.NoError(err)
	assert.True(strings.HasPrefix(sb.String(), "  []  "))
	assert.Equal(SCREEN_HEIGHT*(2*SCREEN_WIDTH+1), sb.Len())

	err = fb.Render(failWriter{}, "#", ".")
	assert.Error(err)
}

func TestFramebuffer_Defines(t *testing.T) {
	assert := assert.New(t)

	fb := &Framebuffer{}
	defines := map[string]string{}
	for key, value := range fb.Defines() {
		defines[key] = value
	}

	assert.Equal(map[string]string{
		"SCREEN_WIDTH":  "64",
		"SCREEN_HEIGHT": "32",
	}, defines)
}
