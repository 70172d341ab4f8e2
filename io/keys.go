package io

import (
	"sync"
	"time"
)

const (
	KEY_COUNT = 16 // Number of keys on the hexadecimal keypad.
)

// Keys is the 16-key hexadecimal Keypad.
//
// Keys is safe for concurrent use, so an input goroutine may press and
// release keys while the CPU polls them.
type Keys struct {
	mutex  sync.Mutex
	down   uint16
	expire [KEY_COUNT]time.Time
}

var _ Keypad = (*Keys)(nil)

// Press holds a key down until Release().
func (keys *Keys) Press(key uint8) {
	keys.mutex.Lock()
	defer keys.mutex.Unlock()

	key &= 0xf
	keys.down |= 1 << key
	keys.expire[key] = time.Time{}
}

// Tap holds a key down until the deadline has been passed to Expire().
// Terminals only report key presses, so taps stand in for releases.
func (keys *Keys) Tap(key uint8, until time.Time) {
	keys.mutex.Lock()
	defer keys.mutex.Unlock()

	key &= 0xf
	keys.down |= 1 << key
	keys.expire[key] = until
}

// Release lets go of a key.
func (keys *Keys) Release(key uint8) {
	keys.mutex.Lock()
	defer keys.mutex.Unlock()

	key &= 0xf
	keys.down &^= 1 << key
	keys.expire[key] = time.Time{}
}

// Expire releases every tapped key whose deadline is not after now.
func (keys *Keys) Expire(now time.Time) {
	keys.mutex.Lock()
	defer keys.mutex.Unlock()

	for key, deadline := range keys.expire {
		if deadline.IsZero() || deadline.After(now) {
			continue
		}
		keys.down &^= 1 << key
		keys.expire[key] = time.Time{}
	}
}

// Reset releases all keys.
func (keys *Keys) Reset() {
	keys.mutex.Lock()
	defer keys.mutex.Unlock()

	keys.down = 0
	clear(keys.expire[:])
}

// State returns the keypad as a bitfield, bit n set for key n held down.
func (keys *Keys) State() uint16 {
	keys.mutex.Lock()
	defer keys.mutex.Unlock()

	return keys.down
}

// Pressed returns true if the key is held down.
func (keys *Keys) Pressed(key uint8) bool {
	return keys.State()&(1<<(key&0xf)) != 0
}

// Any returns the lowest numbered key held down.
func (keys *Keys) Any() (key uint8, ok bool) {
	state := keys.State()
	for n := range uint8(KEY_COUNT) {
		if state&(1<<n) != 0 {
			return n, true
		}
	}
	return
}
