package emulator

import (
	"iter"
)

const (
	// HISTORY_DEFAULT_CAPACITY is the default number of addresses kept.
	HISTORY_DEFAULT_CAPACITY = 16
)

// History is a ring of the most recently executed addresses.
type History struct {
	Capacity int

	WriteIndex int
	Data       []uint16
}

// Rewind empties the history. Initializes the capacity if not already set.
func (hist *History) Rewind() {
	if hist.Capacity <= 0 {
		hist.Capacity = HISTORY_DEFAULT_CAPACITY
	}

	hist.Data = make([]uint16, 0, hist.Capacity)
	hist.WriteIndex = 0
}

// Record adds an address, replacing the oldest when full.
func (hist *History) Record(address uint16) {
	if hist.Data == nil || cap(hist.Data) != hist.Capacity {
		hist.Rewind()
	}

	if len(hist.Data) < hist.Capacity {
		hist.Data = append(hist.Data, address)
	} else {
		hist.Data[hist.WriteIndex] = address
	}

	hist.WriteIndex = (hist.WriteIndex + 1) % hist.Capacity
}

// Len returns the number of recorded addresses.
func (hist *History) Len() int {
	return len(hist.Data)
}

// All returns an iterator over the recorded addresses, oldest first.
func (hist *History) All() iter.Seq[uint16] {
	return func(yield func(address uint16) bool) {
		start := 0
		if len(hist.Data) == hist.Capacity {
			start = hist.WriteIndex
		}

		for n := range len(hist.Data) {
			if !yield(hist.Data[(start+n)%len(hist.Data)]) {
				return
			}
		}
	}
}
