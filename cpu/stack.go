package cpu

const (
	STACK_LIMIT = 16 // Maximum call depth
)

// Stack is the return address stack.
// Pointer indexes the top entry, and is -1 for an empty stack.
type Stack struct {
	Data    [STACK_LIMIT]uint16
	Pointer int
}

// NewStack returns an empty stack.
func NewStack() Stack {
	return Stack{Pointer: -1}
}

func (s *Stack) Push(value uint16) (ok bool) {
	if s.Full() {
		return
	}

	s.Pointer++
	s.Data[s.Pointer] = value
	return true
}

func (s *Stack) Pop() (value uint16, ok bool) {
	value, ok = s.Peek()
	if ok {
		s.Pointer--
	}
	return
}

func (s *Stack) Empty() bool {
	return s.Pointer < 0
}

func (s *Stack) Full() bool {
	return s.Pointer >= STACK_LIMIT-1
}

// Depth returns the number of entries on the stack.
func (s *Stack) Depth() int {
	return s.Pointer + 1
}

func (s *Stack) Peek() (value uint16, ok bool) {
	if s.Empty() {
		return
	}

	return s.Data[s.Pointer], true
}

func (s *Stack) Reset() {
	clear(s.Data[:])
	s.Pointer = -1
}
