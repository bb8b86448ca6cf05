package chip8

import (
	"fmt"
	"strings"
)

// Stack holds return addresses for subroutine calls. Its capacity is fixed
// at construction; pushing past it or popping when empty are halt
// conditions.
type Stack struct {
	addrs []uint16
}

func newStack(depth int) Stack {
	return Stack{addrs: make([]uint16, 0, depth)}
}

func (s *Stack) Push(addr uint16) {
	if len(s.addrs) == cap(s.addrs) {
		panic(Overflow)
	}
	s.addrs = append(s.addrs, addr)
}

func (s *Stack) Pop() uint16 {
	if len(s.addrs) == 0 {
		panic(Underflow)
	}
	addr := s.addrs[len(s.addrs)-1]
	s.addrs = s.addrs[:len(s.addrs)-1]
	return addr
}

func (s *Stack) Depth() int { return len(s.addrs) }

func (s *Stack) reset() { s.addrs = s.addrs[:0] }

func (s Stack) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for _, a := range s.addrs {
		fmt.Fprintf(&b, " %x", a)
	}
	b.WriteString(" )")
	return b.String()
}
