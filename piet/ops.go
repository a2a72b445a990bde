package piet

import (
	"fmt"
	"math/big"
)

// runOp applies a single Piet command to the stack (and, for pointer/
// switch, to the direction pointer/codel chooser). Every failure mode —
// too few operands, division by zero, a non-positive roll depth — leaves
// the stack untouched and simply skips the operation; the engine never
// surfaces a runtime error for a malformed program.
func (e *Engine) runOp(op Op, blockSize int) {
	s := &e.Stack
	switch op {
	case Noop:
		// same-color or white transition: nothing to do.
	case Push:
		s.PushInt64(int64(blockSize))
	case Pop:
		s.Pop()
	case Add:
		binaryOp(s, func(a, b *big.Int) *big.Int { return new(big.Int).Add(a, b) })
	case Sub:
		binaryOp(s, func(a, b *big.Int) *big.Int { return new(big.Int).Sub(a, b) })
	case Mul:
		binaryOp(s, func(a, b *big.Int) *big.Int { return new(big.Int).Mul(a, b) })
	case Div:
		divOrMod(s, false)
	case Mod:
		divOrMod(s, true)
	case Not:
		vs, ok := s.Peek(1)
		if !ok {
			return
		}
		s.Pop()
		if vs[0].Sign() == 0 {
			s.PushInt64(1)
		} else {
			s.PushInt64(0)
		}
	case Greater:
		binaryOp(s, func(a, b *big.Int) *big.Int {
			if a.Cmp(b) > 0 {
				return big.NewInt(1)
			}
			return big.NewInt(0)
		})
	case Pointer:
		vs, ok := s.Peek(1)
		if !ok {
			return
		}
		s.Pop()
		n := mod(int(vs[0].Int64()), 4)
		e.dp = e.dp.Rotate(n)
	case Switch:
		vs, ok := s.Peek(1)
		if !ok {
			return
		}
		s.Pop()
		n := new(big.Int).Abs(vs[0])
		if n.Bit(0) == 1 {
			e.cc = e.cc.Toggle()
		}
	case Dup:
		vs, ok := s.Peek(1)
		if !ok {
			return
		}
		s.Push(new(big.Int).Set(vs[0]))
	case Roll:
		e.roll()
	case InNum:
		e.inNum()
	case InChar:
		e.inChar()
	case OutNum:
		v, ok := s.Pop()
		if !ok {
			return
		}
		fmt.Fprint(e.out, v.String())
	case OutChar:
		v, ok := s.Pop()
		if !ok {
			return
		}
		r := rune(v.Int64())
		fmt.Fprintf(e.out, "%c", r)
		if r == '\n' {
			e.out.Flush()
		}
	}
}

// binaryOp pops two operands (b on top, a beneath), pushes f(a, b), and
// is a no-op if fewer than two values are available.
func binaryOp(s *Stack, f func(a, b *big.Int) *big.Int) {
	vs, ok := s.Peek(2)
	if !ok {
		return
	}
	a, b := vs[0], vs[1]
	s.Pop()
	s.Pop()
	s.Push(f(a, b))
}

// divOrMod implements Div and Mod together: `a = pop; b = pop` (b
// beneath a), divide b by a using floor semantics (see stack.go's
// floorDivMod), no-op if a is zero.
func divOrMod(s *Stack, wantMod bool) {
	vs, ok := s.Peek(2)
	if !ok {
		return
	}
	b, a := vs[0], vs[1]
	if a.Sign() == 0 {
		return
	}
	q, r := floorDivMod(b, a)
	s.Pop()
	s.Pop()
	if wantMod {
		s.Push(r)
	} else {
		s.Push(q)
	}
}

// roll implements Piet's `roll`: `n = pop; depth = pop`, then rotate the
// top depth elements by n positions (positive towards top), n normalized
// modulo depth first. A non-positive depth, or too few elements beneath
// depth/n to roll, leaves the entire stack — including depth and n
// themselves — untouched; every check happens against a peek before any
// pop. Once depth is confirmed positive and there's room for it, depth and
// n are always consumed, even when the resulting rotation (depth == 0 case
// aside, n mod depth == 0) turns out to be a no-op.
func (e *Engine) roll() {
	s := &e.Stack
	vs, ok := s.Peek(2)
	if !ok {
		return
	}
	depthVal, nVal := vs[0], vs[1]
	if depthVal.Sign() <= 0 {
		return
	}
	if !depthVal.IsInt64() || !nVal.IsInt64() {
		return
	}
	depth := int(depthVal.Int64())
	if depth > s.Len()-2 {
		return
	}
	n := mod(int(nVal.Int64()), depth)
	s.Pop()
	s.Pop()
	if n == 0 {
		return
	}
	base := s.Len() - depth
	window := s.vals[base:]
	rotated := make([]*big.Int, depth)
	for i, v := range window {
		rotated[(i+n)%depth] = v
	}
	copy(window, rotated)
}

// inNum reads one optionally-signed decimal integer from stdin. big.Int
// implements fmt.Scanner, so fmt.Fscan does the whitespace-skipping and
// sign/digit parsing for us; a no-op on EOF or malformed input.
func (e *Engine) inNum() {
	n := new(big.Int)
	if _, err := fmt.Fscan(e.in, n); err != nil {
		return
	}
	e.Stack.Push(n)
}

// inChar reads a single byte from stdin and pushes its value; a no-op on
// EOF.
func (e *Engine) inChar() {
	b, err := e.in.ReadByte()
	if err != nil {
		return
	}
	e.Stack.PushInt64(int64(b))
}
