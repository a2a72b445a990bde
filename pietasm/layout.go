package pietasm

import (
	"fmt"

	"github.com/orez-/piet-tools/piet"
)

// rowGap is the number of blank rows left between one allocated row and
// the next. A detour's own turn gadgets can drift a few codels off its
// nominal row before settling (each 90° turn gadget can shift position
// by up to two codels), so the gap is sized generously rather than
// computed exactly, trading image size for a simple correctness margin.
const rowGap = 32

// startColor is the color every fresh control-flow segment (the entry
// point, or a block that's only reachable by jumping into it) begins
// with. Segments never share a row, so reusing it is never ambiguous.
var startColor = piet.New(piet.Red, piet.LightNormal)

// cursor is the layout engine's write head: the next position to paint,
// the color already sitting there, and the direction execution is
// currently moving.
type cursor struct {
	pos   piet.Coord
	dp    piet.Direction
	color piet.Color
}

func step(c piet.Coord, dp piet.Direction) piet.Coord {
	dx, dy := dp.Delta()
	return piet.Coord{X: c.X + dx, Y: c.Y + dy}
}

// pendingRoute is a jump or the taken branch of a jumpif whose detour
// can't be drawn until every label's row-0 position is known.
type pendingRoute struct {
	from  cursor // position/dp/color right after the initial turn; dp is always Down
	label LabelID
}

// builder accumulates a sparse canvas of painted codels plus the
// bookkeeping needed to resolve jump targets in a second pass.
type builder struct {
	canvas     map[piet.Coord]piet.Color
	nextRow    int
	labelPos   map[LabelID]piet.Coord
	labelColor map[LabelID]piet.Color
	routes     []pendingRoute
}

func newBuilder() *builder {
	return &builder{
		canvas:     map[piet.Coord]piet.Color{},
		nextRow:    rowGap + 1,
		labelPos:   map[LabelID]piet.Coord{},
		labelColor: map[LabelID]piet.Color{},
	}
}

func (b *builder) paint(pos piet.Coord, c piet.Color) {
	b.canvas[pos] = c
}

// allocateRow reserves a fresh row, far enough from anything already
// drawn that nothing placed there can ever touch an existing codel.
func (b *builder) allocateRow() int {
	row := b.nextRow
	b.nextRow += rowGap + 1
	return row
}

// turn executes one push(1)+pointer pair: the cursor's own codel (which
// always has block size 1 by construction) is pushed and immediately
// consumed by a pointer that rotates dp 90° clockwise.
func (b *builder) turn(c cursor) cursor {
	pushPos := step(c.pos, c.dp)
	pushColor := c.color.ColorAfter(piet.Push)
	b.paint(pushPos, pushColor)

	pointerPos := step(pushPos, c.dp)
	pointerColor := pushColor.ColorAfter(piet.Pointer)
	b.paint(pointerPos, pointerColor)

	return cursor{pos: pointerPos, dp: c.dp.Rotate(1), color: pointerColor}
}

// turnTo applies turn as many times as needed to face want.
func (b *builder) turnTo(c cursor, want piet.Direction) cursor {
	n := mod(int(want)-int(c.dp), 4)
	for i := 0; i < n; i++ {
		c = b.turn(c)
	}
	return c
}

func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

// corridor paints n white codels in a straight line starting one step
// past c.pos in the direction c.dp, and returns the cursor sitting on
// the last of them (color is meaningless for white, left unset).
func (b *builder) corridor(c cursor, n int) cursor {
	pos := c.pos
	for i := 0; i < n; i++ {
		pos = step(pos, c.dp)
		b.paint(pos, piet.White)
	}
	return cursor{pos: pos, dp: c.dp}
}

// land paints a fresh singleton codel of an arbitrary chromatic color
// one step past c.pos along c.dp — used after a corridor, where the
// color is unconstrained because a transition out of white is always a
// no-op regardless of what's on the far side.
func (b *builder) land(c cursor) cursor {
	pos := step(c.pos, c.dp)
	b.paint(pos, startColor)
	return cursor{pos: pos, dp: c.dp, color: startColor}
}

// alignColumn routes c horizontally until it sits exactly above/below
// targetX, landing on a fresh codel there. It always overshoots by two
// codels and then doubles back, rather than aiming straight at the
// target: a direct approach would need a zero-length (unbuffered)
// corridor whenever the target is exactly one step away, and a
// chromatic-to-chromatic edge with no white between it would execute
// an uncontrolled op instead of the no-op a white crossing guarantees.
// Facing turnTo(dir) itself can drift off the target axis by a couple
// of codels, so the overshoot distance is measured from where the
// cursor actually ends up, not from the distance computed before
// turning.
func (b *builder) alignColumn(c cursor, targetX int) cursor {
	if c.pos.X == targetX {
		return c
	}
	dir := piet.Right
	if targetX < c.pos.X {
		dir = piet.Left
	}
	c = b.turnTo(c, dir)

	d := targetX - c.pos.X
	if dir == piet.Left {
		d = -d
	}
	if d < 0 {
		dir = dir.Rotate(2)
		d = -d
	}

	c = b.corridor(c, d+1)
	c = b.land(c)
	c = b.turnTo(c, dir.Rotate(2))
	c = b.corridor(c, 1)
	return b.land(c)
}

// routeToLabel finishes a detour that starts facing Down: it aligns
// horizontally with the label's column, turns to face the label's row,
// and rides a corridor up into the already-painted label codel.
func (b *builder) routeToLabel(c cursor, label LabelID) {
	target := b.labelPos[label]
	c = b.alignColumn(c, target.X)
	c = b.turnTo(c, piet.Up)
	gap := c.pos.Y - target.Y - 1
	b.corridor(c, gap)
}

// resolveRoutes draws every deferred jump/jumpif detour now that every
// label's row-0 position is known.
func (b *builder) resolveRoutes() error {
	for _, r := range b.routes {
		if _, ok := b.labelPos[r.label]; !ok {
			return fmt.Errorf("%w: label %d", ErrMissingLabel, r.label)
		}
		row := b.allocateRow()
		descend := b.corridor(r.from, row-r.from.pos.Y-1)
		landed := b.land(descend)
		b.routeToLabel(landed, r.label)
	}
	return nil
}

// Layout turns a lowered, optimized program into a codel grid that
// piet.NewGrid can hand straight to an engine.
func Layout(prog *Program) (*piet.Grid, error) {
	b := newBuilder()

	c := cursor{pos: piet.Coord{}, dp: piet.Right, color: startColor}
	b.paint(c.pos, c.color)
	needNewSegment := false

	for _, cmd := range prog.Commands {
		if needNewSegment {
			row := b.allocateRow()
			c = cursor{pos: piet.Coord{X: 0, Y: row}, dp: piet.Right, color: startColor}
			b.paint(c.pos, c.color)
			needNewSegment = false
		}

		switch cmd.Kind {
		case CmdPush:
			n := cmd.Push
			if !n.IsInt64() {
				return nil, fmt.Errorf("pietasm: push literal %s too large to lay out", n)
			}
			for i := int64(1); i < n.Int64(); i++ {
				c.pos = step(c.pos, c.dp)
				b.paint(c.pos, c.color)
			}
			next := c.color.ColorAfter(piet.Push)
			c.pos = step(c.pos, c.dp)
			b.paint(c.pos, next)
			c.color = next

		case CmdOp:
			next := c.color.ColorAfter(pietOpToPiet(cmd.Op))
			c.pos = step(c.pos, c.dp)
			b.paint(c.pos, next)
			c.color = next

		case CmdLabel:
			b.labelPos[cmd.Label] = c.pos
			b.labelColor[cmd.Label] = c.color

		case CmdJump:
			c = b.turn(c)
			b.routes = append(b.routes, pendingRoute{from: c, label: cmd.Label})
			needNewSegment = true

		case CmdJumpIf:
			pointerPos := step(c.pos, c.dp)
			pointerColor := c.color.ColorAfter(piet.Pointer)
			b.paint(pointerPos, pointerColor)
			taken := cursor{pos: pointerPos, dp: piet.Down, color: pointerColor}
			b.routes = append(b.routes, pendingRoute{from: taken, label: cmd.Label})
			c = cursor{pos: pointerPos, dp: piet.Right, color: pointerColor}

		case CmdStop:
			// Two white codels lead into an L-shaped block none of whose
			// exit codels borders anything but black, so every exit
			// attempt from it is blocked and the engine halts there.
			w1 := step(c.pos, c.dp)
			w2 := step(w1, c.dp)
			end := step(w2, c.dp)
			b.paint(w1, piet.White)
			b.paint(w2, piet.White)
			b.paint(end, startColor)
			b.paint(step(end, piet.Down), startColor)
			b.paint(step(w2, piet.Down), startColor)
			needNewSegment = true
		}
	}

	if err := b.resolveRoutes(); err != nil {
		return nil, err
	}

	return b.toGrid()
}

func pietOpToPiet(op Op) piet.Op {
	switch op {
	case OpPop:
		return piet.Pop
	case OpAdd:
		return piet.Add
	case OpSub:
		return piet.Sub
	case OpMul:
		return piet.Mul
	case OpDiv:
		return piet.Div
	case OpMod:
		return piet.Mod
	case OpNot:
		return piet.Not
	case OpGreater:
		return piet.Greater
	case OpDup:
		return piet.Dup
	case OpRoll:
		return piet.Roll
	case OpInNum:
		return piet.InNum
	case OpInChar:
		return piet.InChar
	case OpOutNum:
		return piet.OutNum
	case OpOutChar:
		return piet.OutChar
	default:
		panic(fmt.Sprintf("pietasm: unhandled op %v", op))
	}
}

// toGrid flattens the sparse canvas into a dense rectangle, filling
// every unpainted cell with black — the same substitution Grid.ColorAt
// makes for out-of-bounds coordinates, so the boundary between "never
// painted" and "off the edge" is invisible to the engine.
func (b *builder) toGrid() (*piet.Grid, error) {
	maxX, maxY := 0, 0
	for pos := range b.canvas {
		if pos.X > maxX {
			maxX = pos.X
		}
		if pos.Y > maxY {
			maxY = pos.Y
		}
	}
	width, height := maxX+1, maxY+1
	codels := make([]piet.Color, width*height)
	for i := range codels {
		codels[i] = piet.Black
	}
	for pos, c := range b.canvas {
		codels[pos.Y*width+pos.X] = c
	}
	return piet.NewGrid(width, height, codels)
}
