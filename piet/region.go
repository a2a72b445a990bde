package piet

// Coord is a codel position, (x, y), origin top-left.
type Coord struct{ X, Y int }

// Block is the maximal 4-connected region of equal-colored codels
// containing some starting codel. Blocks are only meaningful for
// chromatic colors; white and black regions are handled by the engine's
// sliding/blocked-exit logic instead.
type Block struct {
	Color  Color
	Codels []Coord
}

// Size is the codel count of the block — the value `push` places on the
// stack.
func (b *Block) Size() int { return len(b.Codels) }

// FindBlock flood-fills the 4-connected region of codels sharing the color
// at (x, y).
func FindBlock(g *Grid, x, y int) *Block {
	start := Coord{x, y}
	color := g.ColorAt(x, y)
	seen := map[Coord]bool{start: true}
	queue := []Coord{start}
	codels := []Coord{start}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, d := range [4]Coord{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			n := Coord{c.X + d.X, c.Y + d.Y}
			if seen[n] {
				continue
			}
			if n.X < 0 || n.Y < 0 || n.X >= g.width || n.Y >= g.height {
				continue
			}
			if g.ColorAt(n.X, n.Y) != color {
				continue
			}
			seen[n] = true
			queue = append(queue, n)
			codels = append(codels, n)
		}
	}
	return &Block{Color: color, Codels: codels}
}

// proj projects a coordinate onto a direction's unit vector, for ranking
// codels along an axis.
func proj(c Coord, dp Direction) int {
	dx, dy := dp.Delta()
	return c.X*dx + c.Y*dy
}

// ExitCodel picks the block's exit codel for the given (DP, CC): maximize
// the coordinate along DP, then break ties by maximizing the coordinate
// along DP rotated 90° toward CC (counter-clockwise for CCLeft, clockwise
// for CCRight).
func (b *Block) ExitCodel(dp Direction, cc CodelChoice) Coord {
	secondary := dp.Rotate(-1)
	if cc == CCRight {
		secondary = dp.Perp()
	}
	best := b.Codels[0]
	bestPrimary := proj(best, dp)
	bestSecondary := proj(best, secondary)
	for _, c := range b.Codels[1:] {
		p := proj(c, dp)
		s := proj(c, secondary)
		switch {
		case p > bestPrimary, p == bestPrimary && s > bestSecondary:
			best, bestPrimary, bestSecondary = c, p, s
		}
	}
	return best
}
