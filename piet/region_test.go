package piet

import "testing"

func TestFindBlockSize(t *testing.T) {
	red := New(Red, LightNormal)
	yellow := New(Yellow, LightNormal)
	// 3x2 grid, an L-shaped red block in the left column plus one cell.
	codels := []Color{
		red, red, yellow,
		red, yellow, yellow,
	}
	g, err := NewGrid(3, 2, codels)
	if err != nil {
		t.Fatal(err)
	}
	b := FindBlock(g, 0, 0)
	if b.Size() != 3 {
		t.Fatalf("Size() = %d, want 3", b.Size())
	}
	if b.Color != red {
		t.Errorf("Color = %v, want red", b.Color)
	}
}

func TestFindBlockSingleCodel(t *testing.T) {
	red := New(Red, LightNormal)
	g, err := NewGrid(1, 1, []Color{red})
	if err != nil {
		t.Fatal(err)
	}
	b := FindBlock(g, 0, 0)
	if b.Size() != 1 {
		t.Fatalf("Size() = %d, want 1", b.Size())
	}
}

func TestExitCodelPicksFarCorner(t *testing.T) {
	red := New(Red, LightNormal)
	// 2x2 solid red block. DP=Right, CC=Left should pick the top-right
	// codel (max X, then min Y since secondary axis for CCLeft is DP
	// rotated counter-clockwise, i.e. Up, which maximizes by minimizing Y).
	g, err := NewGrid(2, 2, []Color{red, red, red, red})
	if err != nil {
		t.Fatal(err)
	}
	b := FindBlock(g, 0, 0)
	got := b.ExitCodel(Right, CCLeft)
	want := Coord{1, 0}
	if got != want {
		t.Errorf("ExitCodel(Right, CCLeft) = %v, want %v", got, want)
	}
	got = b.ExitCodel(Right, CCRight)
	want = Coord{1, 1}
	if got != want {
		t.Errorf("ExitCodel(Right, CCRight) = %v, want %v", got, want)
	}
}
