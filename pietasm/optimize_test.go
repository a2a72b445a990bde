package pietasm

import (
	"math/big"
	"testing"
)

func push(v int64) Command { return Command{Kind: CmdPush, Push: big.NewInt(v)} }
func op(o Op) Command      { return Command{Kind: CmdOp, Op: o} }

func TestOptimizeDupPushes(t *testing.T) {
	prog := &Program{Commands: []Command{
		push(5), push(2), push(2), push(2), push(8), push(8),
	}}
	got := Optimize(prog).Commands
	want := []Command{
		push(5), push(2), op(OpDup), op(OpDup), push(8), op(OpDup),
	}
	if len(got) != len(want) {
		t.Fatalf("got %d commands, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if !commandsEqual(got[i], want[i]) {
			t.Errorf("command %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestOptimizeLeavesDistinctPushesAlone(t *testing.T) {
	prog := &Program{Commands: []Command{push(1), op(OpMul)}}
	got := Optimize(prog).Commands
	if len(got) != 2 || !commandsEqual(got[0], push(1)) || !commandsEqual(got[1], op(OpMul)) {
		t.Errorf("got %v, want unchanged [push(1), Mul]", got)
	}
}

func commandsEqual(a, b Command) bool {
	if a.Kind != b.Kind || a.Op != b.Op || a.Label != b.Label {
		return false
	}
	if (a.Push == nil) != (b.Push == nil) {
		return false
	}
	if a.Push != nil && a.Push.Cmp(b.Push) != 0 {
		return false
	}
	return true
}
