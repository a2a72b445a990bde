package pietasm

import (
	"errors"
	"math/big"
	"testing"
)

func parseLines(t *testing.T, lines []string) (*Program, error) {
	t.Helper()
	stmts, err := preprocess(lines)
	if err != nil {
		return nil, err
	}
	return Parse(stmts)
}

func TestParsePushLiteral(t *testing.T) {
	prog, err := parseLines(t, []string{"PUSH 5 7"})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(prog.Commands) != 2 {
		t.Fatalf("got %d commands, want 2", len(prog.Commands))
	}
	for i, want := range []int64{5, 7} {
		if prog.Commands[i].Kind != CmdPush {
			t.Fatalf("command %d: got kind %v, want CmdPush", i, prog.Commands[i].Kind)
		}
		if prog.Commands[i].Push.Cmp(big.NewInt(want)) != 0 {
			t.Errorf("command %d: got %s, want %d", i, prog.Commands[i].Push, want)
		}
	}
}

func TestParsePushNonPositiveFails(t *testing.T) {
	if _, err := parseLines(t, []string{"PUSH 0"}); !errors.Is(err, ErrNonPositivePush) {
		t.Errorf("PUSH 0: got %v, want ErrNonPositivePush", err)
	}
	if _, err := parseLines(t, []string{"PUSH -3"}); !errors.Is(err, ErrNonPositivePush) {
		t.Errorf("PUSH -3: got %v, want ErrNonPositivePush", err)
	}
}

func TestParseOpWithDecoratingLiterals(t *testing.T) {
	prog, err := parseLines(t, []string{"ADD 2 3"})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(prog.Commands) != 3 {
		t.Fatalf("got %d commands, want 3", len(prog.Commands))
	}
	if prog.Commands[0].Kind != CmdPush || prog.Commands[1].Kind != CmdPush {
		t.Fatalf("expected two pushes before the op, got %v", prog.Commands[:2])
	}
	if prog.Commands[2].Kind != CmdOp || prog.Commands[2].Op != OpAdd {
		t.Fatalf("got %v, want CmdOp/OpAdd", prog.Commands[2])
	}
}

func TestParseWrongArgCountFails(t *testing.T) {
	if _, err := parseLines(t, []string{"DUP 1"}); !errors.Is(err, ErrWrongArgCount) {
		t.Errorf("DUP 1: got %v, want ErrWrongArgCount", err)
	}
	if _, err := parseLines(t, []string{"ROLL 1 2 3"}); !errors.Is(err, ErrWrongArgCount) {
		t.Errorf("ROLL 1 2 3: got %v, want ErrWrongArgCount", err)
	}
}

func TestParseUnrecognizedCommand(t *testing.T) {
	if _, err := parseLines(t, []string{"FROBNICATE"}); !errors.Is(err, ErrUnrecognizedCmd) {
		t.Errorf("got %v, want ErrUnrecognizedCmd", err)
	}
}

func TestParseLabelAndJump(t *testing.T) {
	prog, err := parseLines(t, []string{
		":loop",
		"DUP",
		"JUMP loop",
	})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if prog.Commands[0].Kind != CmdLabel {
		t.Fatalf("got %v, want CmdLabel first", prog.Commands[0])
	}
	last := prog.Commands[len(prog.Commands)-1]
	if last.Kind != CmdJump || last.Label != prog.Commands[0].Label {
		t.Errorf("got %v, want CmdJump to label %d", last, prog.Commands[0].Label)
	}
}

func TestParseJumpIfLowersToNotNotJumpIf(t *testing.T) {
	prog, err := parseLines(t, []string{
		"JUMPIF done",
		":done",
	})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	wantKinds := []CommandKind{CmdOp, CmdOp, CmdJumpIf, CmdLabel}
	if len(prog.Commands) != len(wantKinds) {
		t.Fatalf("got %d commands, want %d: %v", len(prog.Commands), len(wantKinds), prog.Commands)
	}
	for i, k := range wantKinds {
		if prog.Commands[i].Kind != k {
			t.Errorf("command %d: got kind %v, want %v", i, prog.Commands[i].Kind, k)
		}
	}
	if prog.Commands[0].Op != OpNot || prog.Commands[1].Op != OpNot {
		t.Errorf("expected two NOTs before JumpIf, got %v, %v", prog.Commands[0], prog.Commands[1])
	}
	if prog.Commands[2].Label != prog.Commands[3].Label {
		t.Errorf("JumpIf label %d does not match declared label %d", prog.Commands[2].Label, prog.Commands[3].Label)
	}
}

func TestParseMissingLabelFails(t *testing.T) {
	if _, err := parseLines(t, []string{"JUMP nowhere"}); !errors.Is(err, ErrMissingLabel) {
		t.Errorf("got %v, want ErrMissingLabel", err)
	}
}

func TestParseDuplicateLabelFails(t *testing.T) {
	if _, err := parseLines(t, []string{":x", ":x"}); !errors.Is(err, ErrDuplicateLabel) {
		t.Errorf("got %v, want ErrDuplicateLabel", err)
	}
}

func TestParseEachExpandsToOnePushPerTerm(t *testing.T) {
	prog, err := parseLines(t, []string{
		"@EACH n=[1 2 3]",
		"PUSH @n",
		"@END",
	})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(prog.Commands) != 3 {
		t.Fatalf("got %d commands, want 3", len(prog.Commands))
	}
	for i, want := range []int64{1, 2, 3} {
		if prog.Commands[i].Push.Cmp(big.NewInt(want)) != 0 {
			t.Errorf("command %d: got %s, want %d", i, prog.Commands[i].Push, want)
		}
	}
}

func TestParseStopTakesNoArgs(t *testing.T) {
	prog, err := parseLines(t, []string{"STOP"})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(prog.Commands) != 1 || prog.Commands[0].Kind != CmdStop {
		t.Fatalf("got %v, want a single CmdStop", prog.Commands)
	}
	if _, err := parseLines(t, []string{"STOP 1"}); !errors.Is(err, ErrWrongArgCount) {
		t.Errorf("STOP 1: got %v, want ErrWrongArgCount", err)
	}
}
