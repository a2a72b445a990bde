package pietasm

import (
	"fmt"
	"math/big"
)

type labelInfo struct {
	id         LabelID
	declaredAt int // 0 if not yet declared
	firstRefAt int
}

// Program is a fully-resolved, lowered PietASM program: a flat command
// list with every label reference turned into a numeric LabelID and
// every literal/metavariable operand turned into an explicit Push.
type Program struct {
	Commands []Command
}

// Parse lowers preprocessed statements into a Program, resolving labels
// and validating argument counts against each mnemonic's pinned arity.
func Parse(stmts []statement) (*Program, error) {
	p := &parseState{labels: map[string]*labelInfo{}}
	for _, s := range stmts {
		if err := p.parseStatement(s); err != nil {
			return nil, atLine(s.lineno, err)
		}
	}
	for name, li := range p.labels {
		if li.declaredAt == 0 {
			return nil, atLine(li.firstRefAt, fmt.Errorf("%w: %q", ErrMissingLabel, name))
		}
	}
	return &Program{Commands: p.cmds}, nil
}

type parseState struct {
	cmds      []Command
	labels    map[string]*labelInfo
	nextLabel LabelID
}

func (p *parseState) labelFor(name string, lineno int) *labelInfo {
	li, ok := p.labels[name]
	if !ok {
		p.nextLabel++
		li = &labelInfo{id: p.nextLabel, firstRefAt: lineno}
		p.labels[name] = li
	}
	return li
}

func (p *parseState) parseStatement(s statement) error {
	if s.label != "" {
		li := p.labelFor(s.label, s.lineno)
		if li.declaredAt != 0 {
			return fmt.Errorf("%w: %q", ErrDuplicateLabel, s.label)
		}
		li.declaredAt = s.lineno
		p.cmds = append(p.cmds, Command{Kind: CmdLabel, Label: li.id})
		return nil
	}

	switch s.cmd {
	case "PUSH":
		nums, err := validateNumArgs(s.args, argArity["PUSH"])
		if err != nil {
			return err
		}
		for _, n := range nums {
			if n.Sign() <= 0 {
				return fmt.Errorf("%w: %s", ErrNonPositivePush, n.String())
			}
			p.cmds = append(p.cmds, Command{Kind: CmdPush, Push: n})
		}
		return nil

	case "STOP":
		if err := validateArgCount(len(s.args), argArity["STOP"]); err != nil {
			return err
		}
		p.cmds = append(p.cmds, Command{Kind: CmdStop})
		return nil

	case "JUMP", "JUMPIF":
		arity := argArity[s.cmd]
		if err := validateArgCount(len(s.args), arity); err != nil {
			return err
		}
		name, err := s.args[0].asLabel()
		if err != nil {
			return err
		}
		li := p.labelFor(name, s.lineno)
		if s.cmd == "JUMP" {
			p.cmds = append(p.cmds, Command{Kind: CmdJump, Label: li.id})
		} else {
			p.cmds = append(p.cmds, Command{Kind: CmdOp, Op: OpNot})
			p.cmds = append(p.cmds, Command{Kind: CmdOp, Op: OpNot})
			p.cmds = append(p.cmds, Command{Kind: CmdJumpIf, Label: li.id})
		}
		return nil

	default:
		op, ok := opNames[s.cmd]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnrecognizedCmd, s.cmd)
		}
		arity, ok := argArity[s.cmd]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnrecognizedCmd, s.cmd)
		}
		nums, err := validateNumArgs(s.args, arity)
		if err != nil {
			return err
		}
		for _, n := range nums {
			if n.Sign() <= 0 {
				return fmt.Errorf("%w: %s", ErrNonPositivePush, n.String())
			}
			p.cmds = append(p.cmds, Command{Kind: CmdPush, Push: n})
		}
		p.cmds = append(p.cmds, Command{Kind: CmdOp, Op: op})
		return nil
	}
}

func validateArgCount(count int, arity struct{ min, max int }) error {
	if count < arity.min || (arity.max >= 0 && count > arity.max) {
		return fmt.Errorf("%w: got %d", ErrWrongArgCount, count)
	}
	return nil
}

func validateNumArgs(args []token, arity struct{ min, max int }) ([]*big.Int, error) {
	if err := validateArgCount(len(args), arity); err != nil {
		return nil, err
	}
	nums := make([]*big.Int, len(args))
	for i, a := range args {
		n, err := a.asInt()
		if err != nil {
			return nil, err
		}
		nums[i] = n
	}
	return nums, nil
}
