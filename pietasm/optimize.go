package pietasm

// Optimize rewrites adjacent identical literal pushes into a push
// followed by a duplicate, shrinking the run of distinct colors the
// layout engine needs to draw. It never changes observable behavior:
// PUSH T, PUSH T and PUSH T, DUP leave the same value twice on the
// stack.
func Optimize(prog *Program) *Program {
	cmds := prog.Commands
	for {
		idx := -1
		for i := 0; i+1 < len(cmds); i++ {
			if samePush(cmds[i], cmds[i+1]) {
				idx = i
			}
		}
		if idx < 0 {
			break
		}
		cmds[idx+1] = Command{Kind: CmdOp, Op: OpDup}
	}
	return &Program{Commands: cmds}
}

func samePush(a, b Command) bool {
	return a.Kind == CmdPush && b.Kind == CmdPush && a.Push.Cmp(b.Push) == 0
}
