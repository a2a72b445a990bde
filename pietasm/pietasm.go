// Package pietasm compiles the PietASM assembly dialect into Piet
// images: a lexer/preprocessor for comments and @EACH/@END macro
// expansion, a parser that lowers mnemonics (and JUMPIF's NOT;NOT
// normalization) into a flat command list, a peephole optimizer that
// folds repeated pushes into duplicates, and an image layout engine
// that turns the command list into codel geometry.
package pietasm

import (
	"bufio"
	"fmt"
	"io"

	"github.com/orez-/piet-tools/piet"
)

// Assemble runs the full front end — preprocessing, parsing, and
// optimization — without laying out an image. Exposed separately from
// Compile so callers (the --listing flag) can inspect the lowered
// command stream before the layout engine ever runs.
func Assemble(lines []string) (*Program, error) {
	stmts, err := preprocess(lines)
	if err != nil {
		return nil, err
	}
	prog, err := Parse(stmts)
	if err != nil {
		return nil, err
	}
	return Optimize(prog), nil
}

// Compile assembles source lines straight into a Piet codel grid,
// ready to hand to piet.NewEngine or EncodePNG.
func Compile(lines []string) (*piet.Grid, error) {
	prog, err := Assemble(lines)
	if err != nil {
		return nil, err
	}
	return Layout(prog)
}

// Load reads a PietASM source file and assembles it into a grid, the
// pietasm analogue of piet.Load.
func Load(r io.Reader) (*piet.Grid, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	return Compile(lines)
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1<<20)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("pietasm: read source: %w", err)
	}
	return lines, nil
}

var cmdOpNames = func() map[Op]string {
	m := make(map[Op]string, len(opNames))
	for name, op := range opNames {
		m[op] = name
	}
	return m
}()

// Listing renders an assembled program's lowered command stream as
// one instruction per line, naming each jump/label target L<id> after
// the LabelID assigned during parsing (source label names are not kept)
// — a static post-lowering dump, not a
// disassembler for laid-out images (pietasm build -listing's output).
func Listing(prog *Program) []string {
	labelNames := map[LabelID]string{}
	for _, cmd := range prog.Commands {
		if cmd.Kind == CmdLabel {
			if _, ok := labelNames[cmd.Label]; !ok {
				labelNames[cmd.Label] = fmt.Sprintf("L%d", cmd.Label)
			}
		}
	}

	var lines []string
	for _, cmd := range prog.Commands {
		switch cmd.Kind {
		case CmdPush:
			lines = append(lines, fmt.Sprintf("\tPUSH %s", cmd.Push))
		case CmdOp:
			lines = append(lines, "\t"+cmdOpNames[cmd.Op])
		case CmdLabel:
			lines = append(lines, fmt.Sprintf("%s:", labelNames[cmd.Label]))
		case CmdJump:
			lines = append(lines, fmt.Sprintf("\tJUMP %s", labelNames[cmd.Label]))
		case CmdJumpIf:
			lines = append(lines, fmt.Sprintf("\tJUMPIF %s", labelNames[cmd.Label]))
		case CmdStop:
			lines = append(lines, "\tSTOP")
		}
	}
	return lines
}
