package pietasm

import (
	"fmt"
	"math/big"
	"strings"
	"unicode"
)

// eachFrame tracks one open @EACH block: the metavariable it binds, the
// set of values it will be expanded over, and the statements accumulated
// so far from the enclosing scope (restored once @END closes the block).
type eachFrame struct {
	name   string
	terms  []*big.Int
	outer  []statement
	lineno int
}

// preprocess strips comments and blank lines, annotates each remaining
// line with its 1-based line number, and expands @EACH/@END macro blocks
// into their unrolled statement sequence.
func preprocess(lines []string) ([]statement, error) {
	var stack []eachFrame
	var stmts []statement
	for i, raw := range lines {
		lineno := i + 1
		line := raw
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		switch tok, err := preprocessLine(line, lineno); {
		case err != nil:
			return nil, atLine(lineno, err)
		case tok.isEach:
			for _, frame := range stack {
				if frame.name == tok.eachName {
					return nil, atLine(lineno, fmt.Errorf("%w: %q", ErrShadowedVar, tok.eachName))
				}
			}
			stack = append(stack, eachFrame{
				name:   tok.eachName,
				terms:  tok.eachTerms,
				outer:  stmts,
				lineno: lineno,
			})
			stmts = nil
		case tok.isEnd:
			if len(stack) == 0 {
				return nil, atLine(lineno, ErrExtraEnd)
			}
			frame := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			restored := frame.outer
			for _, term := range frame.terms {
				for _, s := range stmts {
					restored = append(restored, s.bind(frame.name, term))
				}
			}
			stmts = restored
		default:
			stmts = append(stmts, tok.stmt)
		}
	}
	if len(stack) > 0 {
		return nil, atLine(stack[len(stack)-1].lineno, ErrMissingEnd)
	}
	return stmts, nil
}

// ppToken is the result of preprocessing a single source line: either an
// ordinary statement, or a pragma that manipulates the @EACH stack.
type ppToken struct {
	stmt      statement
	isEach    bool
	eachName  string
	eachTerms []*big.Int
	isEnd     bool
}

func preprocessLine(line string, lineno int) (ppToken, error) {
	if rest, ok := stripPrefix(line, '@'); ok {
		cmd, arg := splitFirstField(rest)
		switch cmd {
		case "EACH":
			name, terms, err := parseEachPragma(arg)
			if err != nil {
				return ppToken{}, err
			}
			return ppToken{isEach: true, eachName: name, eachTerms: terms}, nil
		case "END":
			if strings.TrimSpace(arg) != "" {
				return ppToken{}, fmt.Errorf("%w: %q", ErrInvalidPragma, line)
			}
			return ppToken{isEnd: true}, nil
		default:
			return ppToken{}, fmt.Errorf("%w: %q", ErrInvalidPragma, cmd)
		}
	}

	if label, ok := stripPrefix(line, ':'); ok {
		id, err := parseIdentifier(label)
		if err != nil {
			return ppToken{}, err
		}
		return ppToken{stmt: statement{lineno: lineno, label: id}}, nil
	}

	fields := strings.Fields(line)
	cmd := fields[0]
	args := make([]token, 0, len(fields)-1)
	for _, f := range fields[1:] {
		tok, err := parseToken(f)
		if err != nil {
			return ppToken{}, err
		}
		args = append(args, tok)
	}
	return ppToken{stmt: statement{lineno: lineno, cmd: cmd, args: args}}, nil
}

// parseEachPragma parses `NAME=[T1 T2 ...]`, the body of an @EACH line.
func parseEachPragma(rest string) (string, []*big.Int, error) {
	name, set, ok := strings.Cut(rest, "=")
	if !ok {
		return "", nil, fmt.Errorf("%w: @EACH %q", ErrInvalidPragma, rest)
	}
	name, err := parseIdentifier(strings.TrimSpace(name))
	if err != nil {
		return "", nil, err
	}
	set = strings.TrimSpace(set)
	inner, ok := cutBrackets(set)
	if !ok {
		return "", nil, fmt.Errorf("%w: @EACH %q", ErrInvalidPragma, rest)
	}
	fields := strings.Fields(inner)
	terms := make([]*big.Int, 0, len(fields))
	for _, f := range fields {
		n, err := parseInteger(f)
		if err != nil {
			return "", nil, err
		}
		terms = append(terms, n)
	}
	return name, terms, nil
}

func cutBrackets(s string) (string, bool) {
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return "", false
	}
	return strings.TrimSpace(s[1 : len(s)-1]), true
}

func splitFirstField(s string) (first, rest string) {
	s = strings.TrimSpace(s)
	idx := strings.IndexFunc(s, unicode.IsSpace)
	if idx < 0 {
		return s, ""
	}
	return s[:idx], strings.TrimSpace(s[idx:])
}
