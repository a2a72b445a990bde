package piet

// Op identifies one of Piet's 17 stack operations, plus Noop for a
// same-color (or white) transition that performs no operation. Ordinals
// are assigned as value = lightDelta + hueDelta*3, so StepTo/ColorAfter
// can invert each other with simple arithmetic rather than a lookup
// table.
type Op int8

const (
	Noop Op = iota
	Push
	Pop
	Add
	Sub
	Mul
	Div
	Mod
	Not
	Greater
	Pointer
	Switch
	Dup
	Roll
	InNum
	InChar
	OutNum
	OutChar
)

var opNames = [...]string{
	Noop: "noop", Push: "push", Pop: "pop", Add: "add", Sub: "sub",
	Mul: "mul", Div: "div", Mod: "mod", Not: "not", Greater: "greater",
	Pointer: "pointer", Switch: "switch", Dup: "dup", Roll: "roll",
	InNum: "innum", InChar: "inchar", OutNum: "outnum", OutChar: "outchar",
}

func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return "invalid"
}

// StepTo computes the Piet command produced by transitioning from c to
// next, collapsing the (hueDelta, lightDelta) pair into a single ordinal.
// White on either side (entering or leaving a slide) yields Noop; Black is
// never a valid operand here (the engine never calls StepTo across a
// black edge).
func (c Color) StepTo(next Color) Op {
	if c.IsWhite() || next.IsWhite() {
		return Noop
	}
	hueDelta := mod(int(next.Hue)-int(c.Hue), 6)
	lightDelta := mod(int(next.Light)-int(c.Light), 3)
	return Op(lightDelta + hueDelta*3)
}

// ColorAfter is the inverse of StepTo: given a starting color and the
// desired op, returns the unique color that produces it. Used by
// pietasm's image layout engine to pick each instruction's next codel
// color. Panics if c is not chromatic or op is out of range; callers in
// this codebase only ever call it with a chromatic cursor color.
func (c Color) ColorAfter(op Op) Color {
	if !c.chromatic() {
		panic("piet: ColorAfter on non-chromatic color")
	}
	if op < Noop || op > OutChar {
		panic("piet: ColorAfter with out-of-range op")
	}
	n := int(op)
	dLight := n % 3
	dHue := n / 3
	return New(c.Hue+Hue(dHue), c.Light+Light(dLight))
}
