// Package piet implements the Piet execution model: a codel grid, its
// color algebra, region finding, and the direction-pointer/codel-chooser
// state machine that walks it.
package piet

import "image/color"

// Hue identifies one of the six canonical Piet hues, in clockwise order.
type Hue int8

const (
	Red Hue = iota
	Yellow
	Green
	Cyan
	Blue
	Magenta
)

// Light identifies one of the three canonical Piet lightness steps,
// darker-ward.
type Light int8

const (
	LightLight Light = iota
	LightNormal
	LightDark
)

// Color is a codel color: one of the 18 hue/lightness combinations, or one
// of the two sentinels White and Black. A Color whose special field marks
// a sentinel ignores Hue/Light.
type Color struct {
	Hue     Hue
	Light   Light
	special special
}

type special int8

const (
	normal special = iota
	white
	black
)

var (
	White = Color{special: white}
	Black = Color{special: black}
)

// IsWhite reports whether c is the white sentinel.
func (c Color) IsWhite() bool { return c.special == white }

// IsBlack reports whether c is the black sentinel.
func (c Color) IsBlack() bool { return c.special == black }

// chromatic reports whether c carries a hue/lightness pair (i.e. is
// neither White nor Black).
func (c Color) chromatic() bool { return c.special == normal }

// New returns the chromatic color at the given hue/lightness, wrapping
// both axes into range.
func New(h Hue, l Light) Color {
	return Color{Hue: Hue(mod(int(h), 6)), Light: Light(mod(int(l), 3))}
}

func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

// paletteRGB is the canonical 18-color RGB table; black and white are
// handled separately since they carry no hue/lightness pair.
var paletteRGB = map[Color]color.RGBA{
	New(Red, LightLight):     {0xFF, 0xC0, 0xC0, 0xFF},
	New(Red, LightNormal):    {0xFF, 0x00, 0x00, 0xFF},
	New(Red, LightDark):      {0xC0, 0x00, 0x00, 0xFF},
	New(Yellow, LightLight):  {0xFF, 0xFF, 0xC0, 0xFF},
	New(Yellow, LightNormal): {0xFF, 0xFF, 0x00, 0xFF},
	New(Yellow, LightDark):   {0xC0, 0xC0, 0x00, 0xFF},
	New(Green, LightLight):   {0xC0, 0xFF, 0xC0, 0xFF},
	New(Green, LightNormal):  {0x00, 0xFF, 0x00, 0xFF},
	New(Green, LightDark):    {0x00, 0xC0, 0x00, 0xFF},
	New(Cyan, LightLight):    {0xC0, 0xFF, 0xFF, 0xFF},
	New(Cyan, LightNormal):   {0x00, 0xFF, 0xFF, 0xFF},
	New(Cyan, LightDark):     {0x00, 0xC0, 0xC0, 0xFF},
	New(Blue, LightLight):    {0xC0, 0xC0, 0xFF, 0xFF},
	New(Blue, LightNormal):   {0x00, 0x00, 0xFF, 0xFF},
	New(Blue, LightDark):     {0x00, 0x00, 0xC0, 0xFF},
	New(Magenta, LightLight): {0xFF, 0xC0, 0xFF, 0xFF},
	New(Magenta, LightNormal): {0xFF, 0x00, 0xFF, 0xFF},
	New(Magenta, LightDark):   {0xC0, 0x00, 0xC0, 0xFF},
}

var rgbPalette = func() map[[3]uint8]Color {
	m := make(map[[3]uint8]Color, len(paletteRGB)+2)
	for c, rgba := range paletteRGB {
		m[[3]uint8{rgba.R, rgba.G, rgba.B}] = c
	}
	m[[3]uint8{0xFF, 0xFF, 0xFF}] = White
	m[[3]uint8{0x00, 0x00, 0x00}] = Black
	return m
}()

// ColorFromRGB maps an 8-bit RGB triple to its canonical Piet color,
// treating any value outside the 20-color palette as White: spec
// behavior is that a non-palette pixel steps as white does (see
// IsWhite's callers in engine.go and op.go).
func ColorFromRGB(r, g, b uint8) Color {
	if c, ok := rgbPalette[[3]uint8{r, g, b}]; ok {
		return c
	}
	return White
}

// RGB returns the 8-bit RGB triple for a canonical color.
func (c Color) RGB() (r, g, b uint8, ok bool) {
	switch c.special {
	case white:
		return 0xFF, 0xFF, 0xFF, true
	case black:
		return 0x00, 0x00, 0x00, true
	}
	rgba, ok := paletteRGB[c]
	return rgba.R, rgba.G, rgba.B, ok
}
