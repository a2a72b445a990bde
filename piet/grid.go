package piet

import (
	"errors"
	"fmt"
	"image"
	_ "image/png" // registers the PNG decoder with image.Decode

	"io"
)

// ErrBadCodelSize is returned when an image's dimensions are not an exact
// multiple of the requested codel size.
var ErrBadCodelSize = errors.New("piet: image dimensions not a multiple of codel size")

// Grid is a downsampled, read-only W×H matrix of Piet colors: one entry
// per codel, not per pixel. It is built once by Load and never mutated
// during execution.
type Grid struct {
	width, height int
	codels        []Color
}

// Dimensions returns the grid's width and height in codels.
func (g *Grid) Dimensions() (width, height int) { return g.width, g.height }

// ColorAt returns the color at (x, y). Coordinates outside the grid are
// equivalent to Black for execution purposes — the grid itself has no
// notion of "out of bounds" beyond that substitution.
func (g *Grid) ColorAt(x, y int) Color {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return Black
	}
	return g.codels[y*g.width+x]
}

// Load decodes an image and downsamples it into a Grid, sampling the
// top-left pixel of each codelSize×codelSize block after verifying the
// image dimensions divide evenly by codelSize.
func Load(r io.Reader, codelSize int) (*Grid, error) {
	if codelSize <= 0 {
		return nil, fmt.Errorf("piet: codel size must be positive, got %d", codelSize)
	}
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("piet: decode image: %w", err)
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w%codelSize != 0 || h%codelSize != 0 {
		return nil, ErrBadCodelSize
	}
	width, height := w/codelSize, h/codelSize
	codels := make([]Color, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			px := img.At(bounds.Min.X+x*codelSize, bounds.Min.Y+y*codelSize)
			r32, g32, b32, _ := px.RGBA()
			codels[y*width+x] = ColorFromRGB(uint8(r32>>8), uint8(g32>>8), uint8(b32>>8))
		}
	}
	return &Grid{width: width, height: height, codels: codels}, nil
}

// NewGrid builds a Grid directly from a flat, row-major codel slice. Used
// by pietasm to hand a freshly laid-out image straight to the interpreter
// via "pietasm run", without a PNG round trip.
func NewGrid(width, height int, codels []Color) (*Grid, error) {
	if len(codels) != width*height {
		return nil, fmt.Errorf("piet: codel slice length %d does not match %dx%d", len(codels), width, height)
	}
	return &Grid{width: width, height: height, codels: codels}, nil
}
