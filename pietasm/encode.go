package pietasm

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/orez-/piet-tools/piet"
)

// EncodePNG renders grid as a PNG, expanding each codel into a
// codelSize×codelSize block of solid color, the same uniform-block
// layout piet.Load samples back down from.
func EncodePNG(w io.Writer, grid *piet.Grid, codelSize int) error {
	if codelSize <= 0 {
		return fmt.Errorf("pietasm: codel size must be positive, got %d", codelSize)
	}
	width, height := grid.Dimensions()
	img := image.NewRGBA(image.Rect(0, 0, width*codelSize, height*codelSize))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, ok := grid.ColorAt(x, y).RGB()
			if !ok {
				return fmt.Errorf("pietasm: codel (%d, %d) has no renderable color", x, y)
			}
			c := color.RGBA{R: r, G: g, B: b, A: 0xFF}
			for dy := 0; dy < codelSize; dy++ {
				for dx := 0; dx < codelSize; dx++ {
					img.Set(x*codelSize+dx, y*codelSize+dy, c)
				}
			}
		}
	}
	return png.Encode(w, img)
}
