package piet

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func TestColorAtOutOfBoundsIsBlack(t *testing.T) {
	g, err := NewGrid(2, 2, []Color{White, White, White, White})
	if err != nil {
		t.Fatal(err)
	}
	vs := []struct{ x, y int }{{-1, 0}, {0, -1}, {2, 0}, {0, 2}}
	for _, v := range vs {
		if got := g.ColorAt(v.x, v.y); !got.IsBlack() {
			t.Errorf("ColorAt(%d, %d) = %v, want Black", v.x, v.y, got)
		}
	}
}

func TestNewGridLengthMismatch(t *testing.T) {
	if _, err := NewGrid(2, 2, []Color{White}); err == nil {
		t.Fatal("NewGrid with mismatched codel count did not error")
	}
}

func TestLoadDownsamples(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	red := color.RGBA{0xFF, 0x00, 0x00, 0xFF}
	yellow := color.RGBA{0xFF, 0xFF, 0x00, 0xFF}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.Set(x, y, red)
		}
		for x := 2; x < 4; x++ {
			img.Set(x, y, yellow)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	g, err := Load(&buf, 2)
	if err != nil {
		t.Fatal(err)
	}
	w, h := g.Dimensions()
	if w != 2 || h != 1 {
		t.Fatalf("Dimensions() = (%d, %d), want (2, 1)", w, h)
	}
	if g.ColorAt(0, 0) != New(Red, LightNormal) {
		t.Errorf("ColorAt(0, 0) = %v, want red", g.ColorAt(0, 0))
	}
	if g.ColorAt(1, 0) != New(Yellow, LightNormal) {
		t.Errorf("ColorAt(1, 0) = %v, want yellow", g.ColorAt(1, 0))
	}
}

func TestColorFromRGBNonPaletteIsWhite(t *testing.T) {
	// Gray is not one of the 20 canonical colors; spec treats any such
	// pixel as white for stepping purposes.
	got := ColorFromRGB(0x80, 0x80, 0x80)
	if !got.IsWhite() {
		t.Errorf("ColorFromRGB(gray) = %v, want White", got)
	}
}

func TestLoadNonPaletteCodelIsWhite(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	gray := color.RGBA{0x80, 0x80, 0x80, 0xFF}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.Set(x, y, gray)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	g, err := Load(&buf, 2)
	if err != nil {
		t.Fatal(err)
	}
	if got := g.ColorAt(0, 0); !got.IsWhite() {
		t.Errorf("ColorAt(0, 0) = %v, want White", got)
	}
}

func TestLoadBadCodelSize(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(&buf, 2); err != ErrBadCodelSize {
		t.Errorf("Load() error = %v, want ErrBadCodelSize", err)
	}
}
