// ABOUTME: Tests for the pixel grid downscaler
// ABOUTME: Checks output geometry, identity passthrough, and uniform color

package scale

import (
	"testing"

	"github.com/mauromedda/termlens/internal/frame"
)

func uniformGrid(w, h int, p frame.Pixel) frame.PixelGrid {
	grid := make(frame.PixelGrid, h)
	for y := range grid {
		grid[y] = make([]frame.Pixel, w)
		for x := range grid[y] {
			grid[y][x] = p
		}
	}
	return grid
}

func TestGridProducesTargetGeometry(t *testing.T) {
	t.Parallel()

	to, _ := frame.NewGeometry(50, 19)
	out := Grid(uniformGrid(800, 600, frame.Pixel{R: 10, G: 20, B: 30}), to)

	if len(out) != to.Height {
		t.Fatalf("rows = %d, want %d", len(out), to.Height)
	}
	for y, row := range out {
		if len(row) != to.Width {
			t.Fatalf("row %d cells = %d, want %d", y, len(row), to.Width)
		}
	}
}

func TestGridPreservesUniformColor(t *testing.T) {
	t.Parallel()

	to, _ := frame.NewGeometry(10, 10)
	p := frame.Pixel{R: 200, G: 100, B: 50}
	out := Grid(uniformGrid(100, 100, p), to)

	// CatmullRom over a uniform field stays uniform up to rounding.
	near := func(a, b uint8) bool {
		d := int(a) - int(b)
		return d >= -1 && d <= 1
	}
	for y, row := range out {
		for x, got := range row {
			if !near(got.R, p.R) || !near(got.G, p.G) || !near(got.B, p.B) {
				t.Fatalf("pixel (%d,%d) = %+v, want ~%+v", x, y, got, p)
			}
		}
	}
}

func TestGridIdentityWhenSameSize(t *testing.T) {
	t.Parallel()

	to, _ := frame.NewGeometry(8, 4)
	in := uniformGrid(8, 4, frame.Pixel{R: 1})
	out := Grid(in, to)

	if len(out) != 4 || len(out[0]) != 8 {
		t.Fatalf("identity scale changed shape: %dx%d", len(out[0]), len(out))
	}
}
