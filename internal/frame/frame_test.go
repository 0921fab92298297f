// ABOUTME: Tests for geometry validation, RGB24 decoding, and conversion
// ABOUTME: Covers malformed buffers, row-major order, and shape preservation

package frame

import (
	"errors"
	"testing"

	"github.com/mauromedda/termlens/internal/ascii"
)

func TestNewGeometry(t *testing.T) {
	t.Parallel()

	g, err := NewGeometry(100, 37)
	if err != nil {
		t.Fatalf("NewGeometry: %v", err)
	}
	if g.FrameBytes() != 100*37*3 {
		t.Errorf("FrameBytes() = %d, want %d", g.FrameBytes(), 100*37*3)
	}
	if g.String() != "100x37" {
		t.Errorf("String() = %q, want %q", g.String(), "100x37")
	}
}

func TestNewGeometryRejectsNonPositive(t *testing.T) {
	t.Parallel()

	for _, dims := range [][2]int{{0, 10}, {10, 0}, {-1, 5}, {0, 0}} {
		if _, err := NewGeometry(dims[0], dims[1]); err == nil {
			t.Errorf("NewGeometry(%d, %d): expected error", dims[0], dims[1])
		}
	}
}

func TestDecodeRowMajorOrder(t *testing.T) {
	t.Parallel()

	geom, _ := NewGeometry(2, 2)
	buf := []byte{
		1, 2, 3, 4, 5, 6, // row 0
		7, 8, 9, 10, 11, 12, // row 1
	}
	grid, err := Decode(buf, geom)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	want := PixelGrid{
		{{R: 1, G: 2, B: 3}, {R: 4, G: 5, B: 6}},
		{{R: 7, G: 8, B: 9}, {R: 10, G: 11, B: 12}},
	}
	for y := range want {
		for x := range want[y] {
			if grid[y][x] != want[y][x] {
				t.Errorf("pixel (%d,%d) = %+v, want %+v", x, y, grid[y][x], want[y][x])
			}
		}
	}
}

func TestDecodeRejectsWrongSize(t *testing.T) {
	t.Parallel()

	geom, _ := NewGeometry(4, 4)
	for _, n := range []int{0, 1, geom.FrameBytes() - 1, geom.FrameBytes() + 1, geom.FrameBytes() * 2} {
		_, err := Decode(make([]byte, n), geom)
		if !errors.Is(err, ErrMalformedFrame) {
			t.Errorf("Decode with %d bytes: err = %v, want ErrMalformedFrame", n, err)
		}
	}
}

func TestConvertPreservesShape(t *testing.T) {
	t.Parallel()

	ramp := ascii.MustRamp(ascii.DefaultRamp)

	// Small grid exercises the sequential path, tall grid the parallel one.
	for _, dims := range [][2]int{{3, 2}, {5, parallelRowThreshold + 8}} {
		w, h := dims[0], dims[1]
		pixels := make(PixelGrid, h)
		for y := range pixels {
			pixels[y] = make([]Pixel, w)
		}

		grid := Convert(pixels, ramp)
		if len(grid) != h {
			t.Fatalf("Convert: %d rows, want %d", len(grid), h)
		}
		for y, row := range grid {
			if len(row) != w {
				t.Fatalf("Convert: row %d has %d cells, want %d", y, len(row), w)
			}
		}
	}
}

func TestConvertAppliesClassifierElementwise(t *testing.T) {
	t.Parallel()

	ramp := ascii.MustRamp(ascii.DefaultRamp)
	pixels := PixelGrid{
		{{R: 255, G: 0, B: 0}, {R: 255, G: 255, B: 255}},
		{{R: 0, G: 0, B: 0}, {R: 0, G: 200, B: 0}},
	}

	grid := Convert(pixels, ramp)
	for y, row := range pixels {
		for x, p := range row {
			want := ramp.Classify(p.R, p.G, p.B)
			if grid[y][x] != want {
				t.Errorf("cell (%d,%d) = %+v, want %+v", x, y, grid[y][x], want)
			}
		}
	}
}

func TestConvertParallelMatchesSequential(t *testing.T) {
	t.Parallel()

	ramp := ascii.MustRamp(ascii.DefaultRamp)
	h := parallelRowThreshold + 16
	w := 31
	pixels := make(PixelGrid, h)
	for y := range pixels {
		pixels[y] = make([]Pixel, w)
		for x := range pixels[y] {
			pixels[y][x] = Pixel{R: uint8(x * 7), G: uint8(y * 3), B: uint8(x + y)}
		}
	}

	grid := Convert(pixels, ramp)
	for y := range pixels {
		for x := range pixels[y] {
			p := pixels[y][x]
			if want := ramp.Classify(p.R, p.G, p.B); grid[y][x] != want {
				t.Fatalf("parallel cell (%d,%d) = %+v, want %+v", x, y, grid[y][x], want)
			}
		}
	}
}
