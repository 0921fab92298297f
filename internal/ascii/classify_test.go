// ABOUTME: Tests for the pixel classifier: luminance buckets and color classes
// ABOUTME: Covers threshold boundary strictness and monotonic glyph quantization

package ascii

import (
	"strings"
	"testing"
)

func rampIndex(t *testing.T, r Ramp, glyph string) int {
	t.Helper()
	for i := 0; i < r.Len(); i++ {
		if r.Glyph(i) == glyph {
			return i
		}
	}
	t.Fatalf("glyph %q not in ramp %q", glyph, r.String())
	return -1
}

func TestClassifyRedDominant(t *testing.T) {
	t.Parallel()

	r := MustRamp(DefaultRamp)
	for _, red := range []uint8{129, 200, 255} {
		cell := r.Classify(red, 0, 128)
		if cell.Color != 1 {
			t.Errorf("Classify(%d, 0, 128): color = %d, want 1", red, cell.Color)
		}
	}
}

func TestClassifyThresholdIsStrict(t *testing.T) {
	t.Parallel()

	r := MustRamp(DefaultRamp)
	cell := r.Classify(128, 128, 128)
	if cell.Color != 0 {
		t.Errorf("Classify(128,128,128): color = %d, want 0 (threshold is strict >)", cell.Color)
	}

	cell = r.Classify(129, 129, 129)
	if cell.Color != 7 {
		t.Errorf("Classify(129,129,129): color = %d, want 7", cell.Color)
	}
}

func TestColorClassOfAllCorners(t *testing.T) {
	t.Parallel()

	cases := []struct {
		r, g, b uint8
		want    ColorClass
	}{
		{0, 0, 0, 0},
		{255, 0, 0, 1},
		{0, 255, 0, 2},
		{255, 255, 0, 3},
		{0, 0, 255, 4},
		{255, 0, 255, 5},
		{0, 255, 255, 6},
		{255, 255, 255, 7},
	}
	for _, tc := range cases {
		if got := ColorClassOf(tc.r, tc.g, tc.b); got != tc.want {
			t.Errorf("ColorClassOf(%d,%d,%d) = %d, want %d", tc.r, tc.g, tc.b, got, tc.want)
		}
	}
}

func TestGlyphIndexMonotonicInLuminance(t *testing.T) {
	t.Parallel()

	r := MustRamp(DefaultRamp)
	prev := 0
	for v := 0; v < 256; v++ {
		// Gray input: luminance equals the channel value exactly.
		cell := r.Classify(uint8(v), uint8(v), uint8(v))
		idx := rampIndex(t, r, cell.Glyph)
		if idx < prev {
			t.Fatalf("glyph index decreased at luminance %d: %d -> %d", v, prev, idx)
		}
		prev = idx
	}
}

func TestClassifyExtremes(t *testing.T) {
	t.Parallel()

	r := MustRamp(DefaultRamp)

	dark := r.Classify(10, 10, 10)
	if dark.Glyph != r.Glyph(0) {
		t.Errorf("near-black pixel: glyph = %q, want %q", dark.Glyph, r.Glyph(0))
	}
	if dark.Color != 0 {
		t.Errorf("near-black pixel: color = %d, want 0", dark.Color)
	}

	bright := r.Classify(255, 255, 255)
	if bright.Glyph != r.Glyph(r.Len()-1) {
		t.Errorf("white pixel: glyph = %q, want %q", bright.Glyph, r.Glyph(r.Len()-1))
	}
	if bright.Color != 7 {
		t.Errorf("white pixel: color = %d, want 7", bright.Color)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	t.Parallel()

	r := MustRamp(DefaultRamp)
	a := r.Classify(87, 199, 12)
	b := r.Classify(87, 199, 12)
	if a != b {
		t.Errorf("Classify is not deterministic: %+v vs %+v", a, b)
	}
}

func TestGreenWeighsMostBlueLeast(t *testing.T) {
	t.Parallel()

	r := MustRamp(DefaultRamp)
	green := rampIndex(t, r, r.Classify(0, 255, 0).Glyph)
	red := rampIndex(t, r, r.Classify(255, 0, 0).Glyph)
	blue := rampIndex(t, r, r.Classify(0, 0, 255).Glyph)

	if !(green > red && red > blue) {
		t.Errorf("perceptual weighting violated: green=%d red=%d blue=%d", green, red, blue)
	}
}

func TestRampStringRoundTrip(t *testing.T) {
	t.Parallel()

	r := MustRamp(DefaultRamp)
	if r.String() != DefaultRamp {
		t.Errorf("String() = %q, want %q", r.String(), DefaultRamp)
	}
	if !strings.HasPrefix(r.String(), " ") {
		t.Error("default ramp must start with space (darkest glyph)")
	}
}
