// ABOUTME: Glyph ramp parsing and validation for luminance quantization
// ABOUTME: Grapheme-aware (uniseg) with display-width checks via go-runewidth

package ascii

import (
	"fmt"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"
)

// DefaultRamp is the classic 10-step ramp, sparsest to densest.
const DefaultRamp = " .:-=+*%@#"

// Ramp is an ordered sequence of glyphs from darkest to brightest.
// Each glyph is one grapheme cluster occupying exactly one terminal cell.
type Ramp struct {
	glyphs []string
}

// ParseRamp builds a Ramp from a user-supplied string. The string is
// NFC-normalized, then split into grapheme clusters so combining marks
// stay attached to their base glyph. Every glyph must have display
// width 1, and a usable ramp needs at least two steps.
func ParseRamp(s string) (Ramp, error) {
	s = norm.NFC.String(s)

	var glyphs []string
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		g := gr.Str()
		if w := runewidth.StringWidth(g); w != 1 {
			return Ramp{}, fmt.Errorf("ramp glyph %q has display width %d, want 1", g, w)
		}
		glyphs = append(glyphs, g)
	}

	if len(glyphs) < 2 {
		return Ramp{}, fmt.Errorf("ramp %q has %d glyphs, need at least 2", s, len(glyphs))
	}
	return Ramp{glyphs: glyphs}, nil
}

// MustRamp parses a ramp known at compile time; panics on error.
func MustRamp(s string) Ramp {
	r, err := ParseRamp(s)
	if err != nil {
		panic(err)
	}
	return r
}

// Len returns the number of glyphs in the ramp.
func (r Ramp) Len() int {
	return len(r.glyphs)
}

// Glyph returns the glyph at index i.
func (r Ramp) Glyph(i int) string {
	return r.glyphs[i]
}

// String reassembles the ramp as the string it was parsed from.
func (r Ramp) String() string {
	var s string
	for _, g := range r.glyphs {
		s += g
	}
	return s
}
