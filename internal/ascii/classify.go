// ABOUTME: Pixel classifier mapping an RGB triple to a glyph and ANSI color class
// ABOUTME: Rec. 709 luminance selects the glyph; per-channel thresholds the color

package ascii

// ColorClass is a 3-bit ANSI color index in [0,7]:
// bit0 = red, bit1 = green, bit2 = blue. 0 is black, 7 is white.
type ColorClass uint8

// Cell is one rendered character: a glyph standing in for luminance and
// a coarse color class. Immutable once produced.
type Cell struct {
	Glyph string
	Color ColorClass
}

// channelThreshold is the cutoff above which a channel counts as lit.
// Strictly greater-than: a channel at exactly 128 stays dark.
const channelThreshold = 128

// Classify maps one RGB pixel to a Cell. Pure and total: every triple
// is valid input and the same triple always yields the same Cell.
func (r Ramp) Classify(red, green, blue uint8) Cell {
	return Cell{
		Glyph: r.glyphs[r.glyphIndex(red, green, blue)],
		Color: ColorClassOf(red, green, blue),
	}
}

// glyphIndex quantizes Rec. 709 luminance into a ramp index.
// Floor division keeps bucket edges stable: 256 luminance levels map
// onto len(glyphs) buckets without round-to-nearest drift.
func (r Ramp) glyphIndex(red, green, blue uint8) int {
	lum := 0.2126*float64(red) + 0.7152*float64(green) + 0.0722*float64(blue)
	idx := int(lum / 255.0 * float64(len(r.glyphs)-1))
	if idx < 0 {
		idx = 0
	}
	if idx > len(r.glyphs)-1 {
		idx = len(r.glyphs) - 1
	}
	return idx
}

// ColorClassOf derives the 3-bit color class from per-channel
// thresholding, independent of the glyph choice.
func ColorClassOf(red, green, blue uint8) ColorClass {
	var c ColorClass
	if red > channelThreshold {
		c |= 1
	}
	if green > channelThreshold {
		c |= 2
	}
	if blue > channelThreshold {
		c |= 4
	}
	return c
}
