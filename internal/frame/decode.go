// ABOUTME: Raw RGB24 frame decoding: flat byte buffer to a 2-D pixel grid
// ABOUTME: Any size mismatch is ErrMalformedFrame, signaling stream desync

package frame

import (
	"errors"
	"fmt"
)

// ErrMalformedFrame reports a buffer whose length does not match the
// frame geometry. It always means the byte stream has desynchronized
// from frame boundaries; recovery is impossible in a raw RGB stream,
// so callers treat it as fatal to the run.
var ErrMalformedFrame = errors.New("malformed frame")

// Pixel is one RGB triple. Transient: constructed per element during
// decoding, no identity beyond its value.
type Pixel struct {
	R, G, B uint8
}

// PixelGrid is a row-major grid of decoded pixels.
type PixelGrid [][]Pixel

// Decode reinterprets a flat RGB24 buffer as a pixel grid of the given
// geometry. The buffer is row-major: pixel (x,y) occupies bytes
// [(y*width+x)*3, (y*width+x)*3+3).
func Decode(buf []byte, geom Geometry) (PixelGrid, error) {
	want := geom.FrameBytes()
	if len(buf) != want {
		return nil, fmt.Errorf("%w: got %d bytes, want %d for %s", ErrMalformedFrame, len(buf), want, geom)
	}

	grid := make(PixelGrid, geom.Height)
	for y := 0; y < geom.Height; y++ {
		row := make([]Pixel, geom.Width)
		base := y * geom.Width * BytesPerPixel
		for x := 0; x < geom.Width; x++ {
			off := base + x*BytesPerPixel
			row[x] = Pixel{R: buf[off], G: buf[off+1], B: buf[off+2]}
		}
		grid[y] = row
	}
	return grid, nil
}
