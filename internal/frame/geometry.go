// ABOUTME: Frame geometry: fixed width/height/byte-depth of one raw RGB24 frame
// ABOUTME: Immutable after construction; validated once at pipeline startup

package frame

import "fmt"

// BytesPerPixel is the byte depth of the raw stream (packed RGB24).
const BytesPerPixel = 3

// Geometry describes the byte layout of one frame. It is set once from
// configuration and shared read-only across all pump iterations.
type Geometry struct {
	Width  int
	Height int
}

// NewGeometry validates and returns a frame geometry.
func NewGeometry(width, height int) (Geometry, error) {
	if width < 1 || height < 1 {
		return Geometry{}, fmt.Errorf("invalid frame geometry %dx%d: both dimensions must be positive", width, height)
	}
	return Geometry{Width: width, Height: height}, nil
}

// FrameBytes returns the exact chunk size of one frame on the wire.
func (g Geometry) FrameBytes() int {
	return g.Width * g.Height * BytesPerPixel
}

// String formats the geometry as WxH.
func (g Geometry) String() string {
	return fmt.Sprintf("%dx%d", g.Width, g.Height)
}
