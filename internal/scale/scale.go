// ABOUTME: In-process pixel grid downscaler for sources that cannot scale
// ABOUTME: CatmullRom interpolation via x/image/draw over an RGBA round-trip

package scale

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/mauromedda/termlens/internal/frame"
)

// Grid resamples a decoded pixel grid to the target geometry. When the
// capture source applies its own scale filter this never runs; it
// exists for raw sources (files, stdin, ffmpeg with scaling disabled)
// whose frames arrive at capture resolution.
func Grid(pixels frame.PixelGrid, to frame.Geometry) frame.PixelGrid {
	srcH := len(pixels)
	if srcH == 0 {
		return pixels
	}
	srcW := len(pixels[0])
	if srcW == to.Width && srcH == to.Height {
		return pixels
	}

	src := image.NewRGBA(image.Rect(0, 0, srcW, srcH))
	for y, row := range pixels {
		for x, p := range row {
			off := src.PixOffset(x, y)
			src.Pix[off] = p.R
			src.Pix[off+1] = p.G
			src.Pix[off+2] = p.B
			src.Pix[off+3] = 0xFF
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, to.Width, to.Height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	out := make(frame.PixelGrid, to.Height)
	for y := 0; y < to.Height; y++ {
		row := make([]frame.Pixel, to.Width)
		for x := 0; x < to.Width; x++ {
			off := dst.PixOffset(x, y)
			row[x] = frame.Pixel{R: dst.Pix[off], G: dst.Pix[off+1], B: dst.Pix[off+2]}
		}
		out[y] = row
	}
	return out
}
