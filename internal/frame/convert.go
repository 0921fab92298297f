// ABOUTME: Frame conversion: elementwise pixel classification into a cell grid
// ABOUTME: Rows are classified in parallel via errgroup above a size threshold

package frame

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/mauromedda/termlens/internal/ascii"
)

// Grid is one converted frame: a row-major grid of cells matching the
// source pixel grid's shape. A Grid is owned by whoever holds it; the
// pipeline never mutates one after handoff.
type Grid [][]ascii.Cell

// parallelRowThreshold is the row count below which conversion runs
// sequentially; goroutine overhead dominates for small frames.
const parallelRowThreshold = 64

// Convert applies the classifier to every pixel, preserving shape and
// row/column order. Point-sampling only: no filtering across pixels.
func Convert(pixels PixelGrid, ramp ascii.Ramp) Grid {
	out := make(Grid, len(pixels))

	if len(pixels) < parallelRowThreshold {
		for y, row := range pixels {
			out[y] = convertRow(row, ramp)
		}
		return out
	}

	// Rows are pixel-independent, so this is safe to fan out. Ordering
	// is preserved because each goroutine writes only its own index.
	var eg errgroup.Group
	eg.SetLimit(runtime.NumCPU())
	for y, row := range pixels {
		eg.Go(func() error {
			out[y] = convertRow(row, ramp)
			return nil
		})
	}
	// Classification cannot fail; Wait only joins the workers.
	_ = eg.Wait()
	return out
}

func convertRow(row []Pixel, ramp ascii.Ramp) []ascii.Cell {
	cells := make([]ascii.Cell, len(row))
	for x, p := range row {
		cells[x] = ramp.Classify(p.R, p.G, p.B)
	}
	return cells
}
