// ABOUTME: ANSI display sink: full-screen repaint of a cell grid per frame
// ABOUTME: Run-length coalesced SGR color escapes, buffered and flushed per frame

package display

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/mauromedda/termlens/internal/frame"
)

const (
	escHome        = "\x1b[H"
	escClear       = "\x1b[2J"
	escReset       = "\x1b[0m"
	escHideCursor  = "\x1b[?25l"
	escShowCursor  = "\x1b[?25h"
	escEnterScreen = "\x1b[?1049h"
	escLeaveScreen = "\x1b[?1049l"
)

// ANSI renders cell grids as 8-color SGR output. Render returns only
// after the frame has been flushed to the underlying writer, which is
// the sink's commit point.
type ANSI struct {
	out *bufio.Writer
}

// NewANSI wraps w in a buffered frame renderer.
func NewANSI(w io.Writer) *ANSI {
	return &ANSI{out: bufio.NewWriterSize(w, 64*1024)}
}

// Start switches to the alternate screen and hides the cursor.
func (a *ANSI) Start() error {
	if _, err := a.out.WriteString(escEnterScreen + escHideCursor + escClear); err != nil {
		return fmt.Errorf("entering screen: %w", err)
	}
	return a.out.Flush()
}

// Stop restores the cursor and primary screen. Safe to call after a
// failed Start.
func (a *ANSI) Stop() error {
	if _, err := a.out.WriteString(escReset + escShowCursor + escLeaveScreen); err != nil {
		return fmt.Errorf("leaving screen: %w", err)
	}
	return a.out.Flush()
}

// Render repaints the whole grid from the top-left corner. Color
// escapes are emitted only when the class changes along a row.
func (a *ANSI) Render(ctx context.Context, grid frame.Grid) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	a.out.WriteString(escHome)
	for _, row := range grid {
		// Force an escape for the first cell of every row.
		last := -1
		for _, cell := range row {
			if int(cell.Color) != last {
				fmt.Fprintf(a.out, "\x1b[3%dm", cell.Color)
				last = int(cell.Color)
			}
			a.out.WriteString(cell.Glyph)
		}
		a.out.WriteString(escReset + "\r\n")
	}

	if err := a.out.Flush(); err != nil {
		return fmt.Errorf("flushing frame: %w", err)
	}
	return nil
}
