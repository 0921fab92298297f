// ABOUTME: Terminal probing for the ANSI sink via golang.org/x/term
// ABOUTME: Reports interactivity and cell dimensions for geometry warnings

package display

import (
	"os"

	"golang.org/x/term"

	"github.com/mauromedda/termlens/internal/frame"
)

// TerminalCells reports the terminal's size in character cells and
// whether stdout is a terminal at all. Non-terminal stdout (a pipe or
// file) gets no size and no clamping warnings.
func TerminalCells() (frame.Geometry, bool) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return frame.Geometry{}, false
	}
	w, h, err := term.GetSize(fd)
	if err != nil || w < 1 || h < 1 {
		return frame.Geometry{}, false
	}
	return frame.Geometry{Width: w, Height: h}, true
}
