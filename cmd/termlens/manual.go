// ABOUTME: Embedded manual page rendered to the terminal with glamour
// ABOUTME: Shown by --manual; plain markdown fallback on render failure

package main

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

const manualText = `# termlens

Run a windowed X11 application and watch it live in your terminal as
colored characters.

## How it works

termlens starts a nested X server (Xephyr), launches your application
inside it, and captures the framebuffer with ffmpeg as a raw RGB24
stream. Each frame is downscaled to a character grid, every pixel is
mapped to a glyph by perceptual luminance and to one of 8 ANSI colors
by per-channel thresholding, and the grid is repainted in place.

## Usage

    termlens --app xclock
    termlens --app "xterm -fa Monospace" --renderer tui
    termlens --input frames.rgb24 --width 800 --height 600

## Configuration

Settings merge in order: built-in defaults, ~/.termlens/config.yaml,
./.termlens/config.yaml, then flags. Example:

    app: xclock
    width: 800
    height: 600
    scale: 2
    renderer: tui
    ramp: classic

## Ramps

A ramp orders glyphs from darkest to brightest. Presets: classic,
blocks, shade, binary, dots. Or pass your own with --ramp-chars; every
glyph must occupy exactly one terminal cell.

## Exit status

0 when the stream drains or you quit; 1 when capture or rendering
fails.
`

// printManual renders the manual with terminal styling, falling back
// to the raw markdown if the renderer cannot initialize.
func printManual() {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		fmt.Print(manualText)
		return
	}
	out, err := r.Render(manualText)
	if err != nil {
		fmt.Print(manualText)
		return
	}
	fmt.Print(out)
}
