// ABOUTME: CLI flag parsing using stdlib flag package
// ABOUTME: Flags override config file values, which override defaults

package main

import "flag"

type cliArgs struct {
	app       string
	width     int
	height    int
	scale     int
	display   int
	renderer  string
	ramp      string
	rampChars string
	input     string
	stats     string
	scaleHere bool
	debug     bool
	version   bool
	manual    bool
}

func parseFlags() cliArgs {
	var args cliArgs

	flag.StringVar(&args.app, "app", "", "GUI command to run and capture (e.g. xclock)")
	flag.IntVar(&args.width, "width", 0, "Capture width in pixels")
	flag.IntVar(&args.height, "height", 0, "Capture height in pixels")
	flag.IntVar(&args.scale, "scale", 0, "Downscale factor for the cell grid")
	flag.IntVar(&args.display, "display", 0, "Nested X display number")
	flag.StringVar(&args.renderer, "renderer", "", "Display sink: ansi or tui")
	flag.StringVar(&args.ramp, "ramp", "", "Glyph ramp preset name")
	flag.StringVar(&args.rampChars, "ramp-chars", "", "Literal glyph ramp, darkest to brightest")
	flag.StringVar(&args.input, "input", "", "Read raw RGB24 frames from a file, or - for stdin, instead of capturing")
	flag.StringVar(&args.stats, "stats", "", "Write per-frame NDJSON stats to this file")
	flag.BoolVar(&args.scaleHere, "in-process-scale", false, "Scale frames in-process instead of in ffmpeg")
	flag.BoolVar(&args.debug, "debug", false, "Enable debug logging")
	flag.BoolVar(&args.version, "version", false, "Show version and exit")
	flag.BoolVar(&args.manual, "manual", false, "Show the manual and exit")

	flag.Parse()
	return args
}
