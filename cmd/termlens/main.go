// ABOUTME: CLI entry point: config + flags, capture session, pipeline, sink
// ABOUTME: Maps the pump outcome to exit status; 0 on drain/quit, 1 on failure

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mauromedda/termlens/internal/ascii"
	"github.com/mauromedda/termlens/internal/capture"
	"github.com/mauromedda/termlens/internal/config"
	"github.com/mauromedda/termlens/internal/display"
	"github.com/mauromedda/termlens/internal/display/tui"
	"github.com/mauromedda/termlens/internal/frame"
	"github.com/mauromedda/termlens/internal/log"
	"github.com/mauromedda/termlens/internal/pump"
	"github.com/mauromedda/termlens/internal/scale"
	"github.com/mauromedda/termlens/internal/telemetry"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	args := parseFlags()

	if args.version {
		fmt.Printf("termlens %s (%s, %s)\n", version, commit, date)
		return 0
	}
	if args.manual {
		printManual()
		return 0
	}
	if args.debug {
		log.SetLevel(log.LevelDebug)
	}

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	settings, err := config.Load(cwd)
	if err != nil {
		log.Error("%v", err)
		return 1
	}
	applyFlags(settings, args)
	if err := settings.Validate(); err != nil {
		log.Error("%v", err)
		return 1
	}

	ramp, rampName, err := buildRamp(settings)
	if err != nil {
		log.Error("%v", err)
		return 1
	}

	output, err := settings.OutputGeometry()
	if err != nil {
		log.Error("%v", err)
		return 1
	}
	captureGeom, err := settings.CaptureGeometry()
	if err != nil {
		log.Error("%v", err)
		return 1
	}

	// Frames on the wire are either pre-scaled to the cell grid or
	// arrive at capture resolution and get scaled in-process.
	decodeGeom := output
	if settings.InProcessScale {
		decodeGeom = captureGeom
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	source, sess, cleanup, err := openSource(ctx, args.input, settings, captureGeom, decodeGeom)
	if err != nil {
		log.Error("%v", err)
		return 1
	}
	defer cleanup()

	tracker := telemetry.NewTracker()
	events, closeEvents, err := openStats(settings.StatsFile)
	if err != nil {
		log.Error("%v", err)
		return 1
	}
	defer closeEvents()

	p := pump.New(source, decodeGeom, ramp, nil)
	if settings.InProcessScale {
		p.Transform = func(pixels frame.PixelGrid) frame.PixelGrid {
			return scale.Grid(pixels, output)
		}
	}
	seq := 0
	p.OnFrame = func(frameBytes int) {
		tracker.Observe(frameBytes)
		if events != nil {
			seq++
			s := tracker.Snapshot()
			if err := events.WriteFrame(seq, frameBytes, s.FPS, time.Now()); err != nil {
				log.Warn("stats write failed: %v", err)
			}
		}
	}

	var runErr error
	switch settings.Renderer {
	case config.RendererTUI:
		runErr = runTUI(ctx, cancel, p, tui.Deps{
			AppName:  appLabel(settings, args),
			Geometry: output,
			RampName: rampName,
			Tracker:  tracker,
			Cancel:   cancel,
		})
	default:
		runErr = runANSI(ctx, p, output)
	}

	if sess != nil {
		interrupted := sess.ShuttingDown()
		runErr = captureOutcome(runErr, sess.Close(), interrupted)
	}

	if runErr == nil || errors.Is(runErr, context.Canceled) {
		s := tracker.Snapshot()
		log.Info("done: %d frames in %v (%s)", s.Frames, s.Elapsed.Round(time.Millisecond), p.State())
		return 0
	}
	log.Error("pipeline failed: %v", runErr)
	return 1
}

// buildRamp resolves the glyph ramp: a literal --ramp-chars string
// wins over the configured preset name.
func buildRamp(settings *config.Settings) (ascii.Ramp, string, error) {
	if settings.RampChars != "" {
		r, err := ascii.ParseRamp(settings.RampChars)
		if err != nil {
			return ascii.Ramp{}, "", err
		}
		return r, "custom", nil
	}
	r, err := ascii.Preset(settings.Ramp)
	if err != nil {
		return ascii.Ramp{}, "", err
	}
	return r, settings.Ramp, nil
}

// openSource returns the raw frame byte source: a file, stdin, or a
// live capture session. The session, when present, is returned so the
// run can fold its outcome into the pump's; the cleanup func is a
// safety net for early exits (Close is idempotent).
func openSource(ctx context.Context, input string, settings *config.Settings, captureGeom, decodeGeom frame.Geometry) (io.Reader, *capture.Session, func(), error) {
	switch {
	case input == "-":
		return os.Stdin, nil, func() {}, nil
	case input != "":
		f, err := os.Open(input)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("opening input: %w", err)
		}
		return f, nil, func() { _ = f.Close() }, nil
	}

	if settings.App == "" {
		return nil, nil, nil, fmt.Errorf("nothing to capture: set --app or --input")
	}
	sess := capture.NewSession(capture.Config{
		Display:     settings.Display,
		Screen:      captureGeom,
		Output:      decodeGeom,
		AppCommand:  settings.App,
		XephyrPath:  settings.XephyrPath,
		FFmpegPath:  settings.FFmpegPath,
		ScaleFilter: !settings.InProcessScale,
	})
	source, err := sess.Start(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	return source, sess, func() { _ = sess.Close() }, nil
}

// captureOutcome reconciles the pump's result with the capture
// session's. A member process failing on its own outranks whatever the
// pump saw through the pipe; conversely, a pipe torn mid-frame by a
// session-initiated shutdown (the app quit, ffmpeg got killed) is a
// clean end of stream, not a fault.
func captureOutcome(runErr, closeErr error, interrupted bool) error {
	pipeCasualty := errors.Is(runErr, frame.ErrMalformedFrame) || errors.Is(runErr, pump.ErrSource)
	if closeErr != nil {
		if runErr != nil && !errors.Is(runErr, context.Canceled) && !pipeCasualty {
			log.Warn("capture session: %v", closeErr)
			return runErr
		}
		return closeErr
	}
	if interrupted && pipeCasualty {
		return nil
	}
	return runErr
}

// openStats opens the NDJSON event writer if a stats file is set.
func openStats(path string) (*telemetry.EventWriter, func(), error) {
	if path == "" {
		return nil, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening stats file: %w", err)
	}
	return telemetry.NewEventWriter(f), func() { _ = f.Close() }, nil
}

// runANSI drives the pump with the plain escape-sequence sink.
func runANSI(ctx context.Context, p *pump.Pump, output frame.Geometry) error {
	sink := display.NewANSI(os.Stdout)
	p.SetSink(sink)

	onTerminal := false
	if cells, ok := display.TerminalCells(); ok {
		onTerminal = true
		if output.Width > cells.Width || output.Height > cells.Height {
			log.Warn("cell grid %s exceeds terminal %s; raise the scale factor", output, cells)
		}
	}

	if onTerminal {
		if err := sink.Start(); err != nil {
			return err
		}
		defer func() {
			if err := sink.Stop(); err != nil {
				log.Warn("restoring terminal: %v", err)
			}
		}()
	}

	return p.Run(ctx)
}

// runTUI drives the pump against the Bubble Tea viewer. The pump runs
// on its own goroutine; the program owns the terminal until it exits.
func runTUI(ctx context.Context, cancel context.CancelFunc, p *pump.Pump, deps tui.Deps) error {
	sink := tui.NewSink(deps)
	p.SetSink(sink)
	sink.Start()

	pumpDone := make(chan error, 1)
	go func() { pumpDone <- p.Run(ctx) }()

	runErr := <-pumpDone
	cancel()
	sink.Quit()
	if err := sink.Wait(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

// appLabel names the stream for the TUI footer.
func appLabel(settings *config.Settings, args cliArgs) string {
	if args.input == "-" {
		return "stdin"
	}
	if args.input != "" {
		return args.input
	}
	return settings.App
}

// applyFlags overlays non-zero flag values onto the merged settings.
func applyFlags(s *config.Settings, args cliArgs) {
	if args.app != "" {
		s.App = args.app
	}
	if args.width != 0 {
		s.Width = args.width
	}
	if args.height != 0 {
		s.Height = args.height
	}
	if args.scale != 0 {
		s.Scale = args.scale
	}
	if args.display != 0 {
		s.Display = args.display
	}
	if args.renderer != "" {
		s.Renderer = args.renderer
	}
	if args.ramp != "" {
		s.Ramp = args.ramp
	}
	if args.rampChars != "" {
		s.RampChars = args.rampChars
	}
	if args.stats != "" {
		s.StatsFile = args.stats
	}
	if args.scaleHere {
		s.InProcessScale = true
	}
}
