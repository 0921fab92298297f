// ABOUTME: Capture session supervisor: Xephyr + GUI app + ffmpeg as one unit
// ABOUTME: errgroup lifetime; any member exiting tears the session down

package capture

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/mauromedda/termlens/internal/frame"
	"github.com/mauromedda/termlens/internal/log"
)

// Config describes one capture session.
type Config struct {
	Display     int            // X display number for the nested server
	Screen      frame.Geometry // Xephyr screen size (capture resolution)
	Output      frame.Geometry // cell grid geometry the pipeline consumes
	AppCommand  string         // user command run inside the nested display
	XephyrPath  string
	FFmpegPath  string
	ScaleFilter bool // let ffmpeg scale; false means in-process scaling
}

// Validate checks the session configuration.
func (c Config) Validate() error {
	if c.Display < 0 {
		return fmt.Errorf("invalid display number %d", c.Display)
	}
	if c.AppCommand == "" {
		return fmt.Errorf("no app command configured")
	}
	if c.Screen.Width < 1 || c.Screen.Height < 1 {
		return fmt.Errorf("invalid capture geometry %s", c.Screen)
	}
	if c.Output.Width < 1 || c.Output.Height < 1 {
		return fmt.Errorf("invalid output geometry %s", c.Output)
	}
	return nil
}

// Session owns the three external processes whose stdout pipe feeds
// the pipeline. All of them live and die together.
type Session struct {
	cfg Config

	ctx    context.Context
	cancel context.CancelFunc
	eg     *errgroup.Group
	source io.ReadCloser

	closeOnce sync.Once
	closeErr  error
}

// NewSession returns an unstarted session.
func NewSession(cfg Config) *Session {
	return &Session{cfg: cfg}
}

// Start brings up Xephyr, the app, and ffmpeg, in that order, and
// returns the raw RGB24 byte source. The session tears itself down if
// any member process exits or ctx is cancelled.
func (s *Session) Start(ctx context.Context) (io.Reader, error) {
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	s.ctx = ctx
	s.cancel = cancel

	xephyr, err := startXephyr(ctx, s.cfg.XephyrPath, s.cfg.Display, s.cfg.Screen)
	if err != nil {
		cancel()
		return nil, err
	}

	app, err := startApp(ctx, s.cfg.AppCommand, s.cfg.Display)
	if err != nil {
		cancel()
		_ = xephyr.Wait()
		return nil, err
	}

	ffmpeg, stdout, err := startFFmpeg(ctx, s.cfg.FFmpegPath, s.cfg.Display, s.cfg.Output, s.cfg.ScaleFilter)
	if err != nil {
		cancel()
		_ = app.Wait()
		_ = xephyr.Wait()
		return nil, err
	}
	s.source = stdout

	eg, egCtx := errgroup.WithContext(ctx)
	s.eg = eg
	supervise(eg, egCtx, cancel, "Xephyr", xephyr)
	supervise(eg, egCtx, cancel, "app", app)
	supervise(eg, egCtx, cancel, "ffmpeg", ffmpeg)

	return stdout, nil
}

// supervise waits on one member process and cancels the session when it
// exits first. Whether the exit was voluntary must be decided before
// cancelling, or the first exiter's own failure would look like a
// teardown kill.
func supervise(eg *errgroup.Group, ctx context.Context, cancel context.CancelFunc, name string, cmd *exec.Cmd) {
	eg.Go(func() error {
		err := cmd.Wait()
		selfExited := ctx.Err() == nil
		if selfExited {
			// Exited on its own: the session is over. The app quitting
			// cleanly is the normal way a run ends.
			log.Info("%s exited, shutting down capture session", name)
			cancel()
		}
		if err == nil || !selfExited {
			// Clean exit, or killed by teardown; not a reportable failure.
			return nil
		}
		return fmt.Errorf("%s: %w", name, err)
	})
}

// ShuttingDown reports whether teardown has begun, either because a
// member exited or because Close ran. A source error observed after
// this returns true is a casualty of the shutdown, not a stream fault.
func (s *Session) ShuttingDown() bool {
	return s.ctx != nil && s.ctx.Err() != nil
}

// Close tears the session down and waits for all members. Idempotent.
// Returns the first member's own failure, if any; teardown kills are
// not failures.
// Closing the source pipe unblocks any reader mid-frame.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
		if s.source != nil {
			_ = s.source.Close()
		}
		if s.eg != nil {
			s.closeErr = s.eg.Wait()
		}
	})
	return s.closeErr
}
