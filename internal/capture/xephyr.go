// ABOUTME: Nested X server (Xephyr) launcher with socket-poll readiness
// ABOUTME: Replaces the original fixed startup sleep with a bounded poll

package capture

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/mauromedda/termlens/internal/frame"
	"github.com/mauromedda/termlens/internal/log"
)

const (
	// x11SocketDir is where X servers publish their unix sockets.
	x11SocketDir = "/tmp/.X11-unix"

	readyTimeout = 5 * time.Second
	readyPoll    = 50 * time.Millisecond
)

// xephyrArgs builds the Xephyr command line for a display number and
// screen geometry.
func xephyrArgs(display int, screen frame.Geometry) []string {
	return []string{
		fmt.Sprintf(":%d", display),
		"-screen", fmt.Sprintf("%dx%d", screen.Width, screen.Height),
		"-ac",
		"-br",
		"-noreset",
	}
}

// displaySocket returns the unix socket path for an X display number.
func displaySocket(display int) string {
	return filepath.Join(x11SocketDir, fmt.Sprintf("X%d", display))
}

// startXephyr launches Xephyr and waits for its display socket to
// appear. The returned command is already running; the ctx kills it.
func startXephyr(ctx context.Context, path string, display int, screen frame.Geometry) (*exec.Cmd, error) {
	cmd := exec.CommandContext(ctx, path, xephyrArgs(display, screen)...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting Xephyr: %w", err)
	}

	if err := waitForDisplay(ctx, display, readyTimeout); err != nil {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return nil, err
	}
	log.Debug("Xephyr ready on :%d (%s)", display, screen)
	return cmd, nil
}

// waitForDisplay polls for the display's unix socket until it exists,
// the timeout elapses, or ctx is cancelled.
func waitForDisplay(ctx context.Context, display int, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	sock := displaySocket(display)
	for {
		if _, err := os.Stat(sock); err == nil {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("display :%d not ready after %v (no socket at %s)", display, timeout, sock)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(readyPoll):
		}
	}
}
