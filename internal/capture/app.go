// ABOUTME: Target GUI application runner inside the nested display
// ABOUTME: Runs the user command via sh -c with DISPLAY pointed at Xephyr

package capture

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/mauromedda/termlens/internal/log"
)

// startApp launches the user's GUI command with DISPLAY set to the
// nested server. The command runs under sh -c so shell syntax in the
// configured app line keeps working.
func startApp(ctx context.Context, command string, display int) (*exec.Cmd, error) {
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Env = append(os.Environ(), fmt.Sprintf("DISPLAY=:%d", display))
	cmd.Stdout = nil
	cmd.Stderr = nil

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting app %q: %w", command, err)
	}
	log.Info("running %q on :%d", command, display)
	return cmd, nil
}
