// ABOUTME: E2E harness: builds the termlens binary and runs it on a PTY
// ABOUTME: Frames are fed over a plain stdin pipe; output is read from the PTY

package e2e

import (
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/creack/pty"
)

var (
	buildOnce sync.Once
	binPath   string
	buildErr  error
)

// buildBinary compiles cmd/termlens once per test run.
func buildBinary(t *testing.T) string {
	t.Helper()
	buildOnce.Do(func() {
		dir, err := os.MkdirTemp("", "termlens-e2e")
		if err != nil {
			buildErr = err
			return
		}
		binPath = filepath.Join(dir, "termlens")
		cmd := exec.Command("go", "build", "-o", binPath, "github.com/mauromedda/termlens/cmd/termlens")
		cmd.Dir = ".."
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = err
			t.Logf("build output: %s", out)
		}
	})
	if buildErr != nil {
		t.Fatalf("building binary: %v", buildErr)
	}
	return binPath
}

// session is one running termlens process with PTY-attached output.
type session struct {
	cmd     *exec.Cmd
	ptmx    *os.File
	stdin   io.WriteCloser
	done    chan struct{}
	exitErr error

	mu  sync.Mutex
	out strings.Builder
}

// startTermlens launches the binary with stdout/stderr on a PTY and
// stdin on a regular pipe, so binary frame data arrives unmangled.
func startTermlens(t *testing.T, args ...string) *session {
	t.Helper()

	bin := buildBinary(t)
	cmd := exec.Command(bin, args...)
	// Isolate from any real ~/.termlens configuration.
	cmd.Env = append(os.Environ(), "HOME="+t.TempDir())

	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Fatalf("opening pty: %v", err)
	}
	cmd.Stdout = tty
	cmd.Stderr = tty

	stdin, err := cmd.StdinPipe()
	if err != nil {
		t.Fatalf("stdin pipe: %v", err)
	}

	if err := cmd.Start(); err != nil {
		t.Fatalf("starting %s: %v", bin, err)
	}
	_ = tty.Close()

	s := &session{cmd: cmd, ptmx: ptmx, stdin: stdin, done: make(chan struct{})}
	go func() {
		buf := make([]byte, 4096)
		for {
			n, err := ptmx.Read(buf)
			if n > 0 {
				s.mu.Lock()
				s.out.Write(buf[:n])
				s.mu.Unlock()
			}
			if err != nil {
				return
			}
		}
	}()
	go func() {
		s.exitErr = cmd.Wait()
		close(s.done)
	}()

	return s
}

// output returns everything read from the PTY so far.
func (s *session) output() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.out.String()
}

// expectStringTimeout polls the PTY output for a substring.
func (s *session) expectStringTimeout(t *testing.T, want string, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if strings.Contains(s.output(), want) {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %q in output:\n%s", want, s.output())
}

// waitExit blocks until the process exits and returns its exit code.
func (s *session) waitExit(t *testing.T, timeout time.Duration) int {
	t.Helper()
	select {
	case <-s.done:
		if s.exitErr == nil {
			return 0
		}
		if ee, ok := s.exitErr.(*exec.ExitError); ok {
			return ee.ExitCode()
		}
		t.Fatalf("wait: %v", s.exitErr)
		return -1
	case <-time.After(timeout):
		t.Fatal("process did not exit in time")
		return -1
	}
}

// close tears the session down unconditionally.
func (s *session) close() {
	_ = s.stdin.Close()
	_ = s.cmd.Process.Kill()
	<-s.done
	_ = s.ptmx.Close()
}
