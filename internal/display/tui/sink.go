// ABOUTME: Display sink adapter between the pump and the Bubble Tea program
// ABOUTME: Render blocks until the model acks the frame, or ctx/program ends

package tui

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mauromedda/termlens/internal/frame"
)

// ErrClosed is returned by Render after the viewer has exited.
var ErrClosed = errors.New("display closed")

// Sink delivers frames into a running Bubble Tea program.
type Sink struct {
	program *tea.Program
	done    chan struct{}
	runErr  error
}

// NewSink builds the program for the viewer model. Start must be
// called before the first Render.
func NewSink(deps Deps) *Sink {
	s := &Sink{done: make(chan struct{})}
	s.program = tea.NewProgram(
		NewModel(deps),
		tea.WithAltScreen(),
		tea.WithOutput(os.Stdout),
	)
	return s
}

// Start runs the program on its own goroutine.
func (s *Sink) Start() {
	go func() {
		_, err := s.program.Run()
		s.runErr = err
		close(s.done)
	}()
}

// Wait blocks until the program exits and returns its error.
func (s *Sink) Wait() error {
	<-s.done
	if s.runErr != nil {
		return fmt.Errorf("bubble tea: %w", s.runErr)
	}
	return nil
}

// Quit asks the program to exit; used on pipeline teardown.
func (s *Sink) Quit() {
	s.program.Quit()
}

// Render hands one frame to the program and blocks until the model has
// accepted it. A closed viewer or cancelled context unblocks delivery,
// so a stuck display cannot wedge the pump.
func (s *Sink) Render(ctx context.Context, grid frame.Grid) error {
	ack := make(chan struct{})
	s.program.Send(frameMsg{grid: grid, ack: ack})

	select {
	case <-ack:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-s.done:
		return ErrClosed
	}
}
