// ABOUTME: Streaming pump: pulls exact frame-sized chunks, converts, delivers
// ABOUTME: Single pull loop with backpressure; no queue, one frame in flight

package pump

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/mauromedda/termlens/internal/ascii"
	"github.com/mauromedda/termlens/internal/frame"
	"github.com/mauromedda/termlens/internal/log"
)

// Sink accepts one converted frame and renders it, returning only after
// rendering is committed. A slow sink throttles the pump directly: the
// next chunk is not read until Render returns.
type Sink interface {
	Render(ctx context.Context, grid frame.Grid) error
}

// State is the pump's lifecycle state.
type State int32

const (
	StateIdle State = iota
	StateRunning
	StateDrained
	StateFailed
	StateCancelled
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateDrained:
		return "drained"
	case StateFailed:
		return "failed"
	case StateCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

var (
	// ErrSource wraps I/O failures from the byte source.
	ErrSource = errors.New("source read failed")
	// ErrSink wraps failures from the display sink.
	ErrSink = errors.New("sink render failed")
)

// Pump drives the conversion pipeline: byte source → decode → convert
// → sink, one frame per iteration, until the source drains or the
// context is cancelled.
type Pump struct {
	source io.Reader
	geom   frame.Geometry
	ramp   ascii.Ramp
	sink   Sink

	// OnFrame, if set before Run, is called after each delivered frame
	// with the number of source bytes that frame consumed.
	OnFrame func(bytes int)

	// Transform, if set before Run, reshapes the decoded pixel grid
	// before classification (e.g. in-process downscaling when the
	// source emits frames at capture resolution).
	Transform func(frame.PixelGrid) frame.PixelGrid

	state atomic.Int32
}

// New returns a pump ready to run. The geometry is fixed for the run.
// A nil sink may be set later with SetSink, before Run.
func New(source io.Reader, geom frame.Geometry, ramp ascii.Ramp, sink Sink) *Pump {
	return &Pump{source: source, geom: geom, ramp: ramp, sink: sink}
}

// SetSink installs the display sink. Must be called before Run.
func (p *Pump) SetSink(sink Sink) {
	p.sink = sink
}

// State reports the current lifecycle state. Safe to call concurrently
// with Run.
func (p *Pump) State() State {
	return State(p.state.Load())
}

type readResult struct {
	n   int
	err error
}

// Run executes the pull loop until the source is exhausted, an error
// occurs, or ctx is cancelled. Returns nil when the source drains
// cleanly at a frame boundary, ctx.Err() on cancellation, and a wrapped
// ErrSource/ErrSink/frame.ErrMalformedFrame otherwise.
//
// Run may be called at most once per Pump.
func (p *Pump) Run(ctx context.Context) error {
	if !p.state.CompareAndSwap(int32(StateIdle), int32(StateRunning)) {
		return fmt.Errorf("pump already run (state %s)", p.State())
	}

	frameBytes := p.geom.FrameBytes()
	buf := make([]byte, frameBytes)

	// Reads happen on a dedicated goroutine so the loop can observe
	// cancellation while the source blocks. The request/reply handshake
	// keeps the source strictly one frame behind the sink: frame N+1's
	// bytes are not requested until frame N has been delivered.
	reqCh := make(chan struct{})
	// resCh is buffered so a read completing after cancellation can be
	// deposited without a receiver, letting the goroutine exit.
	resCh := make(chan readResult, 1)
	go func() {
		for range reqCh {
			n, err := io.ReadFull(p.source, buf)
			resCh <- readResult{n: n, err: err}
		}
	}()
	defer close(reqCh)

	frames := 0
	for {
		select {
		case <-ctx.Done():
			p.state.Store(int32(StateCancelled))
			return ctx.Err()
		case reqCh <- struct{}{}:
		}

		var res readResult
		select {
		case <-ctx.Done():
			// The reader goroutine may still be blocked in Read; it
			// unblocks when the supervisor closes the source.
			p.state.Store(int32(StateCancelled))
			return ctx.Err()
		case res = <-resCh:
		}

		switch {
		case res.err == nil:
			// Full chunk: fall through to decode and deliver.
		case errors.Is(res.err, io.EOF):
			// Clean close at a frame boundary.
			log.Debug("source drained after %d frames", frames)
			p.state.Store(int32(StateDrained))
			return nil
		case errors.Is(res.err, io.ErrUnexpectedEOF):
			// The source closed mid-frame: the stream's cadence
			// assumptions are broken and resynchronization is undefined.
			p.state.Store(int32(StateFailed))
			return fmt.Errorf("%w: source closed after %d of %d bytes", frame.ErrMalformedFrame, res.n, frameBytes)
		default:
			p.state.Store(int32(StateFailed))
			return fmt.Errorf("%w: %v", ErrSource, res.err)
		}

		pixels, err := frame.Decode(buf, p.geom)
		if err != nil {
			p.state.Store(int32(StateFailed))
			return err
		}
		if p.Transform != nil {
			pixels = p.Transform(pixels)
		}
		grid := frame.Convert(pixels, p.ramp)

		if err := p.sink.Render(ctx, grid); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				p.state.Store(int32(StateCancelled))
				return err
			}
			p.state.Store(int32(StateFailed))
			return fmt.Errorf("%w: %v", ErrSink, err)
		}

		frames++
		if p.OnFrame != nil {
			p.OnFrame(frameBytes)
		}
	}
}
