// ABOUTME: NDJSON per-frame stats events built with easyjson's jwriter
// ABOUTME: Hand-built writer keeps reflection off the per-frame hot path

package telemetry

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/mailru/easyjson/jwriter"
)

// EventWriter emits one JSON line per delivered frame. Writes are
// serialized; the zero time format is RFC 3339 with nanoseconds.
type EventWriter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewEventWriter wraps w. The caller owns closing the underlying writer.
func NewEventWriter(w io.Writer) *EventWriter {
	return &EventWriter{w: w}
}

// WriteFrame appends one frame event line.
func (e *EventWriter) WriteFrame(seq int, frameBytes int, fps float64, ts time.Time) error {
	jw := jwriter.Writer{}
	jw.RawString(`{"seq":`)
	jw.Int(seq)
	jw.RawString(`,"bytes":`)
	jw.Int(frameBytes)
	jw.RawString(`,"fps":`)
	jw.Float64(fps)
	jw.RawString(`,"ts":`)
	jw.String(ts.Format(time.RFC3339Nano))
	jw.RawString("}\n")
	if jw.Error != nil {
		return fmt.Errorf("building frame event: %w", jw.Error)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if _, err := jw.DumpTo(e.w); err != nil {
		return fmt.Errorf("writing frame event: %w", err)
	}
	return nil
}
