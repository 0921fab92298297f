// ABOUTME: Tests for reconciling the pump result with the capture session's
// ABOUTME: Member failures must surface; shutdown pipe casualties must not

package main

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/mauromedda/termlens/internal/frame"
	"github.com/mauromedda/termlens/internal/pump"
)

func TestCaptureOutcome(t *testing.T) {
	t.Parallel()

	memberErr := errors.New("ffmpeg: exit status 1")
	malformed := fmt.Errorf("%w: source closed after 3 of 12 bytes", frame.ErrMalformedFrame)
	sourceErr := fmt.Errorf("%w: read |0: file already closed", pump.ErrSource)
	sinkErr := errors.New("sink render failed: short write")

	cases := []struct {
		name        string
		runErr      error
		closeErr    error
		interrupted bool
		want        error
	}{
		{
			// A member crashing right after startup closes the pipe at a
			// frame boundary; the pump drains cleanly but the run failed.
			name:     "member failure outranks clean drain",
			closeErr: memberErr,
			want:     memberErr,
		},
		{
			name:        "member failure outranks pipe casualty",
			runErr:      malformed,
			closeErr:    memberErr,
			interrupted: true,
			want:        memberErr,
		},
		{
			name:     "member failure outranks cancellation",
			runErr:   context.Canceled,
			closeErr: memberErr,
			want:     memberErr,
		},
		{
			// App quit, teardown killed ffmpeg mid-frame: clean end.
			name:        "shutdown maps malformed frame to clean",
			runErr:      malformed,
			interrupted: true,
			want:        nil,
		},
		{
			name:        "shutdown maps source error to clean",
			runErr:      sourceErr,
			interrupted: true,
			want:        nil,
		},
		{
			name:   "malformed frame without shutdown stays fatal",
			runErr: malformed,
			want:   malformed,
		},
		{
			name:     "sink failure wins over member failure",
			runErr:   sinkErr,
			closeErr: memberErr,
			want:     sinkErr,
		},
		{
			name: "clean run stays clean",
			want: nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := captureOutcome(tc.runErr, tc.closeErr, tc.interrupted); !errors.Is(got, tc.want) {
				t.Errorf("captureOutcome(%v, %v, %v) = %v, want %v", tc.runErr, tc.closeErr, tc.interrupted, got, tc.want)
			}
		})
	}
}
