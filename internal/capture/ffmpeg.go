// ABOUTME: ffmpeg x11grab byte source: raw RGB24 frames on stdout
// ABOUTME: Builds the capture command line and exposes the stdout pipe

package capture

import (
	"context"
	"fmt"
	"io"
	"os/exec"

	"github.com/mauromedda/termlens/internal/frame"
	"github.com/mauromedda/termlens/internal/log"
)

// ffmpegArgs builds the x11grab command line. When scaleFilter is set,
// ffmpeg downscales to the output geometry before emitting; otherwise
// frames arrive at capture resolution and the in-process scaler runs.
func ffmpegArgs(display int, output frame.Geometry, scaleFilter bool) []string {
	args := []string{
		"-f", "x11grab",
		"-i", fmt.Sprintf(":%d", display),
	}
	if scaleFilter {
		args = append(args, "-vf", fmt.Sprintf("scale=%d:%d", output.Width, output.Height))
	}
	args = append(args,
		"-vcodec", "rawvideo",
		"-pix_fmt", "rgb24",
		"-an",
		"-sn",
		"-f", "rawvideo",
		"-",
	)
	return args
}

// startFFmpeg launches the grabber and returns its stdout pipe. Killing
// the process (via ctx or Close on the pipe's owner) ends the stream,
// which the pump observes as EOF or a mid-frame close.
func startFFmpeg(ctx context.Context, path string, display int, output frame.Geometry, scaleFilter bool) (*exec.Cmd, io.ReadCloser, error) {
	cmd := exec.CommandContext(ctx, path, ffmpegArgs(display, output, scaleFilter)...)
	cmd.Stderr = nil

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, nil, fmt.Errorf("ffmpeg stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, nil, fmt.Errorf("starting ffmpeg: %w", err)
	}
	log.Debug("ffmpeg grabbing :%d at %s (scale filter: %t)", display, output, scaleFilter)
	return cmd, stdout, nil
}
