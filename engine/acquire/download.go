// Package acquire obtains transcripts for videos without usable captions:
// it downloads the audio track and sends it to a speech-to-text service.
package acquire

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/clipseek/clipseek/pkg/fn"
)

// ErrUnavailable means neither captions nor audio transcription could
// produce a transcript for the video.
var ErrUnavailable = errors.New("transcript unavailable")

// Downloader pulls the audio track of a video with yt-dlp.
type Downloader struct {
	bin     string
	workDir string
	retry   fn.RetryOpts
}

// NewDownloader creates a downloader using the given yt-dlp binary and
// working directory for temporary audio files.
func NewDownloader(bin, workDir string) *Downloader {
	if bin == "" {
		bin = "yt-dlp"
	}
	return &Downloader{bin: bin, workDir: workDir, retry: fn.DefaultRetry}
}

// Download fetches the audio for a video and returns the local file path.
// The caller owns the file and should remove it when done.
func (d *Downloader) Download(ctx context.Context, videoID string) (string, error) {
	if err := os.MkdirAll(d.workDir, 0o755); err != nil {
		return "", err
	}
	outPath := filepath.Join(d.workDir, videoID+".m4a")

	result := fn.Retry(ctx, d.retry, func(ctx context.Context) fn.Result[string] {
		cmd := exec.CommandContext(ctx, d.bin,
			"-f", "bestaudio[ext=m4a]/bestaudio",
			"-o", outPath,
			"--no-playlist",
			"--quiet",
			"https://youtu.be/"+videoID,
		)
		if out, err := cmd.CombinedOutput(); err != nil {
			return fn.Err[string](fmt.Errorf("yt-dlp: %w: %s", err, out))
		}
		return fn.Ok(outPath)
	})
	return result.Unwrap()
}
