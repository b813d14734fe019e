package acquire

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/clipseek/clipseek/engine/transcript"
)

// CaptionFetcher is the primary transcript source.
type CaptionFetcher interface {
	Fetch(ctx context.Context, videoID string, preferredLangs []string) (*transcript.Transcript, error)
}

// AudioDownloader pulls the audio track for a video.
type AudioDownloader interface {
	Download(ctx context.Context, videoID string) (string, error)
}

// Transcriber converts an audio file into timed segments.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) ([]transcript.Segment, error)
}

// Service acquires transcripts: captions first, then downloaded audio run
// through speech-to-text. Either fallback stage may be nil, in which case
// caption failures are terminal.
type Service struct {
	captions    CaptionFetcher
	downloader  AudioDownloader
	transcriber Transcriber
	log         *slog.Logger
}

// NewService wires the acquisition chain.
func NewService(captions CaptionFetcher, downloader AudioDownloader, transcriber Transcriber, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		captions:    captions,
		downloader:  downloader,
		transcriber: transcriber,
		log:         log,
	}
}

// Acquire returns a transcript for the video, with speaker labels assigned.
func (s *Service) Acquire(ctx context.Context, videoID string, preferredLangs []string) (*transcript.Transcript, error) {
	t, capErr := s.captions.Fetch(ctx, videoID, preferredLangs)
	if capErr == nil {
		transcript.AssignSpeakers(t.Segments)
		return t, nil
	}

	if !errors.Is(capErr, transcript.ErrNoCaptions) && !errors.Is(capErr, transcript.ErrNoSegments) {
		return nil, capErr
	}
	if s.downloader == nil || s.transcriber == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, videoID)
	}

	s.log.Info("no captions, falling back to audio transcription", "video_id", videoID)

	audioPath, err := s.downloader.Download(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("%w: audio download failed: %s", ErrUnavailable, err)
	}
	defer os.Remove(audioPath)

	segments, err := s.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return nil, fmt.Errorf("%w: transcription failed: %s", ErrUnavailable, err)
	}
	transcript.AssignSpeakers(segments)

	t = &transcript.Transcript{
		VideoID:  videoID,
		Metadata: transcript.Metadata{TranscriptSource: "audio"},
		Segments: segments,
	}
	if n := len(segments); n > 0 {
		t.TotalDuration = segments[n-1].End
	}
	return t, nil
}
