package transcript

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store persists transcripts on disk under <root>/<videoID>/. Alongside the
// JSON artifact it writes plain-text and SRT renderings for human review.
type Store struct {
	root string
}

// NewStore creates a transcript store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{root: dir}
}

func (s *Store) videoDir(videoID string) string {
	return filepath.Join(s.root, videoID)
}

func (s *Store) jsonPath(videoID string) string {
	return filepath.Join(s.videoDir(videoID), "transcript.json")
}

// Exists reports whether a cached transcript is available for the video.
func (s *Store) Exists(videoID string) bool {
	_, err := os.Stat(s.jsonPath(videoID))
	return err == nil
}

// Load reads a cached transcript.
func (s *Store) Load(videoID string) (*Transcript, error) {
	data, err := os.ReadFile(s.jsonPath(videoID))
	if err != nil {
		return nil, err
	}
	var t Transcript
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decode transcript %s: %w", videoID, err)
	}
	return &t, nil
}

// Save writes the transcript JSON plus TXT and SRT renderings.
func (s *Store) Save(t *Transcript) error {
	dir := s.videoDir(t.VideoID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.jsonPath(t.VideoID), data, 0o644); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "transcript.txt"), []byte(RenderText(t)), 0o644); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "transcript.srt"), []byte(RenderSRT(t)), 0o644)
}

// RenderText renders the transcript as speaker-prefixed lines.
func RenderText(t *Transcript) string {
	var sb strings.Builder
	for _, seg := range t.Segments {
		fmt.Fprintf(&sb, "[%s] %s: %s\n", FormatOffset(seg.Start), seg.Speaker, seg.Text)
	}
	return sb.String()
}

// RenderSRT renders the transcript in SubRip format.
func RenderSRT(t *Transcript) string {
	var sb strings.Builder
	for i, seg := range t.Segments {
		fmt.Fprintf(&sb, "%d\n%s --> %s\n%s\n\n",
			i+1, srtTimestamp(seg.Start), srtTimestamp(seg.End), seg.Text)
	}
	return sb.String()
}

// FormatOffset renders seconds as MM:SS, rolling minutes past 59.
func FormatOffset(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// srtTimestamp renders seconds as HH:MM:SS,mmm.
func srtTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	ms := int(seconds*1000 + 0.5)
	h := ms / 3600000
	ms -= h * 3600000
	m := ms / 60000
	ms -= m * 60000
	sec := ms / 1000
	ms -= sec * 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, sec, ms)
}
