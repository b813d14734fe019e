// Package result turns ranked chunks into presentable search results with
// confidence tiers, timestamp ranges and deep links into the video.
package result

import (
	"fmt"
	"math"
	"strings"

	"github.com/clipseek/clipseek/engine/rank"
	"github.com/clipseek/clipseek/engine/transcript"
)

// maxTextLen is the display truncation limit for chunk text.
const maxTextLen = 300

// Confidence tiers by cosine score.
const (
	ConfidenceHigh    = "HIGH"
	ConfidenceMedium  = "MEDIUM"
	ConfidenceLow     = "LOW"
	ConfidenceVeryLow = "VERY_LOW"
)

// Result is one formatted search hit.
type Result struct {
	Rank       int      `json:"rank"`
	Score      float64  `json:"score"`
	Confidence string   `json:"confidence"`
	Timestamp  string   `json:"timestamp"`
	Start      float64  `json:"start"`
	End        float64  `json:"end"`
	Duration   float64  `json:"duration"`
	Speakers   []string `json:"speakers,omitempty"`
	Text       string   `json:"text"`
	URL        string   `json:"url"`
}

// Format renders ranked chunks as results, numbering ranks from 1. baseURL
// is the caller-supplied source URL when one is known; empty means deep
// links are synthesized from the video ID.
func Format(ranked []rank.Scored, videoID, baseURL string) []Result {
	results := make([]Result, len(ranked))
	for i, s := range ranked {
		results[i] = Result{
			Rank:       i + 1,
			Score:      s.Score,
			Confidence: ConfidenceFor(s.Score),
			Timestamp:  timestampRange(s.Chunk.Start, s.Chunk.End),
			Start:      s.Chunk.Start,
			End:        s.Chunk.End,
			Duration:   s.Chunk.Duration,
			Speakers:   s.Chunk.Speakers,
			Text:       truncate(s.Chunk.Text),
			URL:        DeepLink(videoID, baseURL, s.Chunk.Start),
		}
	}
	return results
}

// ConfidenceFor maps a cosine score to its display tier.
func ConfidenceFor(score float64) string {
	switch {
	case score >= 0.5:
		return ConfidenceHigh
	case score >= 0.3:
		return ConfidenceMedium
	case score >= 0.1:
		return ConfidenceLow
	default:
		return ConfidenceVeryLow
	}
}

// DeepLink builds a URL that starts playback at the chunk, with the offset
// floored to whole seconds. A known baseURL gets the offset appended;
// otherwise the canonical short link is synthesized from the video ID.
func DeepLink(videoID, baseURL string, start float64) string {
	offset := int(math.Floor(start))
	if baseURL != "" {
		sep := "?"
		if strings.Contains(baseURL, "?") {
			sep = "&"
		}
		return fmt.Sprintf("%s%st=%ds", baseURL, sep, offset)
	}
	return fmt.Sprintf("%s?t=%ds", transcript.CanonicalURL(videoID), offset)
}

func timestampRange(start, end float64) string {
	return transcript.FormatOffset(start) + "-" + transcript.FormatOffset(end)
}

// truncate cuts text at maxTextLen characters, not bytes, so multibyte
// transcripts keep their full display budget.
func truncate(text string) string {
	if len(text) <= maxTextLen {
		return text
	}
	runes := []rune(text)
	if len(runes) <= maxTextLen {
		return text
	}
	return string(runes[:maxTextLen]) + "..."
}
