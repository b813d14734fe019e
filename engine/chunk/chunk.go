// Package chunk merges consecutive transcript segments into retrievable
// windows. Chunks carry the time span and speaker set of their segments.
package chunk

import (
	"errors"

	"github.com/clipseek/clipseek/engine/tfidf"
	"github.com/clipseek/clipseek/engine/transcript"
	"github.com/clipseek/clipseek/pkg/fn"
)

// ErrEmptyInput is returned when there are no segments to chunk.
var ErrEmptyInput = errors.New("no segments to chunk")

// Chunk is a contiguous run of transcript segments treated as one
// retrievable unit. Vector is populated during a search and never persisted.
type Chunk struct {
	Text     string       `json:"text"`
	Start    float64      `json:"start"`
	End      float64      `json:"end"`
	Duration float64      `json:"duration"`
	Speakers []string     `json:"speakers"`
	Vector   tfidf.Vector `json:"-"`
}

// Split merges segments into chunks of up to size segments each. The final
// chunk may be shorter. Every segment lands in exactly one chunk, in order.
func Split(segments []transcript.Segment, size int) ([]Chunk, error) {
	if len(segments) == 0 {
		return nil, ErrEmptyInput
	}
	if size < 1 {
		size = 1
	}

	chunks := make([]Chunk, 0, (len(segments)+size-1)/size)
	for i := 0; i < len(segments); i += size {
		end := i + size
		if end > len(segments) {
			end = len(segments)
		}
		chunks = append(chunks, merge(segments[i:end]))
	}
	return chunks, nil
}

func merge(segments []transcript.Segment) Chunk {
	var text string
	for i, seg := range segments {
		if i > 0 {
			text += " "
		}
		text += seg.Text
	}

	speakers := fn.Unique(fn.Map(segments, func(s transcript.Segment) string {
		return s.Speaker
	}))

	start := segments[0].Start
	end := segments[len(segments)-1].End
	return Chunk{
		Text:     text,
		Start:    start,
		End:      end,
		Duration: end - start,
		Speakers: speakers,
	}
}
