// Package transcript acquires and stores timed transcripts for YouTube
// videos. Segments keep their start/end offsets so downstream retrieval can
// deep-link into the video.
package transcript

// DefaultSpeaker labels segments when no speaker detection ran.
const DefaultSpeaker = "Speaker 1"

// Segment is one timed utterance.
type Segment struct {
	Text    string  `json:"text"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Speaker string  `json:"speaker"`
}

// Metadata describes where a transcript came from.
type Metadata struct {
	Title            string `json:"title,omitempty"`
	Uploader         string `json:"uploader,omitempty"`
	TranscriptSource string `json:"transcript_source"`
}

// Transcript is the full timed transcript for one video.
type Transcript struct {
	VideoID       string    `json:"video_id"`
	Metadata      Metadata  `json:"metadata"`
	Segments      []Segment `json:"segments"`
	TotalDuration float64   `json:"total_duration"`
}
