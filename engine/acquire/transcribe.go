package acquire

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/clipseek/clipseek/engine/transcript"
	"github.com/clipseek/clipseek/pkg/resilience"
)

// TranscribeClient sends audio files to a whisper-compatible speech-to-text
// HTTP service and converts its verbose response into timed segments.
type TranscribeClient struct {
	baseURL string
	client  *http.Client
	breaker *resilience.Breaker
}

// NewTranscribeClient creates a client for the service at baseURL.
func NewTranscribeClient(baseURL string, client *http.Client) *TranscribeClient {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Minute}
	}
	return &TranscribeClient{
		baseURL: baseURL,
		client:  client,
		breaker: resilience.NewBreaker(resilience.DefaultBreakerOpts),
	}
}

// transcribeResponse is the verbose_json response shape.
type transcribeResponse struct {
	Segments []struct {
		Text  string  `json:"text"`
		Start float64 `json:"start"`
		End   float64 `json:"end"`
	} `json:"segments"`
}

// Transcribe uploads the audio file and returns its timed segments.
func (c *TranscribeClient) Transcribe(ctx context.Context, audioPath string) ([]transcript.Segment, error) {
	var segments []transcript.Segment
	err := c.breaker.Call(ctx, func(ctx context.Context) error {
		var err error
		segments, err = c.transcribe(ctx, audioPath)
		return err
	})
	return segments, err
}

func (c *TranscribeClient) transcribe(ctx context.Context, audioPath string) ([]transcript.Segment, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, err
	}
	if err := mw.WriteField("response_format", "verbose_json"); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/audio/transcriptions", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("transcription service status %d: %s", resp.StatusCode, body)
	}

	var tr transcribeResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return nil, fmt.Errorf("decode transcription response: %w", err)
	}

	segments := make([]transcript.Segment, 0, len(tr.Segments))
	for _, s := range tr.Segments {
		segments = append(segments, transcript.Segment{
			Text:    s.Text,
			Start:   s.Start,
			End:     s.End,
			Speaker: transcript.DefaultSpeaker,
		})
	}
	return segments, nil
}
