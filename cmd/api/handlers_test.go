package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/clipseek/clipseek/engine/domain"
	"github.com/clipseek/clipseek/engine/search"
	"github.com/clipseek/clipseek/engine/transcript"
)

type fixedSource struct{}

func (fixedSource) Acquire(_ context.Context, videoID string, _ []string) (*transcript.Transcript, error) {
	return &transcript.Transcript{
		VideoID:  videoID,
		Metadata: transcript.Metadata{TranscriptSource: "captions"},
		Segments: []transcript.Segment{
			{Text: "brake pads squeal when worn", Start: 0, End: 4, Speaker: "Speaker 1"},
			{Text: "replace them before the rotor scores", Start: 4, End: 9, Speaker: "Speaker 1"},
		},
		TotalDuration: 9,
	}, nil
}

func testMux(t *testing.T) *http.ServeMux {
	t.Helper()
	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := transcript.NewStore(dir)
	svc := search.NewService(fixedSource{}, store, search.NewArtifactStore(dir), nil, logger)
	return newMux(svc, store, logger)
}

func TestHealthEndpoint(t *testing.T) {
	rec := httptest.NewRecorder()
	testMux(t).ServeHTTP(rec, httptest.NewRequest("GET", "/api/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestConfigEndpoint(t *testing.T) {
	rec := httptest.NewRecorder()
	testMux(t).ServeHTTP(rec, httptest.NewRequest("GET", "/api/config", nil))

	var p domain.Params
	if err := json.NewDecoder(rec.Body).Decode(&p); err != nil {
		t.Fatal(err)
	}
	if p.ChunkSize != 6 {
		t.Fatalf("unexpected defaults: %+v", p)
	}
}

func TestSearchEndpoint(t *testing.T) {
	// Tuning fields are optional; a bare query and video list must work.
	body := `{"query": "brake pads", "video_urls_or_ids": ["dQw4w9WgXcQ"]}`
	rec := httptest.NewRecorder()
	testMux(t).ServeHTTP(rec, httptest.NewRequest("POST", "/api/search", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var batch search.BatchResult
	if err := json.NewDecoder(rec.Body).Decode(&batch); err != nil {
		t.Fatal(err)
	}
	if batch.SuccessfulCount != 1 || len(batch.Videos) != 1 {
		t.Fatalf("unexpected batch: %+v", batch)
	}
}

func TestSearchEndpointAcceptsFlatTuning(t *testing.T) {
	body := `{"query": "brake pads", "video_urls_or_ids": ["dQw4w9WgXcQ"], "chunk_size": 1}`
	rec := httptest.NewRecorder()
	testMux(t).ServeHTTP(rec, httptest.NewRequest("POST", "/api/search", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var batch search.BatchResult
	if err := json.NewDecoder(rec.Body).Decode(&batch); err != nil {
		t.Fatal(err)
	}
	if len(batch.Videos) != 1 || batch.Videos[0].ChunkCount != 2 {
		t.Fatalf("chunk_size override should reach the pipeline: %+v", batch)
	}
}

func TestSearchEndpointRejectsBadParams(t *testing.T) {
	body := `{"query": "brakes", "video_urls_or_ids": ["dQw4w9WgXcQ"], "top_k": 999}`
	rec := httptest.NewRecorder()
	testMux(t).ServeHTTP(rec, httptest.NewRequest("POST", "/api/search", strings.NewReader(body)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestSearchEndpointRejectsEmptyQuery(t *testing.T) {
	body := `{"query": "", "video_urls_or_ids": ["dQw4w9WgXcQ"]}`
	rec := httptest.NewRecorder()
	testMux(t).ServeHTTP(rec, httptest.NewRequest("POST", "/api/search", strings.NewReader(body)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestVideoEndpointNotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	testMux(t).ServeHTTP(rec, httptest.NewRequest("GET", "/api/videos/dQw4w9WgXcQ", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
