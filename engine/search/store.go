package search

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clipseek/clipseek/engine/chunk"
	"github.com/clipseek/clipseek/engine/result"
)

// ArtifactStore persists per-video search artifacts under
// <root>/<videoID>/: the chunk layout and one file per executed search.
type ArtifactStore struct {
	root string
}

// NewArtifactStore creates an artifact store rooted at dir.
func NewArtifactStore(dir string) *ArtifactStore {
	return &ArtifactStore{root: dir}
}

// chunkArtifact is the persisted chunk layout. Vectors are query-dependent
// and never stored.
type chunkArtifact struct {
	VideoID    string        `json:"video_id"`
	BaseURL    string        `json:"base_url,omitempty"`
	ChunkSize  int           `json:"chunk_size"`
	ChunkCount int           `json:"chunk_count"`
	Chunks     []chunk.Chunk `json:"chunks"`
}

// searchArtifact is one executed search and its results.
type searchArtifact struct {
	ID        string          `json:"id"`
	Query     string          `json:"query"`
	VideoID   string          `json:"video_id"`
	BaseURL   string          `json:"base_url,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	Results   []result.Result `json:"results"`
}

// SaveChunks records the chunk layout used for a video.
func (s *ArtifactStore) SaveChunks(videoID, baseURL string, chunkSize int, chunks []chunk.Chunk) error {
	dir := filepath.Join(s.root, videoID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(chunkArtifact{
		VideoID:    videoID,
		BaseURL:    baseURL,
		ChunkSize:  chunkSize,
		ChunkCount: len(chunks),
		Chunks:     chunks,
	}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "chunks.json"), data, 0o644)
}

// SaveSearch records an executed search under searches/<slug>-<id>.json.
func (s *ArtifactStore) SaveSearch(videoID, baseURL, query string, results []result.Result) error {
	dir := filepath.Join(s.root, videoID, "searches")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	id := uuid.NewString()
	data, err := json.MarshalIndent(searchArtifact{
		ID:        id,
		Query:     query,
		VideoID:   videoID,
		BaseURL:   baseURL,
		Timestamp: time.Now().UTC(),
		Results:   results,
	}, "", "  ")
	if err != nil {
		return err
	}

	name := slugify(query) + "-" + id[:8] + ".json"
	return os.WriteFile(filepath.Join(dir, name), data, 0o644)
}

// slugify reduces a query to a safe filename fragment.
func slugify(query string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(query)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			sb.WriteByte('-')
		}
	}
	slug := strings.Trim(sb.String(), "-")
	if len(slug) > 40 {
		slug = slug[:40]
	}
	if slug == "" {
		slug = "search"
	}
	return slug
}
