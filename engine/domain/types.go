// Package domain defines the shared request types, tuning parameters and
// sentinel errors used across the retrieval engine.
package domain

// Params tunes how a transcript is chunked, scored and trimmed for a search.
type Params struct {
	// SimilarityThreshold is the minimum cosine score a chunk must reach
	// to be included in results. Range [0, 1].
	SimilarityThreshold float64 `json:"similarity_threshold"`
	// MinResults guarantees that many results even when every score falls
	// below the threshold, as long as any chunks exist. Range [0, 10].
	MinResults int `json:"min_results"`
	// ChunkSize is the number of transcript segments merged into one
	// retrievable chunk. Range [1, 20].
	ChunkSize int `json:"chunk_size"`
	// TopK caps how many results are returned. Range [1, 50].
	TopK int `json:"top_k"`
	// PreferredLanguages orders caption track selection; earlier entries
	// win. Empty means accept whatever track the video offers first.
	PreferredLanguages []string `json:"preferred_languages,omitempty"`
}

// DefaultParams returns the standard tuning for conversational video.
func DefaultParams() Params {
	return Params{
		SimilarityThreshold: 0.1,
		MinResults:          1,
		ChunkSize:           6,
		TopK:                5,
		PreferredLanguages:  []string{"en"},
	}
}

// SearchRequest asks for moments matching Query across one or more videos.
// Each entry in Videos may be a full YouTube URL or a bare 11-character ID.
type SearchRequest struct {
	Query  string   `json:"query"`
	Videos []string `json:"videos"`
	Params Params   `json:"params"`
}
