package domain

// SearchPayload is the wire shape of a search invocation as consumed from
// the HTTP and NATS boundaries. Tuning fields are optional pointers so an
// omitted field can be told apart from an explicit zero; omitted fields
// resolve to DefaultParams.
type SearchPayload struct {
	Query               string   `json:"query"`
	Videos              []string `json:"video_urls_or_ids"`
	TopK                *int     `json:"top_k,omitempty"`
	SimilarityThreshold *float64 `json:"similarity_threshold,omitempty"`
	ChunkSize           *int     `json:"chunk_size,omitempty"`
	MinResults          *int     `json:"min_results,omitempty"`
	PreferredLanguage   *string  `json:"preferred_language,omitempty"`
}

// Request resolves the payload into a SearchRequest, filling every omitted
// tuning field from DefaultParams. Validation still happens downstream.
func (p SearchPayload) Request() SearchRequest {
	params := DefaultParams()
	if p.SimilarityThreshold != nil {
		params.SimilarityThreshold = *p.SimilarityThreshold
	}
	if p.MinResults != nil {
		params.MinResults = *p.MinResults
	}
	if p.ChunkSize != nil {
		params.ChunkSize = *p.ChunkSize
	}
	if p.TopK != nil {
		params.TopK = *p.TopK
	}
	if p.PreferredLanguage != nil && *p.PreferredLanguage != "" {
		params.PreferredLanguages = []string{*p.PreferredLanguage}
	}
	return SearchRequest{Query: p.Query, Videos: p.Videos, Params: params}
}
