package domain

import "strings"

// ValidateParams checks tuning parameters against their documented ranges.
func ValidateParams(p Params) error {
	if p.SimilarityThreshold < 0 || p.SimilarityThreshold > 1 {
		return invalid("similarity_threshold", p.SimilarityThreshold, ErrThresholdRange)
	}
	if p.ChunkSize < 1 || p.ChunkSize > 20 {
		return invalid("chunk_size", p.ChunkSize, ErrChunkSizeRange)
	}
	if p.TopK < 1 || p.TopK > 50 {
		return invalid("top_k", p.TopK, ErrTopKRange)
	}
	if p.MinResults < 0 || p.MinResults > 10 {
		return invalid("min_results", p.MinResults, ErrMinResultsRange)
	}
	return nil
}

// ValidateRequest checks a search request, including its parameters.
func ValidateRequest(req SearchRequest) error {
	if strings.TrimSpace(req.Query) == "" {
		return invalid("query", req.Query, ErrEmptyQuery)
	}
	if len(req.Videos) == 0 {
		return invalid("videos", req.Videos, ErrNoVideos)
	}
	for _, v := range req.Videos {
		if strings.TrimSpace(v) == "" {
			return invalid("videos", v, ErrNoVideos)
		}
	}
	return ValidateParams(req.Params)
}
