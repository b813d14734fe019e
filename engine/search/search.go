// Package search orchestrates the retrieval pipeline: acquire a transcript,
// chunk it, build a TF-IDF space, rank chunks against the query and format
// the winners. Batch searches process videos independently so one failure
// never sinks the rest.
package search

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/clipseek/clipseek/engine/chunk"
	"github.com/clipseek/clipseek/engine/domain"
	"github.com/clipseek/clipseek/engine/rank"
	"github.com/clipseek/clipseek/engine/result"
	"github.com/clipseek/clipseek/engine/tfidf"
	"github.com/clipseek/clipseek/engine/transcript"
	"github.com/clipseek/clipseek/pkg/fn"
)

// TranscriptSource acquires a transcript for a video.
type TranscriptSource interface {
	Acquire(ctx context.Context, videoID string, preferredLangs []string) (*transcript.Transcript, error)
}

// VideoResult is the outcome of searching one video.
type VideoResult struct {
	VideoID          string          `json:"video_id"`
	URL              string          `json:"url"`
	Title            string          `json:"title,omitempty"`
	Uploader         string          `json:"uploader,omitempty"`
	TranscriptSource string          `json:"transcript_source,omitempty"`
	Query            string          `json:"query"`
	Timestamp        time.Time       `json:"timestamp"`
	ChunkCount       int             `json:"chunk_count"`
	FromCache        bool            `json:"from_cache"`
	Results          []result.Result `json:"results"`
}

// VideoError records a video that failed during a batch search.
type VideoError struct {
	VideoID string `json:"video_id"`
	Error   string `json:"error"`
}

// BatchResult aggregates a multi-video search.
type BatchResult struct {
	Query           string        `json:"query"`
	ProcessedCount  int           `json:"processed_count"`
	SuccessfulCount int           `json:"successful_count"`
	Videos          []VideoResult `json:"videos"`
	Errors          []VideoError  `json:"errors,omitempty"`
}

// Service runs searches end to end.
type Service struct {
	source      TranscriptSource
	transcripts *transcript.Store
	artifacts   *ArtifactStore
	notifier    Notifier
	log         *slog.Logger
}

// NewService wires the search pipeline. notifier may be nil.
func NewService(source TranscriptSource, transcripts *transcript.Store, artifacts *ArtifactStore, notifier Notifier, log *slog.Logger) *Service {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		source:      source,
		transcripts: transcripts,
		artifacts:   artifacts,
		notifier:    notifier,
		log:         log,
	}
}

// pipelineState carries intermediate values between pipeline stages.
type pipelineState struct {
	query  string
	params domain.Params

	segments []transcript.Segment
	chunks   []chunk.Chunk
	queryVec tfidf.Vector
	ranked   []rank.Scored
	results  []result.Result
	videoID  string
	baseURL  string
}

// baseURLOf keeps the caller's URL for deep links when the video was given
// as a URL rather than a bare ID.
func baseURLOf(raw string) string {
	if strings.Contains(raw, "://") {
		return raw
	}
	return ""
}

// SearchBatch runs the query over every requested video sequentially.
// Failed videos are collected as errors while the rest proceed.
func (s *Service) SearchBatch(ctx context.Context, req domain.SearchRequest) (*BatchResult, error) {
	if err := domain.ValidateRequest(req); err != nil {
		return nil, err
	}

	batch := &BatchResult{Query: req.Query}
	total := len(req.Videos)
	for i, raw := range req.Videos {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		videoID := transcript.ResolveVideoID(raw)
		s.notifier.Progress(ctx, ProgressEvent{
			Query:      req.Query,
			VideoID:    videoID,
			Stage:      "start",
			VideoIndex: i + 1,
			VideoTotal: total,
		})

		batch.ProcessedCount++
		vr, err := s.searchOne(ctx, videoID, baseURLOf(raw), req.Query, req.Params)
		if err != nil {
			s.log.Warn("video search failed", "video_id", videoID, "error", err)
			batch.Errors = append(batch.Errors, VideoError{VideoID: videoID, Error: err.Error()})
			continue
		}
		batch.SuccessfulCount++
		batch.Videos = append(batch.Videos, *vr)
	}

	var resultCount int
	for _, v := range batch.Videos {
		resultCount += len(v.Results)
	}
	s.notifier.Complete(ctx, CompleteEvent{
		Query:           req.Query,
		ProcessedCount:  batch.ProcessedCount,
		SuccessfulCount: batch.SuccessfulCount,
		ResultCount:     resultCount,
	})
	return batch, nil
}

// SearchVideo runs the query over a single video. The input may be a URL
// or a bare video ID.
func (s *Service) SearchVideo(ctx context.Context, video, query string, params domain.Params) (*VideoResult, error) {
	if err := domain.ValidateRequest(domain.SearchRequest{
		Query:  query,
		Videos: []string{video},
		Params: params,
	}); err != nil {
		return nil, err
	}
	return s.searchOne(ctx, transcript.ResolveVideoID(video), baseURLOf(video), query, params)
}

func (s *Service) searchOne(ctx context.Context, videoID, baseURL, query string, params domain.Params) (*VideoResult, error) {
	t, fromCache, err := s.loadOrAcquire(ctx, videoID, params.PreferredLanguages)
	if err != nil {
		return nil, err
	}

	url := baseURL
	if url == "" {
		url = transcript.CanonicalURL(videoID)
	}
	vr := &VideoResult{
		VideoID:          videoID,
		URL:              url,
		Title:            t.Metadata.Title,
		Uploader:         t.Metadata.Uploader,
		TranscriptSource: t.Metadata.TranscriptSource,
		Query:            query,
		Timestamp:        time.Now().UTC(),
		FromCache:        fromCache,
	}
	if len(t.Segments) == 0 {
		// A legitimately empty transcript yields zero results, not an error.
		return vr, nil
	}

	state := &pipelineState{
		query:    query,
		params:   params,
		segments: t.Segments,
		videoID:  videoID,
		baseURL:  baseURL,
	}
	pipeline := fn.Pipeline(
		fn.TracedStage("chunk", s.chunkStage),
		fn.TracedStage("vectorize", s.vectorizeStage),
		fn.TracedStage("rank", s.rankStage),
		fn.TracedStage("format", s.formatStage),
	)
	state, err = pipeline(ctx, state).Unwrap()
	if err != nil {
		return nil, err
	}

	vr.ChunkCount = len(state.chunks)
	vr.Results = state.results
	s.persist(videoID, baseURL, query, params, state)
	return vr, nil
}

// loadOrAcquire serves a cached transcript when available, otherwise pulls
// one from the source and caches it.
func (s *Service) loadOrAcquire(ctx context.Context, videoID string, langs []string) (*transcript.Transcript, bool, error) {
	if s.transcripts != nil && s.transcripts.Exists(videoID) {
		t, err := s.transcripts.Load(videoID)
		if err == nil {
			return t, true, nil
		}
		s.log.Warn("cached transcript unreadable, refetching", "video_id", videoID, "error", err)
	}

	t, err := s.source.Acquire(ctx, videoID, langs)
	if err != nil {
		return nil, false, err
	}
	if s.transcripts != nil {
		if err := s.transcripts.Save(t); err != nil {
			s.log.Warn("transcript cache write failed", "video_id", videoID, "error", err)
		}
	}
	return t, false, nil
}

func (s *Service) chunkStage(ctx context.Context, st *pipelineState) fn.Result[*pipelineState] {
	chunks, err := chunk.Split(st.segments, st.params.ChunkSize)
	if err != nil {
		return fn.Err[*pipelineState](err)
	}
	st.chunks = chunks
	return fn.Ok(st)
}

func (s *Service) vectorizeStage(ctx context.Context, st *pipelineState) fn.Result[*pipelineState] {
	docs := fn.Map(st.chunks, func(c chunk.Chunk) string { return c.Text })
	model, err := tfidf.Fit(docs)
	if err != nil {
		return fn.Err[*pipelineState](err)
	}
	st.queryVec = model.Transform(st.query)
	for i := range st.chunks {
		st.chunks[i].Vector = model.Transform(st.chunks[i].Text)
	}
	return fn.Ok(st)
}

func (s *Service) rankStage(ctx context.Context, st *pipelineState) fn.Result[*pipelineState] {
	st.ranked = rank.Rank(st.chunks, st.queryVec,
		st.params.SimilarityThreshold, st.params.MinResults, st.params.TopK)
	return fn.Ok(st)
}

func (s *Service) formatStage(ctx context.Context, st *pipelineState) fn.Result[*pipelineState] {
	st.results = result.Format(st.ranked, st.videoID, st.baseURL)
	return fn.Ok(st)
}

// persist writes search artifacts best-effort; failures are logged, never
// returned.
func (s *Service) persist(videoID, baseURL, query string, params domain.Params, st *pipelineState) {
	if s.artifacts == nil {
		return
	}
	if err := s.artifacts.SaveChunks(videoID, baseURL, params.ChunkSize, st.chunks); err != nil {
		s.log.Warn("chunk artifact write failed", "video_id", videoID, "error", err)
	}
	if err := s.artifacts.SaveSearch(videoID, baseURL, query, st.results); err != nil {
		s.log.Warn("search artifact write failed", "video_id", videoID, "error", err)
	}
}
