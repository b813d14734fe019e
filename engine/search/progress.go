package search

import "context"

// ProgressEvent reports a pipeline stage transition during a batch search.
type ProgressEvent struct {
	Query      string `json:"query"`
	VideoID    string `json:"video_id"`
	Stage      string `json:"stage"`
	VideoIndex int    `json:"video_index"`
	VideoTotal int    `json:"video_total"`
}

// CompleteEvent reports a finished batch.
type CompleteEvent struct {
	Query           string `json:"query"`
	ProcessedCount  int    `json:"processed_count"`
	SuccessfulCount int    `json:"successful_count"`
	ResultCount     int    `json:"result_count"`
}

// Notifier receives live status for presentation layers. Implementations
// must not block the search.
type Notifier interface {
	Progress(ctx context.Context, ev ProgressEvent)
	Complete(ctx context.Context, ev CompleteEvent)
}

// NopNotifier discards all events.
type NopNotifier struct{}

func (NopNotifier) Progress(context.Context, ProgressEvent) {}
func (NopNotifier) Complete(context.Context, CompleteEvent) {}
