// Command worker consumes batch search requests from NATS and publishes
// results back, so frontends can run long searches asynchronously instead
// of holding an HTTP request open.
package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/clipseek/clipseek/engine/acquire"
	"github.com/clipseek/clipseek/engine/domain"
	"github.com/clipseek/clipseek/engine/search"
	"github.com/clipseek/clipseek/engine/transcript"
	"github.com/clipseek/clipseek/pkg/metrics"
	"github.com/clipseek/clipseek/pkg/natsutil"
)

var met = metrics.New()

var (
	mRequests = met.Counter("clipseek_worker_requests_total", "Search requests consumed")
	mFailed   = met.Counter("clipseek_worker_failures_total", "Search requests that failed outright")
	mVideos   = met.Counter("clipseek_worker_videos_total", "Videos processed")
	mActive   = met.Gauge("clipseek_worker_active", "Searches currently running")
	mDuration = met.Histogram("clipseek_worker_search_seconds", "Batch search wall time",
		[]float64{0.5, 1, 5, 15, 60, 300})
)

// NATS subjects for the async search flow.
const (
	subjectRequest = "search.request"
	subjectResult  = "search.result"
	subjectFailed  = "search.failed"
)

// failedEvent is published when a request cannot be processed at all.
type failedEvent struct {
	Query string `json:"query"`
	Error string `json:"error"`
}

func main() {
	var (
		natsURL     = flag.String("nats", nats.DefaultURL, "NATS server URL")
		dataDir     = flag.String("data-dir", "data", "transcript and artifact directory")
		whisperURL  = flag.String("whisper-url", "", "speech-to-text service for videos without captions")
		ytdlpBin    = flag.String("ytdlp", "yt-dlp", "yt-dlp binary for audio download")
		metricsAddr = flag.String("metrics-addr", ":9091", "address for the /metrics endpoint")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	nc, err := nats.Connect(*natsURL)
	if err != nil {
		logger.Error("nats connect failed", "error", err)
		os.Exit(1)
	}
	defer nc.Close()
	logger.Info("connected to NATS", "url", *natsURL)

	var downloader acquire.AudioDownloader
	var transcriber acquire.Transcriber
	if *whisperURL != "" {
		downloader = acquire.NewDownloader(*ytdlpBin, os.TempDir())
		transcriber = acquire.NewTranscribeClient(*whisperURL, nil)
	}
	source := acquire.NewService(transcript.NewFetcher(nil), downloader, transcriber, logger)

	svc := search.NewService(
		source,
		transcript.NewStore(*dataDir),
		search.NewArtifactStore(*dataDir),
		&natsNotifier{nc: nc, log: logger},
		logger,
	)

	go func() {
		mux := http.NewServeMux()
		mux.Handle("GET /metrics", met.Handler())
		srv := &http.Server{Addr: *metricsAddr, Handler: mux, ReadTimeout: 5 * time.Second}
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server failed", "error", err)
		}
	}()

	// Requests arrive in the flat wire shape; omitted tuning fields fall
	// back to process defaults before validation.
	sub, err := natsutil.Subscribe(nc, subjectRequest, func(msgCtx context.Context, payload domain.SearchPayload) {
		mRequests.Inc()
		mActive.Inc()
		defer mActive.Dec()

		req := payload.Request()
		start := time.Now()
		batch, err := svc.SearchBatch(msgCtx, req)
		mDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			mFailed.Inc()
			logger.Error("search request failed", "query", req.Query, "error", err)
			if perr := natsutil.Publish(msgCtx, nc, subjectFailed, failedEvent{
				Query: req.Query,
				Error: err.Error(),
			}); perr != nil {
				logger.Warn("failure publish failed", "error", perr)
			}
			return
		}
		mVideos.Add(int64(batch.ProcessedCount))

		if err := natsutil.Publish(msgCtx, nc, subjectResult, batch); err != nil {
			logger.Warn("result publish failed", "query", req.Query, "error", err)
		}
	})
	if err != nil {
		logger.Error("subscribe failed", "error", err)
		os.Exit(1)
	}
	defer sub.Unsubscribe()

	logger.Info("worker listening", "subject", subjectRequest)
	<-ctx.Done()
	logger.Info("shutting down")
}
