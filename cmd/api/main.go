// Package main implements the clipseek API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/clipseek/clipseek/engine/acquire"
	"github.com/clipseek/clipseek/engine/search"
	"github.com/clipseek/clipseek/engine/transcript"
	"github.com/clipseek/clipseek/pkg/mid"
)

// Config holds all environment-based configuration.
type Config struct {
	Port       string
	DataDir    string
	WorkDir    string
	NATSUrl    string
	WhisperURL string
	YtdlpBin   string
	CORSOrigin string
}

func loadConfig() Config {
	return Config{
		Port:       envOr("PORT", "8080"),
		DataDir:    envOr("DATA_DIR", "data"),
		WorkDir:    envOr("WORK_DIR", os.TempDir()),
		NATSUrl:    envOr("NATS_URL", ""),
		WhisperURL: envOr("WHISPER_URL", ""),
		YtdlpBin:   envOr("YTDLP_BIN", "yt-dlp"),
		CORSOrigin: envOr("CORS_ORIGIN", "*"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := loadConfig()

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited with error", "err", err)
		os.Exit(1)
	}
}

func run(cfg Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Transcript acquisition chain ---
	fetcher := transcript.NewFetcher(nil)
	var downloader acquire.AudioDownloader
	var transcriber acquire.Transcriber
	if cfg.WhisperURL != "" {
		downloader = acquire.NewDownloader(cfg.YtdlpBin, cfg.WorkDir)
		transcriber = acquire.NewTranscribeClient(cfg.WhisperURL, nil)
	}
	source := acquire.NewService(fetcher, downloader, transcriber, logger)

	// --- Optional NATS progress notifier ---
	var notifier search.Notifier
	if cfg.NATSUrl != "" {
		nc, err := nats.Connect(cfg.NATSUrl)
		if err != nil {
			return fmt.Errorf("nats connect: %w", err)
		}
		defer nc.Close()
		notifier = &natsNotifier{nc: nc, log: logger}
		logger.Info("progress events enabled", "nats_url", cfg.NATSUrl)
	}

	// --- Search service ---
	svc := search.NewService(
		source,
		transcript.NewStore(cfg.DataDir),
		search.NewArtifactStore(cfg.DataDir),
		notifier,
		logger,
	)

	// --- HTTP server ---
	handler := mid.Chain(newMux(svc, transcript.NewStore(cfg.DataDir), logger),
		mid.Recover(logger),
		mid.Logger(logger),
		mid.CORS(cfg.CORSOrigin),
		mid.OTel("clipseek-api"),
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	// --- Graceful shutdown ---
	errCh := make(chan error, 1)
	go func() {
		logger.Info("api server starting", "port", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutCtx)
}
