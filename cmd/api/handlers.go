package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/clipseek/clipseek/engine/domain"
	"github.com/clipseek/clipseek/engine/search"
	"github.com/clipseek/clipseek/engine/transcript"
	"github.com/clipseek/clipseek/pkg/metrics"
)

var (
	reg         = metrics.New()
	metSearches = reg.Counter("clipseek_searches_total", "Total batch searches served")
	metVideos   = reg.Counter("clipseek_videos_processed_total", "Videos processed across all searches")
	metFailures = reg.Counter("clipseek_video_failures_total", "Videos that failed during a search")
	metDuration = reg.Histogram("clipseek_search_seconds", "Batch search wall time",
		[]float64{0.1, 0.5, 1, 5, 15, 60, 300})
)

func newMux(svc *search.Service, transcripts *transcript.Store, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", handleHealth)
	mux.HandleFunc("GET /api/config", handleConfig)
	mux.HandleFunc("POST /api/search", handleSearch(svc, logger))
	mux.HandleFunc("GET /api/videos/{id}", handleVideo(transcripts))
	mux.Handle("GET /metrics", reg.Handler())
	return mux
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleConfig reports the default tuning so clients can render controls.
func handleConfig(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, domain.DefaultParams())
}

func handleSearch(svc *search.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload domain.SearchPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		start := time.Now()
		batch, err := svc.SearchBatch(r.Context(), payload.Request())
		if err != nil {
			var verr *domain.ValidationError
			if errors.As(err, &verr) {
				writeError(w, http.StatusBadRequest, verr.Error())
				return
			}
			logger.Error("search failed", "err", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		metSearches.Inc()
		metVideos.Add(int64(batch.ProcessedCount))
		metFailures.Add(int64(len(batch.Errors)))
		metDuration.Observe(time.Since(start).Seconds())

		writeJSON(w, http.StatusOK, batch)
	}
}

func handleVideo(transcripts *transcript.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		videoID := transcript.ResolveVideoID(r.PathValue("id"))
		t, err := transcripts.Load(videoID)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				writeError(w, http.StatusNotFound, "no transcript for video")
				return
			}
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		writeJSON(w, http.StatusOK, t)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
