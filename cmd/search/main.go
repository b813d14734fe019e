// Package main implements a one-shot transcript search from the command
// line. It shares the full pipeline with the API server, including the
// on-disk transcript cache.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/clipseek/clipseek/engine/acquire"
	"github.com/clipseek/clipseek/engine/domain"
	"github.com/clipseek/clipseek/engine/search"
	"github.com/clipseek/clipseek/engine/transcript"
)

func main() {
	var (
		video      = flag.String("video", "", "YouTube URL or video ID (required)")
		query      = flag.String("query", "", "what to look for (required)")
		dataDir    = flag.String("data-dir", "data", "transcript and artifact directory")
		topK       = flag.Int("top-k", 5, "maximum results")
		chunkSize  = flag.Int("chunk-size", 6, "segments per chunk")
		threshold  = flag.Float64("threshold", 0.1, "minimum similarity score")
		minResults = flag.Int("min-results", 1, "results guaranteed even below the threshold")
		langs      = flag.String("langs", "en", "comma-separated caption language preference")
		whisperURL = flag.String("whisper-url", "", "speech-to-text service for videos without captions")
		ytdlpBin   = flag.String("ytdlp", "yt-dlp", "yt-dlp binary for audio download")
		asJSON     = flag.Bool("json", false, "print results as JSON")
		verbose    = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	if *video == "" || *query == "" {
		flag.Usage()
		os.Exit(2)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	params := domain.Params{
		SimilarityThreshold: *threshold,
		MinResults:          *minResults,
		ChunkSize:           *chunkSize,
		TopK:                *topK,
		PreferredLanguages:  strings.Split(*langs, ","),
	}

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
		nil,
		logger,
	)

	vr, err := svc.SearchVideo(context.Background(), *video, *query, params)
	if err != nil {
		fmt.Fprintln(os.Stderr, "search failed:", err)
		os.Exit(1)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(vr)
		return
	}
	printResults(vr, *query)
}

func printResults(vr *search.VideoResult, query string) {
	if len(vr.Results) == 0 {
		fmt.Printf("No moments found for %q in %s\n", query, vr.VideoID)
		return
	}

	title := vr.Title
	if title == "" {
		title = vr.VideoID
	}
	fmt.Printf("Found %d moment(s) for %q in %s\n\n", len(vr.Results), query, title)

	for _, r := range vr.Results {
		fmt.Printf("%d. [%s] %s (score %.3f)\n", r.Rank, r.Timestamp, r.Confidence, r.Score)
		if len(r.Speakers) > 0 {
			fmt.Printf("   %s: %s\n", strings.Join(r.Speakers, ", "), r.Text)
		} else {
			fmt.Printf("   %s\n", r.Text)
		}
		fmt.Printf("   %s\n\n", r.URL)
	}
}
