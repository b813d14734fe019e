package main

import (
	"context"
	"log/slog"

	"github.com/nats-io/nats.go"

	"github.com/clipseek/clipseek/engine/search"
	"github.com/clipseek/clipseek/pkg/natsutil"
)

// Subjects mirroring the API server's live status feed.
const (
	subjectProgress = "search.progress"
	subjectComplete = "search.complete"
)

// natsNotifier relays per-video progress while a batch runs.
type natsNotifier struct {
	nc  *nats.Conn
	log *slog.Logger
}

func (n *natsNotifier) Progress(ctx context.Context, ev search.ProgressEvent) {
	if err := natsutil.Publish(ctx, n.nc, subjectProgress, ev); err != nil {
		n.log.Warn("progress publish failed", "err", err)
	}
}

func (n *natsNotifier) Complete(ctx context.Context, ev search.CompleteEvent) {
	if err := natsutil.Publish(ctx, n.nc, subjectComplete, ev); err != nil {
		n.log.Warn("complete publish failed", "err", err)
	}
}
