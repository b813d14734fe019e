package main

import (
	"context"
	"log/slog"

	"github.com/nats-io/nats.go"

	"github.com/clipseek/clipseek/engine/search"
	"github.com/clipseek/clipseek/pkg/natsutil"
)

// NATS subjects for live search status.
const (
	subjectProgress = "search.progress"
	subjectComplete = "search.complete"
)

// natsNotifier relays search progress onto NATS subjects. Publish failures
// are logged and swallowed so a flaky broker never fails a search.
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
