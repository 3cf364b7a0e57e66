package queue

import (
	"context"
	"encoding/json"

	"github.com/rabbitmq/amqp091-go"

	"github.com/graphlens/lens/internal/storage"
	"github.com/graphlens/lens/pkg/logger"
	"github.com/graphlens/lens/pkg/session"
)

// RefreshMsg names the artifact location to reload from. Exactly one of
// OutputDir and S3Prefix is expected.
type RefreshMsg struct {
	OutputDir string `json:"output_dir,omitempty"`
	S3Prefix  string `json:"s3_prefix,omitempty"`
}

// RunRefreshConsumer processes refresh notifications until the context is
// done. Each message replaces the current session snapshot; a failed
// reload is dead-lettered, not retried forever.
func RunRefreshConsumer(
	ctx context.Context,
	ch *amqp091.Channel,
	store *session.Store,
	fetcher *storage.ArtifactFetcher,
) {
	deliveries, err := Consume(ch, RefreshQueue)
	if err != nil {
		logger.Error("[Queue] Refresh consumer unavailable", "err", err)
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case delivery, ok := <-deliveries:
			if !ok {
				return
			}
			if err := handleRefresh(ctx, delivery.Body, store, fetcher); err != nil {
				logger.Error("[Queue] Refresh failed", "err", err)
				_ = delivery.Nack(false, false)
				continue
			}
			_ = delivery.Ack(false)
		}
	}
}

func handleRefresh(
	ctx context.Context,
	body []byte,
	store *session.Store,
	fetcher *storage.ArtifactFetcher,
) error {
	var msg RefreshMsg
	if err := json.Unmarshal(body, &msg); err != nil {
		return err
	}

	switch {
	case msg.OutputDir != "":
		snapshot, err := store.LoadDir(ctx, msg.OutputDir)
		if err != nil {
			return err
		}
		logger.Info("[Queue] Reloaded from directory", "dir", msg.OutputDir, "load_id", snapshot.ID)
	case msg.S3Prefix != "" && fetcher.Configured():
		files, err := fetcher.Fetch(ctx, msg.S3Prefix)
		if err != nil {
			return err
		}
		snapshot, err := store.Load(ctx, files)
		if err != nil {
			return err
		}
		logger.Info("[Queue] Reloaded from S3", "prefix", msg.S3Prefix, "load_id", snapshot.ID)
	default:
		logger.Warn("[Queue] Refresh message without usable location", "body", string(body))
	}
	return nil
}
