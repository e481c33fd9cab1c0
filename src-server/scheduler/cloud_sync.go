package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"planningapp/src-server/cloud"
	"planningapp/src-server/store"
)

// CloudPush pushes the local collection to the cloud when a session exists.
// Background-only and best-effort: a failed push is logged and retried on
// the next tick, explicit sync from the client surfaces errors instead.
func CloudPush(s *store.EventStore) {
	if !s.HasSession() {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := s.SyncToCloud(ctx); err != nil {
		if errors.Is(err, cloud.ErrNoSession) {
			// signed out between the check and the push
			return
		}
		slog.Error("CloudPush: can't sync events", "error", err)
	}
}
