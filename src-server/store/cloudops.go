package store

import (
	"context"
	"fmt"

	"planningapp/src-server/cloud"
)

// Cloud account and sync operations. All of them degrade to ErrNotConfigured
// when the store was built without a cloud client.

func (s *EventStore) SignUp(ctx context.Context, email, password string) error {
	session, err := s.cloud.SignUp(ctx, email, password)
	if err != nil {
		return fmt.Errorf("(*EventStore).SignUp: %w", err)
	}
	s.mu.Lock()
	s.session = session
	s.mu.Unlock()
	return nil
}

func (s *EventStore) SignIn(ctx context.Context, email, password string) error {
	session, err := s.cloud.SignIn(ctx, email, password)
	if err != nil {
		return fmt.Errorf("(*EventStore).SignIn: %w", err)
	}
	s.mu.Lock()
	s.session = session
	s.mu.Unlock()
	return nil
}

func (s *EventStore) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
}

func (s *EventStore) HasSession() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session != nil
}

func (s *EventStore) Session() *cloud.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil
	}
	session := *s.session
	return &session
}

// SyncToCloud pushes the whole local collection. The upsert is per record and
// last-writer-wins on updatedAt, so a stale local copy never clobbers a newer
// cloud record.
func (s *EventStore) SyncToCloud(ctx context.Context) error {
	s.mu.RLock()
	session := s.session
	s.mu.RUnlock()
	if session == nil {
		return fmt.Errorf("(*EventStore).SyncToCloud: %w", cloud.ErrNoSession)
	}

	if err := s.cloud.SyncEvents(ctx, session.UserID, s.Events()); err != nil {
		return fmt.Errorf("(*EventStore).SyncToCloud: %w", err)
	}
	s.as.MetricChans.ReportStoreMutation("sync_to_cloud")
	return nil
}

// FetchFromCloud replaces the local event collection with the cloud copy and
// persists it.
func (s *EventStore) FetchFromCloud(ctx context.Context) error {
	s.mu.RLock()
	session := s.session
	s.mu.RUnlock()
	if session == nil {
		return fmt.Errorf("(*EventStore).FetchFromCloud: %w", cloud.ErrNoSession)
	}

	events, err := s.cloud.FetchEvents(ctx, session.UserID)
	if err != nil {
		return fmt.Errorf("(*EventStore).FetchFromCloud: %w", err)
	}

	s.mu.Lock()
	s.events = events
	s.mu.Unlock()

	s.as.MetricChans.ReportStoreMutation("fetch_from_cloud")
	if err := s.saveEvents(ctx); err != nil {
		return fmt.Errorf("(*EventStore).FetchFromCloud: %w", err)
	}
	return nil
}
