package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"planningapp/src-server/model"
)

// The local database mirrors the mobile client's key-value storage: one JSON
// blob per collection plus the dark-mode flag, all in kv_entries.

// Load reads the persisted collections into memory. Missing keys keep the
// seeded defaults, so a fresh database boots with the default calendars and
// categories and no events.
func (s *EventStore) Load(ctx context.Context) error {
	events, found, err := s.loadKV(ctx, model.KVKeyEvents)
	if err != nil {
		return fmt.Errorf("(*EventStore).Load: %w", err)
	}
	if found {
		var decoded []model.Event
		if err := json.Unmarshal([]byte(events), &decoded); err != nil {
			return fmt.Errorf("(*EventStore).Load: decode events: %w", err)
		}
		s.mu.Lock()
		s.events = decoded
		s.mu.Unlock()
	}

	calendars, found, err := s.loadKV(ctx, model.KVKeyCalendars)
	if err != nil {
		return fmt.Errorf("(*EventStore).Load: %w", err)
	}
	if found {
		var decoded []model.Calendar
		if err := json.Unmarshal([]byte(calendars), &decoded); err != nil {
			return fmt.Errorf("(*EventStore).Load: decode calendars: %w", err)
		}
		s.mu.Lock()
		s.calendars = decoded
		s.mu.Unlock()
	}

	categories, found, err := s.loadKV(ctx, model.KVKeyCategories)
	if err != nil {
		return fmt.Errorf("(*EventStore).Load: %w", err)
	}
	if found {
		var decoded []model.EventCategory
		if err := json.Unmarshal([]byte(categories), &decoded); err != nil {
			return fmt.Errorf("(*EventStore).Load: decode categories: %w", err)
		}
		s.mu.Lock()
		s.categories = decoded
		s.mu.Unlock()
	}

	darkMode, found, err := s.loadKV(ctx, model.KVKeyDarkMode)
	if err != nil {
		return fmt.Errorf("(*EventStore).Load: %w", err)
	}
	if found {
		parsed, err := strconv.ParseBool(darkMode)
		if err != nil {
			return fmt.Errorf("(*EventStore).Load: decode dark mode: %w", err)
		}
		s.mu.Lock()
		s.darkMode = parsed
		s.mu.Unlock()
	}

	return nil
}

func (s *EventStore) loadKV(ctx context.Context, key string) (string, bool, error) {
	entry := new(model.KVEntry)
	err := s.as.BunDB.NewSelect().
		Model(entry).
		Where("key = ?", key).
		Scan(ctx)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", false, nil
	case err != nil:
		return "", false, fmt.Errorf("load %s: %w", key, err)
	}
	return entry.Value, true, nil
}

func (s *EventStore) saveKV(ctx context.Context, key, value string) error {
	start := time.Now()
	entry := &model.KVEntry{Key: key, Value: value}
	_, err := s.as.BunDB.NewInsert().
		Model(entry).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	s.as.MetricChans.ReportDatabaseWrite(float64(time.Since(start).Microseconds()))
	return nil
}

func (s *EventStore) saveEvents(ctx context.Context) error {
	s.mu.RLock()
	encoded, err := json.Marshal(s.events)
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("encode events: %w", err)
	}
	return s.saveKV(ctx, model.KVKeyEvents, string(encoded))
}

func (s *EventStore) saveCalendars(ctx context.Context) error {
	s.mu.RLock()
	encoded, err := json.Marshal(s.calendars)
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("encode calendars: %w", err)
	}
	return s.saveKV(ctx, model.KVKeyCalendars, string(encoded))
}

func (s *EventStore) saveCategories(ctx context.Context) error {
	s.mu.RLock()
	encoded, err := json.Marshal(s.categories)
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("encode categories: %w", err)
	}
	return s.saveKV(ctx, model.KVKeyCategories, string(encoded))
}

func (s *EventStore) saveDarkMode(ctx context.Context) error {
	s.mu.RLock()
	value := strconv.FormatBool(s.darkMode)
	s.mu.RUnlock()
	return s.saveKV(ctx, model.KVKeyDarkMode, value)
}
