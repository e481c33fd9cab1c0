// Package scheduler runs the periodic jobs: reminder notification scans and
// the background cloud push. Jobs log failures and keep running; one bad
// cycle must not kill the loop.
package scheduler

import (
	"log/slog"
	"sync"
	"time"

	"planningapp/src-server/reminder"
	"planningapp/src-server/store"
)

// Notifier delivers a reminder to the user. The server ships a slog-backed
// one; a push-notification implementation slots in behind the same
// interface.
type Notifier interface {
	Notify(trigger reminder.Trigger)
}

// SlogNotifier logs each reminder at info level.
type SlogNotifier struct{}

func (SlogNotifier) Notify(trigger reminder.Trigger) {
	slog.Info("reminder",
		"event", trigger.Title,
		"eventID", trigger.EventID,
		"location", trigger.Location,
		"leadMinutes", trigger.LeadMinutes,
		"startsAt", trigger.Occurrence.Start)
}

// ReminderScanner finds reminder triggers falling due and fires each exactly
// once.
type ReminderScanner struct {
	store    *store.EventStore
	notifier Notifier
	window   time.Duration

	mu   sync.Mutex
	sent map[sentKey]struct{}
}

type sentKey struct {
	eventID     string
	occurrence  time.Time
	leadMinutes int
}

func NewReminderScanner(s *store.EventStore, notifier Notifier, window time.Duration) *ReminderScanner {
	return &ReminderScanner{
		store:    s,
		notifier: notifier,
		window:   window,
		sent:     map[sentKey]struct{}{},
	}
}

// Scan runs a single pass: every trigger due within the scan window is
// delivered, once. Returns the number of reminders fired.
func (r *ReminderScanner) Scan(now time.Time) int {
	fired := 0
	deadline := now.Add(r.window)

	for _, event := range r.store.Events() {
		for _, trigger := range reminder.Triggers(event, now) {
			if trigger.Time.After(deadline) {
				continue
			}
			key := sentKey{
				eventID:     trigger.EventID,
				occurrence:  trigger.Occurrence.Start,
				leadMinutes: trigger.LeadMinutes,
			}
			r.mu.Lock()
			_, already := r.sent[key]
			if !already {
				r.sent[key] = struct{}{}
			}
			r.mu.Unlock()
			if already {
				continue
			}
			r.notifier.Notify(trigger)
			fired++
		}
	}

	r.prune(now)
	return fired
}

// drop sent markers for occurrences already past, the triggers can't come
// back
func (r *ReminderScanner) prune(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key := range r.sent {
		if key.occurrence.Before(now) {
			delete(r.sent, key)
		}
	}
}
