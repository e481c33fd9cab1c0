package scheduler

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"planningapp/src-server/model"
	"planningapp/src-server/reminder"
	"planningapp/src-server/store"
	"planningapp/src-server/utils"

	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	triggers []reminder.Trigger
}

func (n *recordingNotifier) Notify(trigger reminder.Trigger) {
	n.triggers = append(n.triggers, trigger)
}

func newTestStore(t *testing.T) *store.EventStore {
	t.Helper()
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "test.db"))
	t.Setenv("TIMEZONE", "UTC")

	as := utils.NewAppState()
	t.Cleanup(func() { _ = as.RawDB.Close() })
	require.NoError(t, model.CreateSchema(as.BunDB))
	return store.NewEventStore(as, nil)
}

func TestReminderScanFiresOnce(t *testing.T) {
	s := newTestStore(t)
	start := time.Now().Add(20 * time.Minute)
	_, err := s.AddEvent(context.Background(), model.Event{
		Title:     "Dentiste",
		StartDate: start,
		EndDate:   start.Add(30 * time.Minute),
		Category:  model.EventCategory{ID: "4", Name: "Santé"},
		Reminder:  &model.ReminderSettings{Enabled: true, Minutes: []int{15}},
	})
	require.NoError(t, err)

	notifier := &recordingNotifier{}
	scanner := NewReminderScanner(s, notifier, 10*time.Minute)

	now := time.Now()
	require.Equal(t, 1, scanner.Scan(now), "trigger at start-15min is within the 10min window")
	require.Len(t, notifier.triggers, 1)
	require.Equal(t, "Dentiste", notifier.triggers[0].Title)
	require.Equal(t, 15, notifier.triggers[0].LeadMinutes)

	// a second pass over the same window stays quiet
	require.Equal(t, 0, scanner.Scan(now))
	require.Len(t, notifier.triggers, 1)
}

func TestReminderScanRespectsWindow(t *testing.T) {
	s := newTestStore(t)
	start := time.Now().Add(2 * time.Hour)
	_, err := s.AddEvent(context.Background(), model.Event{
		Title:     "Loin",
		StartDate: start,
		EndDate:   start.Add(time.Hour),
		Category:  model.EventCategory{ID: "1", Name: "Réunion"},
		Reminder:  &model.ReminderSettings{Enabled: true, Minutes: []int{10}},
	})
	require.NoError(t, err)

	scanner := NewReminderScanner(s, &recordingNotifier{}, 10*time.Minute)
	require.Equal(t, 0, scanner.Scan(time.Now()), "trigger outside the window must wait")
}

func TestReminderScanSkipsDisabled(t *testing.T) {
	s := newTestStore(t)
	start := time.Now().Add(20 * time.Minute)
	_, err := s.AddEvent(context.Background(), model.Event{
		Title:     "Silencieux",
		StartDate: start,
		EndDate:   start.Add(time.Hour),
		Category:  model.EventCategory{ID: "1", Name: "Réunion"},
		Reminder:  &model.ReminderSettings{Enabled: false, Minutes: []int{15}},
	})
	require.NoError(t, err)

	scanner := NewReminderScanner(s, &recordingNotifier{}, time.Hour)
	require.Equal(t, 0, scanner.Scan(time.Now()))
}
