package store

import (
	"context"
	"testing"
	"time"

	"planningapp/src-server/model"

	"github.com/stretchr/testify/require"
)

func TestPersistenceRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	added, err := s.AddEvent(ctx, testEvent("Standup", time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	calendar, err := s.AddCalendar(ctx, model.Calendar{Name: "Sport", Color: "#0F9D58", IsVisible: true})
	require.NoError(t, err)
	category, err := s.AddCategory(ctx, model.EventCategory{Name: "Études", Color: "#AB47BC", Icon: "school"})
	require.NoError(t, err)
	require.NoError(t, s.SetDarkMode(ctx, true))

	// a second store over the same database sees everything after Load
	reloaded := NewEventStore(s.as, nil)
	require.NoError(t, reloaded.Load(ctx))

	events := reloaded.Events()
	require.Len(t, events, 1)
	require.Equal(t, added.ID, events[0].ID)
	require.Equal(t, "Standup", events[0].Title)
	require.True(t, events[0].StartDate.Equal(added.StartDate))

	calendars := reloaded.Calendars()
	require.Len(t, calendars, 3)
	require.Equal(t, calendar.ID, calendars[2].ID)

	categories := reloaded.Categories()
	require.Len(t, categories, 5)
	require.Equal(t, category.ID, categories[4].ID)

	require.True(t, reloaded.DarkMode())
}

func TestLoadMissingKeysKeepsDefaults(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Load(context.Background()))
	require.Empty(t, s.Events())
	require.Len(t, s.Calendars(), 2)
	require.Len(t, s.Categories(), 4)
	require.False(t, s.DarkMode())
}

func TestSaveOverwritesPreviousBlob(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	added, err := s.AddEvent(ctx, testEvent("Standup", time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	require.NoError(t, s.DeleteEvent(ctx, added.ID))

	reloaded := NewEventStore(s.as, nil)
	require.NoError(t, reloaded.Load(ctx))
	require.Empty(t, reloaded.Events())
}
