package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"planningapp/src-server/cloud"
	"planningapp/src-server/model"
	"planningapp/src-server/utils"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *EventStore {
	t.Helper()
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "test.db"))
	t.Setenv("TIMEZONE", "UTC")

	as := utils.NewAppState()
	t.Cleanup(func() { _ = as.RawDB.Close() })
	require.NoError(t, model.CreateSchema(as.BunDB))

	return NewEventStore(as, nil)
}

func testEvent(title string, start time.Time) model.Event {
	return model.Event{
		Title:     title,
		StartDate: start,
		EndDate:   start.Add(time.Hour),
		Category:  model.EventCategory{ID: "1", Name: "Réunion", Color: "#4285F4", Icon: "people"},
	}
}

func TestAddEventStampsAndSnapshots(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	added, err := s.AddEvent(ctx, testEvent("  Standup  ", time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	require.Equal(t, "Standup", added.Title)
	require.NotEmpty(t, added.ID)
	require.False(t, added.CreatedAt.IsZero())
	require.False(t, added.UpdatedAt.IsZero())
	require.Equal(t, "#4285F4", added.Color, "color should default to the category color")
	require.NotNil(t, added.Tags)

	// editing the category afterwards must not touch the stored snapshot
	require.NoError(t, s.UpdateCategory(ctx, "1", model.EventCategory{Name: "Renommée", Color: "#000000", Icon: "people"}))
	got, err := s.GetEvent(added.ID)
	require.NoError(t, err)
	require.Equal(t, "Réunion", got.Category.Name)
	require.Equal(t, "#4285F4", got.Category.Color)
}

func TestAddEventValidates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.AddEvent(ctx, testEvent("   ", time.Now()))
	require.Error(t, err)

	bad := testEvent("Backwards", time.Now())
	bad.EndDate = bad.StartDate.Add(-time.Hour)
	_, err = s.AddEvent(ctx, bad)
	require.Error(t, err)
}

func TestAddEventNormalizesAllDay(t *testing.T) {
	s := newTestStore(t)

	event := testEvent("Férié", time.Date(2024, 5, 1, 14, 30, 0, 0, time.UTC))
	event.IsAllDay = true
	added, err := s.AddEvent(context.Background(), event)
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), added.StartDate)
	require.Equal(t, time.Date(2024, 5, 1, 23, 59, 59, 999_000_000, time.UTC), added.EndDate)
}

func TestAddEventEnrichesWeather(t *testing.T) {
	s := newTestStore(t)
	s.SetWeatherEnricher(func(ctx context.Context, location string) *model.WeatherInfo {
		return &model.WeatherInfo{Temperature: 18, Condition: "Clear", Icon: "01d"}
	})

	event := testEvent("Pique-nique", time.Now().Add(24*time.Hour))
	event.Location = "Paris"
	added, err := s.AddEvent(context.Background(), event)
	require.NoError(t, err)
	require.NotNil(t, added.Weather)
	require.Equal(t, 18, added.Weather.Temperature)

	// no location, no lookup
	plain, err := s.AddEvent(context.Background(), testEvent("Sans lieu", time.Now().Add(24*time.Hour)))
	require.NoError(t, err)
	require.Nil(t, plain.Weather)
}

func TestUpdateEventPatchOverlay(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	added, err := s.AddEvent(ctx, testEvent("Standup", time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	title := "Standup équipe"
	updated, err := s.UpdateEvent(ctx, added.ID, EventPatch{Title: &title})
	require.NoError(t, err)
	require.Equal(t, "Standup équipe", updated.Title)
	require.Equal(t, added.StartDate, updated.StartDate, "unset patch fields keep their value")
	require.True(t, updated.UpdatedAt.After(added.UpdatedAt), "updatedAt must be strictly greater")

	_, err = s.UpdateEvent(ctx, "missing", EventPatch{Title: &title})
	require.ErrorIs(t, err, ErrEventNotFound)
}

func TestDeleteEvent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	added, err := s.AddEvent(ctx, testEvent("Standup", time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	require.NoError(t, s.DeleteEvent(ctx, added.ID))
	_, err = s.GetEvent(added.ID)
	require.ErrorIs(t, err, ErrEventNotFound)
	require.ErrorIs(t, s.DeleteEvent(ctx, added.ID), ErrEventNotFound)
}

func TestEventsOnDate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.AddEvent(ctx, testEvent("Matin", time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	_, err = s.AddEvent(ctx, testEvent("Soir", time.Date(2024, 1, 8, 23, 30, 0, 0, time.UTC)))
	require.NoError(t, err)
	_, err = s.AddEvent(ctx, testEvent("Lendemain", time.Date(2024, 1, 9, 9, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	// bucketing is by start date: "Soir" spills past midnight but is not
	// listed on Jan 9
	require.Len(t, s.EventsOnDate(time.Date(2024, 1, 8, 12, 0, 0, 0, time.UTC)), 2)
	require.Len(t, s.EventsOnDate(time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC)), 1)
	require.Empty(t, s.EventsOnDate(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)))
}

func TestEventsInRangeBoundariesIncluded(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	start := time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)
	_, err := s.AddEvent(ctx, testEvent("Standup", start))
	require.NoError(t, err)

	// event ends exactly where the range starts
	require.Len(t, s.EventsInRange(start.Add(time.Hour), start.Add(2*time.Hour)), 1)
	// event starts exactly where the range ends
	require.Len(t, s.EventsInRange(start.Add(-time.Hour), start), 1)
	// disjoint
	require.Empty(t, s.EventsInRange(start.Add(2*time.Hour), start.Add(3*time.Hour)))
}

func TestSearchEvents(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	event := testEvent("Réunion budget", time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC))
	event.Description = "Préparer le trimestre"
	event.Tags = []string{"finance"}
	_, err := s.AddEvent(ctx, event)
	require.NoError(t, err)
	_, err = s.AddEvent(ctx, testEvent("Dentiste", time.Date(2024, 1, 9, 9, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	require.Len(t, s.SearchEvents("BUDGET"), 1)
	require.Len(t, s.SearchEvents("trimestre"), 1)
	require.Len(t, s.SearchEvents("finance"), 1)
	require.Empty(t, s.SearchEvents("absent"))
	// blank query returns everything
	require.Len(t, s.SearchEvents("   "), 2)
}

func TestQuickAdd(t *testing.T) {
	s := newTestStore(t)

	added, err := s.QuickAdd(context.Background(), "déjeuner avec Paul tomorrow at 12:00", "local")
	require.NoError(t, err)
	require.Equal(t, "Déjeuner Avec Paul", added.Title)
	require.Equal(t, time.Hour, added.EndDate.Sub(added.StartDate))
	require.Equal(t, 12, added.StartDate.Hour())
	require.Equal(t, "Réunion", added.Category.Name, "first category is snapshotted")

	_, err = s.QuickAdd(context.Background(), "rien de daté ici", "local")
	require.ErrorIs(t, err, ErrUnparsableQuickAdd)
}

func TestCalendarCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.Len(t, s.Calendars(), 2)

	added, err := s.AddCalendar(ctx, model.Calendar{Name: "Sport", Color: "#0F9D58", IsVisible: true})
	require.NoError(t, err)
	require.NotEmpty(t, added.ID)

	update := added
	update.Name = "Sport & Santé"
	require.NoError(t, s.UpdateCalendar(ctx, added.ID, update))
	require.ErrorIs(t, s.UpdateCalendar(ctx, "missing", update), ErrCalendarNotFound)

	require.NoError(t, s.DeleteCalendar(ctx, added.ID))
	require.Len(t, s.Calendars(), 2)
}

func TestCategoryByName(t *testing.T) {
	s := newTestStore(t)

	got, err := s.CategoryByName("Voyage")
	require.NoError(t, err)
	require.Equal(t, "flight", got.Icon)

	_, err = s.CategoryByName("Inconnue")
	require.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestViewState(t *testing.T) {
	s := newTestStore(t)

	require.Equal(t, model.ViewMonth, s.CurrentView())
	s.SetCurrentView(model.ViewAgenda)
	require.Equal(t, model.ViewAgenda, s.CurrentView())

	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	s.SetSelectedDate(date)
	require.Equal(t, date, s.SelectedDate())

	s.SetSearchQuery("budget")
	require.Equal(t, "budget", s.SearchQuery())
}

func TestCloudOpsWithoutClient(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.ErrorIs(t, s.SignIn(ctx, "a@b.fr", "pw"), cloud.ErrNotConfigured)
	require.ErrorIs(t, s.SignUp(ctx, "a@b.fr", "pw"), cloud.ErrNotConfigured)
	require.False(t, s.HasSession())
	require.ErrorIs(t, s.SyncToCloud(ctx), cloud.ErrNoSession)
	require.ErrorIs(t, s.FetchFromCloud(ctx), cloud.ErrNoSession)
}
