// Package store is the single source of truth for events, calendars and
// categories. Mutations update the in-memory collections, persist them
// through the local database and report the outcome to the caller; nothing is
// fire-and-forget except the optional background cloud push in the scheduler.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"planningapp/src-server/cloud"
	"planningapp/src-server/model"
	"planningapp/src-server/utils"

	"github.com/google/uuid"
)

var (
	ErrEventNotFound    = errors.New("event not found")
	ErrCalendarNotFound = errors.New("calendar not found")
	ErrCategoryNotFound = errors.New("category not found")
)

// WeatherEnricher resolves a free-text location into a weather snapshot.
// Best-effort: returning nil leaves the event without weather.
type WeatherEnricher func(ctx context.Context, location string) *model.WeatherInfo

type EventStore struct {
	as    *utils.AppState
	cloud *cloud.Client

	enrich WeatherEnricher

	mu         sync.RWMutex
	events     []model.Event
	calendars  []model.Calendar
	categories []model.EventCategory

	currentView  model.ViewMode
	selectedDate time.Time
	searchQuery  string
	darkMode     bool

	session *cloud.Session
}

// NewEventStore creates an empty store seeded with the default calendars and
// categories. cloudClient may be nil (local-only mode).
func NewEventStore(as *utils.AppState, cloudClient *cloud.Client) *EventStore {
	return &EventStore{
		as:           as,
		cloud:        cloudClient,
		events:       []model.Event{},
		calendars:    model.DefaultCalendars(),
		categories:   model.DefaultCategories(),
		currentView:  model.ViewMonth,
		selectedDate: time.Now(),
	}
}

// SetWeatherEnricher installs the save-time weather lookup.
func (s *EventStore) SetWeatherEnricher(enrich WeatherEnricher) {
	s.enrich = enrich
}

// Seed replaces the calendars and categories, used at boot with an optional
// seed file. Existing events keep their embedded category snapshots.
func (s *EventStore) Seed(calendars []model.Calendar, categories []model.EventCategory) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calendars = calendars
	s.categories = categories
}

// AddEvent validates and stores the event, snapshotting the category by
// value. Missing id/timestamps are stamped; all-day events are pinned to
// day bounds in the configured timezone. The weather snapshot, when a
// location and an enricher are present, is best-effort and silent.
func (s *EventStore) AddEvent(ctx context.Context, event model.Event) (model.Event, error) {
	event.Title = strings.TrimSpace(event.Title)
	if event.IsAllDay {
		event.NormalizeAllDay(s.as.Config.GetLocation())
	}
	if err := event.Validate(); err != nil {
		return model.Event{}, fmt.Errorf("(*EventStore).AddEvent: %w", err)
	}

	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	now := time.Now()
	if event.CreatedAt.IsZero() {
		event.CreatedAt = now
	}
	event.UpdatedAt = now
	if event.Color == "" {
		event.Color = event.Category.Color
	}
	if event.Tags == nil {
		event.Tags = []string{}
	}
	if event.Weather == nil && event.Location != "" && s.enrich != nil {
		event.Weather = s.enrich(ctx, event.Location)
	}

	s.mu.Lock()
	s.events = append(s.events, event)
	s.mu.Unlock()

	s.as.MetricChans.ReportStoreMutation("add_event")
	if err := s.saveEvents(ctx); err != nil {
		return model.Event{}, fmt.Errorf("(*EventStore).AddEvent: %w", err)
	}
	return event, nil
}

// EventPatch carries partial-update fields; nil members leave the stored
// value untouched.
type EventPatch struct {
	Title        *string
	Description  *string
	StartDate    *time.Time
	EndDate      *time.Time
	Location     *string
	Category     *model.EventCategory
	Color        *string
	IsAllDay     *bool
	Reminder     *model.ReminderSettings
	Recurrence   *model.RecurrenceSettings
	Participants *[]model.Participant
	IsPrivate    *bool
	Tags         *[]string
	Attachments  *[]string
	Weather      *model.WeatherInfo
}

func (p EventPatch) apply(event *model.Event) {
	if p.Title != nil {
		event.Title = *p.Title
	}
	if p.Description != nil {
		event.Description = *p.Description
	}
	if p.StartDate != nil {
		event.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		event.EndDate = *p.EndDate
	}
	if p.Location != nil {
		event.Location = *p.Location
	}
	if p.Category != nil {
		event.Category = *p.Category
	}
	if p.Color != nil {
		event.Color = *p.Color
	}
	if p.IsAllDay != nil {
		event.IsAllDay = *p.IsAllDay
	}
	if p.Reminder != nil {
		event.Reminder = p.Reminder
	}
	if p.Recurrence != nil {
		event.Recurrence = p.Recurrence
	}
	if p.Participants != nil {
		event.Participants = *p.Participants
	}
	if p.IsPrivate != nil {
		event.IsPrivate = *p.IsPrivate
	}
	if p.Tags != nil {
		event.Tags = *p.Tags
	}
	if p.Attachments != nil {
		event.Attachments = *p.Attachments
	}
	if p.Weather != nil {
		event.Weather = p.Weather
	}
}

// UpdateEvent overlays the patch onto the stored record; updatedAt always
// ends up strictly greater than before.
func (s *EventStore) UpdateEvent(ctx context.Context, id string, patch EventPatch) (model.Event, error) {
	s.mu.Lock()
	index := s.indexOf(id)
	if index < 0 {
		s.mu.Unlock()
		return model.Event{}, fmt.Errorf("(*EventStore).UpdateEvent: %s: %w", id, ErrEventNotFound)
	}

	event := &s.events[index]
	patch.apply(event)
	now := time.Now()
	if !now.After(event.UpdatedAt) {
		now = event.UpdatedAt.Add(time.Millisecond)
	}
	event.UpdatedAt = now
	updated := *event
	s.mu.Unlock()

	s.as.MetricChans.ReportStoreMutation("update_event")
	if err := s.saveEvents(ctx); err != nil {
		return model.Event{}, fmt.Errorf("(*EventStore).UpdateEvent: %w", err)
	}
	return updated, nil
}

func (s *EventStore) DeleteEvent(ctx context.Context, id string) error {
	s.mu.Lock()
	index := s.indexOf(id)
	if index < 0 {
		s.mu.Unlock()
		return fmt.Errorf("(*EventStore).DeleteEvent: %s: %w", id, ErrEventNotFound)
	}
	s.events = append(s.events[:index], s.events[index+1:]...)
	s.mu.Unlock()

	s.as.MetricChans.ReportStoreMutation("delete_event")
	if err := s.saveEvents(ctx); err != nil {
		return fmt.Errorf("(*EventStore).DeleteEvent: %w", err)
	}
	return nil
}

// caller must hold s.mu
func (s *EventStore) indexOf(id string) int {
	for i := range s.events {
		if s.events[i].ID == id {
			return i
		}
	}
	return -1
}

// Events returns a copy of the whole collection.
func (s *EventStore) Events() []model.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Event, len(s.events))
	copy(out, s.events)
	return out
}

// GetEvent returns the event by id.
func (s *EventStore) GetEvent(id string) (model.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	index := s.indexOf(id)
	if index < 0 {
		return model.Event{}, fmt.Errorf("(*EventStore).GetEvent: %s: %w", id, ErrEventNotFound)
	}
	return s.events[index], nil
}

// EventsOnDate returns the events whose start date falls on the same
// calendar day as date in the configured timezone. Day bucketing uses the
// start date only: an event spilling past midnight is not listed on its
// second day.
func (s *EventStore) EventsOnDate(date time.Time) []model.Event {
	loc := s.as.Config.GetLocation()
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Event, 0)
	for _, event := range s.events {
		if model.SameDay(event.StartDate, date, loc) {
			out = append(out, event)
		}
	}
	return out
}

// EventsInRange returns the events whose interval overlaps [start, end],
// boundaries included.
func (s *EventStore) EventsInRange(start, end time.Time) []model.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Event, 0)
	for _, event := range s.events {
		if !event.StartDate.After(end) && !event.EndDate.Before(start) {
			out = append(out, event)
		}
	}
	return out
}

// SearchEvents does a case-insensitive substring match over title,
// description, location and tags. A blank query returns the whole
// collection.
func (s *EventStore) SearchEvents(query string) []model.Event {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return s.Events()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Event, 0)
	for _, event := range s.events {
		if matchesQuery(event, query) {
			out = append(out, event)
		}
	}
	return out
}

func matchesQuery(event model.Event, query string) bool {
	if strings.Contains(strings.ToLower(event.Title), query) ||
		strings.Contains(strings.ToLower(event.Description), query) ||
		strings.Contains(strings.ToLower(event.Location), query) {
		return true
	}
	for _, tag := range event.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}
