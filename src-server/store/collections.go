package store

import (
	"context"
	"fmt"
	"time"

	"planningapp/src-server/model"

	"github.com/google/uuid"
)

// Calendar and category CRUD. Category edits never cascade into events: the
// snapshot embedded at creation time is the contract.

func (s *EventStore) Calendars() []model.Calendar {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Calendar, len(s.calendars))
	copy(out, s.calendars)
	return out
}

func (s *EventStore) AddCalendar(ctx context.Context, calendar model.Calendar) (model.Calendar, error) {
	if calendar.ID == "" {
		calendar.ID = uuid.NewString()
	}
	s.mu.Lock()
	s.calendars = append(s.calendars, calendar)
	s.mu.Unlock()

	s.as.MetricChans.ReportStoreMutation("add_calendar")
	if err := s.saveCalendars(ctx); err != nil {
		return model.Calendar{}, fmt.Errorf("(*EventStore).AddCalendar: %w", err)
	}
	return calendar, nil
}

func (s *EventStore) UpdateCalendar(ctx context.Context, id string, update model.Calendar) error {
	s.mu.Lock()
	found := false
	for i := range s.calendars {
		if s.calendars[i].ID == id {
			update.ID = id
			s.calendars[i] = update
			found = true
			break
		}
	}
	s.mu.Unlock()
	if !found {
		return fmt.Errorf("(*EventStore).UpdateCalendar: %s: %w", id, ErrCalendarNotFound)
	}

	s.as.MetricChans.ReportStoreMutation("update_calendar")
	if err := s.saveCalendars(ctx); err != nil {
		return fmt.Errorf("(*EventStore).UpdateCalendar: %w", err)
	}
	return nil
}

func (s *EventStore) DeleteCalendar(ctx context.Context, id string) error {
	s.mu.Lock()
	kept := s.calendars[:0]
	for _, calendar := range s.calendars {
		if calendar.ID != id {
			kept = append(kept, calendar)
		}
	}
	s.calendars = kept
	s.mu.Unlock()

	s.as.MetricChans.ReportStoreMutation("delete_calendar")
	if err := s.saveCalendars(ctx); err != nil {
		return fmt.Errorf("(*EventStore).DeleteCalendar: %w", err)
	}
	return nil
}

func (s *EventStore) Categories() []model.EventCategory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.EventCategory, len(s.categories))
	copy(out, s.categories)
	return out
}

func (s *EventStore) CategoryByName(name string) (model.EventCategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, category := range s.categories {
		if category.Name == name {
			return category, nil
		}
	}
	return model.EventCategory{}, fmt.Errorf("(*EventStore).CategoryByName: %s: %w", name, ErrCategoryNotFound)
}

func (s *EventStore) AddCategory(ctx context.Context, category model.EventCategory) (model.EventCategory, error) {
	if category.ID == "" {
		category.ID = uuid.NewString()
	}
	s.mu.Lock()
	s.categories = append(s.categories, category)
	s.mu.Unlock()

	s.as.MetricChans.ReportStoreMutation("add_category")
	if err := s.saveCategories(ctx); err != nil {
		return model.EventCategory{}, fmt.Errorf("(*EventStore).AddCategory: %w", err)
	}
	return category, nil
}

func (s *EventStore) UpdateCategory(ctx context.Context, id string, update model.EventCategory) error {
	s.mu.Lock()
	found := false
	for i := range s.categories {
		if s.categories[i].ID == id {
			update.ID = id
			s.categories[i] = update
			found = true
			break
		}
	}
	s.mu.Unlock()
	if !found {
		return fmt.Errorf("(*EventStore).UpdateCategory: %s: %w", id, ErrCategoryNotFound)
	}

	s.as.MetricChans.ReportStoreMutation("update_category")
	if err := s.saveCategories(ctx); err != nil {
		return fmt.Errorf("(*EventStore).UpdateCategory: %w", err)
	}
	return nil
}

func (s *EventStore) DeleteCategory(ctx context.Context, id string) error {
	s.mu.Lock()
	kept := s.categories[:0]
	for _, category := range s.categories {
		if category.ID != id {
			kept = append(kept, category)
		}
	}
	s.categories = kept
	s.mu.Unlock()

	s.as.MetricChans.ReportStoreMutation("delete_category")
	if err := s.saveCategories(ctx); err != nil {
		return fmt.Errorf("(*EventStore).DeleteCategory: %w", err)
	}
	return nil
}

// View state, mirrored from the mobile client.

func (s *EventStore) SetCurrentView(view model.ViewMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentView = view
}

func (s *EventStore) CurrentView() model.ViewMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentView
}

func (s *EventStore) SetSelectedDate(date time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedDate = date
}

func (s *EventStore) SelectedDate() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedDate
}

func (s *EventStore) SetSearchQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchQuery = query
}

func (s *EventStore) SearchQuery() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.searchQuery
}

func (s *EventStore) SetDarkMode(ctx context.Context, darkMode bool) error {
	s.mu.Lock()
	s.darkMode = darkMode
	s.mu.Unlock()
	if err := s.saveDarkMode(ctx); err != nil {
		return fmt.Errorf("(*EventStore).SetDarkMode: %w", err)
	}
	return nil
}

func (s *EventStore) DarkMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.darkMode
}
