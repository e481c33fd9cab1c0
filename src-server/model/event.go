package model

import (
	"fmt"
	"strings"
	"time"
)

type RecurrenceType string

const (
	RecurrenceDaily   RecurrenceType = "daily"
	RecurrenceWeekly  RecurrenceType = "weekly"
	RecurrenceMonthly RecurrenceType = "monthly"
	RecurrenceYearly  RecurrenceType = "yearly"
	RecurrenceCustom  RecurrenceType = "custom"
)

type ParticipantStatus string

const (
	ParticipantPending   ParticipantStatus = "pending"
	ParticipantAccepted  ParticipantStatus = "accepted"
	ParticipantDeclined  ParticipantStatus = "declined"
	ParticipantTentative ParticipantStatus = "tentative"
)

type ViewMode string

const (
	ViewDay    ViewMode = "day"
	ViewWeek   ViewMode = "week"
	ViewMonth  ViewMode = "month"
	ViewYear   ViewMode = "year"
	ViewAgenda ViewMode = "agenda"
)

// EventCategory is embedded into Event by value at creation time. Editing a
// category definition afterwards must never touch already-created events.
type EventCategory struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

type ReminderSettings struct {
	Enabled   bool  `json:"enabled"`
	Minutes   []int `json:"minutes"`
	Sound     bool  `json:"sound"`
	Vibration bool  `json:"vibration"`
}

type RecurrenceSettings struct {
	Type       RecurrenceType `json:"type"`
	Interval   int            `json:"interval"`
	EndDate    *time.Time     `json:"endDate,omitempty"`
	DaysOfWeek []int          `json:"daysOfWeek,omitempty"`
	DayOfMonth int            `json:"dayOfMonth,omitempty"`
	Exceptions []time.Time    `json:"exceptions,omitempty"`
}

type Participant struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Email       string            `json:"email"`
	Status      ParticipantStatus `json:"status"`
	IsOrganizer bool              `json:"isOrganizer"`
}

// WeatherInfo is a snapshot fetched at save time when the event has a
// location. It is never refreshed afterwards.
type WeatherInfo struct {
	Temperature int     `json:"temperature"`
	Condition   string  `json:"condition"`
	Icon        string  `json:"icon"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"windSpeed"`
}

// JSON field names match the mobile client's serialized form so local blobs
// stay interchangeable with it.
type Event struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	StartDate   time.Time     `json:"startDate"`
	EndDate     time.Time     `json:"endDate"`
	Location    string        `json:"location,omitempty"`
	Category    EventCategory `json:"category"`
	Color       string        `json:"color"`
	IsAllDay    bool          `json:"isAllDay"`

	Reminder     *ReminderSettings   `json:"reminder,omitempty"`
	Recurrence   *RecurrenceSettings `json:"recurrence,omitempty"`
	Participants []Participant       `json:"participants,omitempty"`

	CreatedBy   string       `json:"createdBy"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	IsPrivate   bool         `json:"isPrivate"`
	Tags        []string     `json:"tags"`
	Attachments []string     `json:"attachments,omitempty"`
	Weather     *WeatherInfo `json:"weather,omitempty"`
}

func (e *Event) Validate() error {
	switch {
	case strings.TrimSpace(e.Title) == "":
		return fmt.Errorf("(*Event).Validate: title is blank")
	case e.StartDate.IsZero():
		return fmt.Errorf("(*Event).Validate: start date is blank")
	case e.EndDate.IsZero():
		return fmt.Errorf("(*Event).Validate: end date is blank")
	case !e.StartDate.Before(e.EndDate):
		return fmt.Errorf("(*Event).Validate: start date must be before end date")
	}
	return nil
}

// NormalizeAllDay pins an all-day event to 00:00:00 -> 23:59:59.999 in loc.
func (e *Event) NormalizeAllDay(loc *time.Location) {
	if !e.IsAllDay {
		return
	}
	start := e.StartDate.In(loc)
	e.StartDate = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	end := e.EndDate.In(loc)
	e.EndDate = time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 999_000_000, loc)
}

// SameDay reports whether t shares a's calendar day in loc. Day bucketing for
// queries uses the start date only.
func SameDay(a, b time.Time, loc *time.Location) bool {
	a, b = a.In(loc), b.In(loc)
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
