// Package reminder turns an event's reminder settings and recurrence into
// concrete future trigger times.
package reminder

import (
	"time"

	"planningapp/src-server/model"
)

// Safety bound against unbounded notification scheduling, not a semantic
// recurrence rule.
const maxOccurrences = 100

// Occurrence is one concrete instance of a (possibly recurring) event.
type Occurrence struct {
	Start time.Time
	End   time.Time
}

// Trigger is a single reminder to fire at Time, LeadMinutes before the
// occurrence start.
type Trigger struct {
	EventID     string
	Title       string
	Location    string
	LeadMinutes int
	Occurrence  Occurrence
	Time        time.Time
}

// ExpandOccurrences enumerates the event's future occurrences. A
// non-recurring event yields at most its single occurrence. Expansion steps
// by the recurrence interval in the frequency's unit, stops past the
// recurrence end date and never walks more than maxOccurrences steps.
// Occurrence starts matching an exception day are skipped.
func ExpandOccurrences(event model.Event, now time.Time) []Occurrence {
	duration := event.EndDate.Sub(event.StartDate)

	if event.Recurrence == nil {
		if event.StartDate.After(now) {
			return []Occurrence{{Start: event.StartDate, End: event.EndDate}}
		}
		return nil
	}

	rec := event.Recurrence
	interval := rec.Interval
	if interval <= 0 {
		interval = 1
	}

	occurrences := make([]Occurrence, 0)
	next := event.StartDate
	for count := 0; count < maxOccurrences; count++ {
		if rec.EndDate != nil && next.After(*rec.EndDate) {
			break
		}
		if next.After(now) && !isException(next, rec.Exceptions) {
			occurrences = append(occurrences, Occurrence{Start: next, End: next.Add(duration)})
		}

		switch rec.Type {
		case model.RecurrenceWeekly:
			next = next.AddDate(0, 0, 7*interval)
		case model.RecurrenceMonthly:
			next = next.AddDate(0, interval, 0)
		case model.RecurrenceYearly:
			next = next.AddDate(interval, 0, 0)
		default:
			// daily; custom recurrences step daily too so expansion terminates
			next = next.AddDate(0, 0, interval)
		}
	}
	return occurrences
}

// Triggers computes the reminders to schedule for every future occurrence of
// the event: one trigger per configured lead time whose instant is still in
// the future. Disabled or empty reminder settings yield none.
func Triggers(event model.Event, now time.Time) []Trigger {
	if event.Reminder == nil || !event.Reminder.Enabled || len(event.Reminder.Minutes) == 0 {
		return nil
	}

	triggers := make([]Trigger, 0)
	for _, occurrence := range ExpandOccurrences(event, now) {
		for _, lead := range event.Reminder.Minutes {
			at := occurrence.Start.Add(-time.Duration(lead) * time.Minute)
			if !at.After(now) {
				continue
			}
			triggers = append(triggers, Trigger{
				EventID:     event.ID,
				Title:       event.Title,
				Location:    event.Location,
				LeadMinutes: lead,
				Occurrence:  occurrence,
				Time:        at,
			})
		}
	}
	return triggers
}

func isException(t time.Time, exceptions []time.Time) bool {
	for _, exception := range exceptions {
		if model.SameDay(t, exception, t.Location()) {
			return true
		}
	}
	return false
}
