// The `ical` package maps the event collection to and from a plain-text
// iCalendar document.
//
// # References:
// - RFC5545: https://datatracker.ietf.org/doc/html/rfc5545
//
// # Notes:
// - This is an app-specific subset, just enough to round-trip the app's own
//   exports: a single VEVENT level, a fixed key set, no folded long lines,
//   no VALARM, no recurrence on import.
// - All datetimes are serialized in UTC as 20060102T150405Z.
package ical

import (
	"fmt"
	"io"
	"strings"
	"time"

	"planningapp/src-server/model"

	"github.com/xyedo/rrule"
)

const (
	prodID    = "-//PlanningApp//Calendar//FR"
	uidDomain = "planningapp.com"

	icsDateLayout = "20060102T150405Z"
)

var icsWeekdays = [7]string{"SU", "MO", "TU", "WE", "TH", "FR", "SA"}

// Marshal the event collection into an iCalendar document.
func Marshal(events []model.Event) (string, *CustomError) {
	var sb strings.Builder
	if err := MarshalTo(&sb, events); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// MarshalTo writes the iCalendar document to w, CRLF line endings.
func MarshalTo(w io.Writer, events []model.Event) *CustomError {
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + prodID,
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
	}

	for _, event := range events {
		lines = append(lines,
			"BEGIN:VEVENT",
			fmt.Sprintf("UID:%s@%s", event.ID, uidDomain),
			"DTSTART:"+formatICSDate(event.StartDate),
			"DTEND:"+formatICSDate(event.EndDate),
			"SUMMARY:"+escapeText(event.Title),
		)
		if event.Description != "" {
			lines = append(lines, "DESCRIPTION:"+escapeText(event.Description))
		}
		if event.Location != "" {
			lines = append(lines, "LOCATION:"+escapeText(event.Location))
		}
		lines = append(lines,
			"CREATED:"+formatICSDate(event.CreatedAt),
			"LAST-MODIFIED:"+formatICSDate(event.UpdatedAt),
			"CATEGORIES:"+event.Category.Name,
		)
		if event.Recurrence != nil {
			rruleLine, err := BuildRRule(event.Recurrence)
			if err != nil {
				return NewCustomError("can't build rrule", map[string]any{
					"eventID": event.ID,
					"err":     err,
				})
			}
			if rruleLine != "" {
				lines = append(lines, rruleLine)
			}
		}
		lines = append(lines, "END:VEVENT")
	}

	lines = append(lines, "END:VCALENDAR")

	if _, err := io.WriteString(w, strings.Join(lines, "\r\n")); err != nil {
		return NewCustomError("can't write calendar", map[string]any{"err": err})
	}
	return nil
}

// BuildRRule renders an RRULE line for the recurrence settings. The generated
// value is parsed back through the rrule package so an export never carries a
// malformed line. Custom recurrences have no RRULE form; they yield "".
func BuildRRule(rec *model.RecurrenceSettings) (string, *CustomError) {
	interval := rec.Interval
	if interval <= 0 {
		interval = 1
	}

	var sb strings.Builder
	switch rec.Type {
	case model.RecurrenceDaily:
		fmt.Fprintf(&sb, "FREQ=DAILY;INTERVAL=%d", interval)
	case model.RecurrenceWeekly:
		fmt.Fprintf(&sb, "FREQ=WEEKLY;INTERVAL=%d", interval)
		if len(rec.DaysOfWeek) > 0 {
			days := make([]string, 0, len(rec.DaysOfWeek))
			for _, day := range rec.DaysOfWeek {
				if day < 0 || day > 6 {
					return "", NewCustomError("day of week out of range", map[string]any{"day": day})
				}
				days = append(days, icsWeekdays[day])
			}
			sb.WriteString(";BYDAY=" + strings.Join(days, ","))
		}
	case model.RecurrenceMonthly:
		fmt.Fprintf(&sb, "FREQ=MONTHLY;INTERVAL=%d", interval)
		if rec.DayOfMonth > 0 {
			fmt.Fprintf(&sb, ";BYMONTHDAY=%d", rec.DayOfMonth)
		}
	case model.RecurrenceYearly:
		fmt.Fprintf(&sb, "FREQ=YEARLY;INTERVAL=%d", interval)
	case model.RecurrenceCustom:
		return "", nil
	default:
		return "", NewCustomError("unknown recurrence type", map[string]any{"type": rec.Type})
	}
	if rec.EndDate != nil {
		sb.WriteString(";UNTIL=" + formatICSDate(*rec.EndDate))
	}

	value := sb.String()
	if _, err := rrule.StrToRRule(value); err != nil {
		return "", NewCustomError("generated rrule is invalid", map[string]any{
			"rrule": value,
			"err":   err,
		})
	}
	return "RRULE:" + value, nil
}

func formatICSDate(t time.Time) string {
	return t.UTC().Format(icsDateLayout)
}

// RFC-style text escaping for SUMMARY/DESCRIPTION/LOCATION values.
func escapeText(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, ";", `\;`)
	s = strings.ReplaceAll(s, ",", `\,`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return s
}

func unescapeText(s string) string {
	s = strings.ReplaceAll(s, `\n`, "\n")
	s = strings.ReplaceAll(s, `\,`, ",")
	s = strings.ReplaceAll(s, `\;`, ";")
	s = strings.ReplaceAll(s, `\\`, `\`)
	return s
}
