package ical

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"time"

	"planningapp/src-server/model"
)

// Category snapshot stamped onto every imported event.
var importedCategory = model.EventCategory{
	ID:    "1",
	Name:  "Importé",
	Color: "#4285F4",
	Icon:  "event",
}

// Parse scans an iCalendar document for VEVENT blocks and rebuilds events
// from the recognized keys (UID, SUMMARY, DESCRIPTION, LOCATION, DTSTART,
// DTEND). Everything else is ignored. Recurrence, tags and reminders are
// intentionally lost on import.
func Parse(r io.Reader) ([]model.Event, *CustomError) {
	events := make([]model.Event, 0)
	var current *model.Event
	lineCount := 0

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		lineCount++

		switch {
		case strings.HasPrefix(line, "BEGIN:VEVENT"):
			if current != nil {
				return nil, NewCustomError("nested VEVENT block", map[string]any{
					"line": lineCount,
				})
			}
			now := time.Now()
			current = &model.Event{
				Category:  importedCategory,
				Color:     importedCategory.Color,
				CreatedBy: "import",
				CreatedAt: now,
				UpdatedAt: now,
				Tags:      []string{},
			}
		case strings.HasPrefix(line, "END:VEVENT"):
			if current == nil {
				return nil, NewCustomError("END:VEVENT without BEGIN:VEVENT", map[string]any{
					"line": lineCount,
				})
			}
			events = append(events, *current)
			current = nil
		case current != nil:
			slice := strings.SplitN(line, ":", 2)
			if len(slice) != 2 {
				continue
			}
			key := strings.TrimSpace(slice[0])
			value := slice[1]

			switch key {
			case "UID":
				current.ID = strings.SplitN(value, "@", 2)[0]
			case "SUMMARY":
				current.Title = unescapeText(value)
			case "DESCRIPTION":
				current.Description = unescapeText(value)
			case "LOCATION":
				current.Location = unescapeText(value)
			case "DTSTART":
				date, err := parseICSDate(value)
				if err != nil {
					return nil, NewCustomError("can't parse DTSTART", map[string]any{
						"line":    lineCount,
						"content": value,
						"err":     err,
					})
				}
				current.StartDate = date
			case "DTEND":
				date, err := parseICSDate(value)
				if err != nil {
					return nil, NewCustomError("can't parse DTEND", map[string]any{
						"line":    lineCount,
						"content": value,
						"err":     err,
					})
				}
				current.EndDate = date
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, NewCustomError("can't read calendar", map[string]any{"err": err})
	}

	return events, nil
}

// Fixed-offset extraction of the 20060102T150405Z layout, interpreted as UTC.
func parseICSDate(s string) (time.Time, error) {
	if len(s) < len(icsDateLayout) {
		return time.Time{}, strconv.ErrSyntax
	}
	segments := [6]int{}
	for i, span := range [6][2]int{
		{0, 4},   // year
		{4, 6},   // month
		{6, 8},   // day
		{9, 11},  // hour
		{11, 13}, // minute
		{13, 15}, // second
	} {
		n, err := strconv.Atoi(s[span[0]:span[1]])
		if err != nil {
			return time.Time{}, err
		}
		segments[i] = n
	}
	return time.Date(
		segments[0], time.Month(segments[1]), segments[2],
		segments[3], segments[4], segments[5],
		0, time.UTC,
	), nil
}
