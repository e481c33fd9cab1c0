// Package export renders the event collection into the interchange formats
// the mobile client shares: CSV, JSON and (through the ical package) ICS.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"planningapp/src-server/model"
)

const csvDateLayout = "02/01/2006 15:04"

// Column order is part of the format; spreadsheets built on previous exports
// rely on it.
var csvHeaders = []string{
	"Titre",
	"Description",
	"Date de début",
	"Date de fin",
	"Lieu",
	"Catégorie",
	"Toute la journée",
	"Privé",
	"Tags",
	"Créé le",
	"Modifié le",
}

// WriteCSV writes the events as CSV with French headers, one row per event.
// Dates are rendered in loc.
func WriteCSV(w io.Writer, events []model.Event, loc *time.Location) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeaders); err != nil {
		return fmt.Errorf("WriteCSV: %w", err)
	}
	for _, event := range events {
		record := []string{
			event.Title,
			event.Description,
			event.StartDate.In(loc).Format(csvDateLayout),
			event.EndDate.In(loc).Format(csvDateLayout),
			event.Location,
			event.Category.Name,
			ouiNon(event.IsAllDay),
			ouiNon(event.IsPrivate),
			strings.Join(event.Tags, ", "),
			event.CreatedAt.In(loc).Format(csvDateLayout),
			event.UpdatedAt.In(loc).Format(csvDateLayout),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("WriteCSV: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("WriteCSV: %w", err)
	}
	return nil
}

func ouiNon(b bool) string {
	if b {
		return "Oui"
	}
	return "Non"
}
