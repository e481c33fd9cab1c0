package export_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"planningapp/src-server/export"
	"planningapp/src-server/model"
)

func sampleEvents() []model.Event {
	start := time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)
	return []model.Event{
		{
			ID:          "evt-1",
			Title:       "Réunion, budget",
			Description: "Ligne 1\nLigne 2",
			StartDate:   start,
			EndDate:     start.Add(time.Hour),
			Location:    `Salle "B"`,
			Category:    model.EventCategory{ID: "1", Name: "Réunion", Color: "#4285F4", Icon: "people"},
			IsAllDay:    false,
			IsPrivate:   true,
			Tags:        []string{"travail", "finance"},
			CreatedAt:   start,
			UpdatedAt:   start,
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, sampleEvents(), time.UTC); err != nil {
		t.Fatal(err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output should parse back as CSV: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want header + 1 row", len(records))
	}
	if records[0][0] != "Titre" || records[0][10] != "Modifié le" {
		t.Errorf("unexpected headers: %v", records[0])
	}

	row := records[1]
	// commas, quotes and newlines survive the quoting round trip
	if row[0] != "Réunion, budget" {
		t.Errorf("title: got %q", row[0])
	}
	if row[1] != "Ligne 1\nLigne 2" {
		t.Errorf("description: got %q", row[1])
	}
	if row[4] != `Salle "B"` {
		t.Errorf("location: got %q", row[4])
	}
	if row[2] != "08/01/2024 09:00" {
		t.Errorf("start date: got %q", row[2])
	}
	if row[6] != "Non" || row[7] != "Oui" {
		t.Errorf("booleans: got allDay=%q private=%q", row[6], row[7])
	}
	if row[8] != "travail, finance" {
		t.Errorf("tags: got %q", row[8])
	}
}

func TestWriteCSVRendersInLocation(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Skip("tzdata unavailable")
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, sampleEvents(), paris); err != nil {
		t.Fatal(err)
	}
	// 09:00 UTC is 10:00 in Paris in January
	if !strings.Contains(buf.String(), "08/01/2024 10:00") {
		t.Error("dates should be rendered in the requested timezone")
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := export.WriteJSON(&buf, sampleEvents()); err != nil {
		t.Fatal(err)
	}

	var decoded []model.Event
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output should parse back as JSON: %v", err)
	}
	if len(decoded) != 1 || decoded[0].Title != "Réunion, budget" {
		t.Errorf("unexpected decode: %+v", decoded)
	}
	if !strings.Contains(buf.String(), "\n  ") {
		t.Error("output should be indented")
	}
}
