package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"planningapp/src-server/model"
	"planningapp/src-server/utils"
)

var ErrUnparsableQuickAdd = errors.New("no date or time found in text")

// defaultQuickAddDuration applies when the text names a start but no end.
const defaultQuickAddDuration = time.Hour

// QuickAdd creates an event from natural-language text such as
// "Déjeuner avec Paul tomorrow at noon". The matched date fragment becomes
// the start (one hour long), the rest becomes the title. The first known
// category is snapshotted into the event.
func (s *EventStore) QuickAdd(ctx context.Context, text, createdBy string) (model.Event, error) {
	result, err := s.as.When.Parse(text, time.Now().In(s.as.Config.GetLocation()))
	if err != nil {
		return model.Event{}, fmt.Errorf("(*EventStore).QuickAdd: %w", err)
	}
	if result == nil {
		return model.Event{}, fmt.Errorf("(*EventStore).QuickAdd: %q: %w", text, ErrUnparsableQuickAdd)
	}

	title := utils.CleanupString(strings.Replace(text, result.Text, "", 1))
	if title == "" {
		title = "Nouvel événement"
	}

	var category model.EventCategory
	if categories := s.Categories(); len(categories) > 0 {
		category = categories[0]
	}

	return s.AddEvent(ctx, model.Event{
		Title:     title,
		StartDate: result.Time,
		EndDate:   result.Time.Add(defaultQuickAddDuration),
		Category:  category,
		CreatedBy: createdBy,
	})
}
