package export

import (
	"encoding/json"
	"fmt"
	"io"

	"planningapp/src-server/model"
)

// WriteJSON writes the events as indented JSON, the same shape the mobile
// client stores locally.
func WriteJSON(w io.Writer, events []model.Event) error {
	encoded, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return fmt.Errorf("WriteJSON: %w", err)
	}
	if _, err := w.Write(encoded); err != nil {
		return fmt.Errorf("WriteJSON: %w", err)
	}
	return nil
}
