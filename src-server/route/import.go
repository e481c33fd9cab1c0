package route

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"planningapp/src-server/ical"
	"planningapp/src-server/store"
	"planningapp/src-server/utils"
)

func Import(muxer *http.ServeMux, as *utils.AppState, s *store.EventStore) {
	muxer.HandleFunc("POST /import/calendar.ics", func(w http.ResponseWriter, r *http.Request) {
		events, cerr := ical.Parse(r.Body)
		if cerr != nil {
			http.Error(w, cerr.Error(), http.StatusBadRequest)
			return
		}

		imported := 0
		for _, event := range events {
			if _, err := s.AddEvent(r.Context(), event); err != nil {
				slog.Warn("can't import event", "title", event.Title, "error", err)
				continue
			}
			imported++
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]int{
			"imported": imported,
			"skipped":  len(events) - imported,
		})
	})
}
