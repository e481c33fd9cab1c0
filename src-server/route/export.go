package route

import (
	"log/slog"
	"net/http"

	"planningapp/src-server/export"
	"planningapp/src-server/ical"
	"planningapp/src-server/store"
	"planningapp/src-server/utils"
)

func Export(muxer *http.ServeMux, as *utils.AppState, s *store.EventStore) {
	muxer.HandleFunc("GET /export/calendar.ics", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="calendar.ics"`)
		if err := ical.MarshalTo(w, s.Events()); err != nil {
			slog.Error("can't export ics", "error", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})

	muxer.HandleFunc("GET /export/events.csv", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="events.csv"`)
		if err := export.WriteCSV(w, s.Events(), as.Config.GetLocation()); err != nil {
			slog.Error("can't export csv", "error", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})

	muxer.HandleFunc("GET /export/events.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="events.json"`)
		if err := export.WriteJSON(w, s.Events()); err != nil {
			slog.Error("can't export json", "error", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
