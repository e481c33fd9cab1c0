package route

import (
	"net/http"

	"planningapp/src-server/utils"
)

func Ping(muxer *http.ServeMux, as *utils.AppState) {
	muxer.HandleFunc("GET /ping", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pong"))
	})
}
