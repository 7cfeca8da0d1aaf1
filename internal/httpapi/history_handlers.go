package httpapi

import (
	"net/http"
	"strconv"

	"github.com/2024eb03012-afk/recruitment-os/internal/history"
)

type HistoryHandler struct {
	DB *history.DB
}

// List serves the most recent refresh runs, newest first.
func (h HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	runs, err := history.ListRuns(r.Context(), h.DB.Pool, limit)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "history_failed", err.Error())
		return
	}
	if runs == nil {
		runs = []history.Run{}
	}
	writeJSON(w, runs)
}
