package httpapi

import (
	"net/http"

	"github.com/2024eb03012-afk/recruitment-os/internal/dataset"
	"github.com/2024eb03012-afk/recruitment-os/internal/poll"
	"github.com/2024eb03012-afk/recruitment-os/internal/render"
	"github.com/2024eb03012-afk/recruitment-os/internal/signal"
	"github.com/2024eb03012-afk/recruitment-os/internal/stats"
)

type SignalsHandler struct {
	Store  *dataset.Store[*signal.Signal]
	Runner *poll.Runner
}

// List serves the records in stored order, which for this lane is
// already newest first. After a failed refresh every dependent view
// goes empty, not just the table.
func (h SignalsHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.Runner.SignalStatus().LastError != "" {
		writeJSON(w, []*signal.Signal{})
		return
	}
	writeJSON(w, h.Store.Snapshot())
}

// Table serves the rendered signal table, optionally narrowed by
// ?filter=news|funded|jobchange. The count reflects the filter as
// "K of N signals".
func (h SignalsHandler) Table(w http.ResponseWriter, r *http.Request) {
	st := h.Runner.SignalStatus()
	if st.LastError != "" {
		writeJSON(w, tableResponse{
			Table: render.Table{HTML: render.EmptyState, Count: render.CountLabel(0, "signals")},
			Error: st.LastError,
		})
		return
	}

	all := h.Store.Snapshot()
	rows := stats.FilterSignals(all, r.URL.Query().Get("filter"))
	writeJSON(w, tableResponse{Table: render.RenderSignals(rows, len(all))})
}

func (h SignalsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if h.Runner.SignalStatus().LastError != "" {
		writeJSON(w, stats.ComputeSignalStats(nil))
		return
	}
	writeJSON(w, stats.ComputeSignalStats(h.Store.Snapshot()))
}
