package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/2024eb03012-afk/recruitment-os/internal/dataset"
	"github.com/2024eb03012-afk/recruitment-os/internal/events"
	"github.com/2024eb03012-afk/recruitment-os/internal/lead"
	"github.com/2024eb03012-afk/recruitment-os/internal/poll"
	"github.com/2024eb03012-afk/recruitment-os/internal/render"
	"github.com/2024eb03012-afk/recruitment-os/internal/stats"
)

type LeadsHandler struct {
	Store  *dataset.Store[*lead.Lead]
	Runner *poll.Runner
	Hub    *events.Hub
}

// List serves the records in presentation order, newest sheet row
// first. After a failed refresh every dependent view goes empty, not
// just the table.
func (h LeadsHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.Runner.LeadStatus().LastError != "" {
		writeJSON(w, []*lead.Lead{})
		return
	}
	writeJSON(w, h.Store.Reversed())
}

type tableResponse struct {
	render.Table
	Error string `json:"error,omitempty"`
}

// Table serves the rendered lead table. After a failed refresh the
// table shows the empty state and carries the error; the dataset
// stays in memory only so the next successful refresh replays edits.
func (h LeadsHandler) Table(w http.ResponseWriter, r *http.Request) {
	st := h.Runner.LeadStatus()
	if st.LastError != "" {
		writeJSON(w, tableResponse{
			Table: render.Table{HTML: render.EmptyState, Count: render.CountLabel(0, "records")},
			Error: st.LastError,
		})
		return
	}
	writeJSON(w, tableResponse{Table: render.RenderLeads(h.Store.Reversed())})
}

func (h LeadsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.Runner.LeadStatus().LastError != "" {
		writeJSON(w, stats.ComputeMetrics(nil))
		return
	}
	writeJSON(w, stats.ComputeMetrics(h.Store.Snapshot()))
}

func (h LeadsHandler) Charts(w http.ResponseWriter, r *http.Request) {
	if h.Runner.LeadStatus().LastError != "" {
		writeJSON(w, render.Charts(nil))
		return
	}
	writeJSON(w, render.Charts(h.Store.Snapshot()))
}

type editRequest struct {
	CompanyName string `json:"companyName"`
	Title       string `json:"title"`
	Field       string `json:"field"`
	Value       string `json:"value"`
}

// SaveEdit overrides one field of the record identified by its
// composite key. The edit lives for the session and replays across
// reloads.
func (h LeadsHandler) SaveEdit(w http.ResponseWriter, r *http.Request) {
	var req editRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Field) == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_field", "field is required")
		return
	}

	key := req.CompanyName + "|" + req.Title
	idx := h.Store.FindByKey(key)
	if idx < 0 {
		WriteError(w, r, http.StatusNotFound, "record_not_found", "no record for "+key)
		return
	}

	if err := h.Store.SaveEdit(idx, req.Field, req.Value); err != nil {
		WriteError(w, r, http.StatusBadRequest, "edit_failed", err.Error())
		return
	}

	h.Hub.Publish(events.MakeEvent(RequestIDFrom(r.Context()), "lead_edited", 1, map[string]string{
		"key":   key,
		"field": req.Field,
	}))
	writeJSON(w, map[string]any{"ok": true})
}
