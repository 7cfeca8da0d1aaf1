package httpapi

import (
	"context"
	"net/http"
	"sync/atomic"

	"github.com/2024eb03012-afk/recruitment-os/internal/config"
	"github.com/2024eb03012-afk/recruitment-os/internal/poll"
)

type RefreshHandler struct {
	Runner *poll.Runner
	CfgVal *atomic.Value // config.Config
}

// Run kicks off a manual refresh in the background. ?lane=leads or
// ?lane=signals narrows it to one lane; the default refreshes both.
// A lane already in flight reports "already running" instead of
// starting a second cycle.
func (h RefreshHandler) Run(w http.ResponseWriter, r *http.Request) {
	cfg := h.CfgVal.Load().(config.Config)
	lane := r.URL.Query().Get("lane")

	switch lane {
	case "leads":
		if h.Runner.LeadStatus().Running {
			writeJSON(w, map[string]any{"ok": false, "msg": "already running"})
			return
		}
		go func() {
			_ = h.Runner.RefreshLeads(context.Background(), cfg.Sheets.Leads.URL)
		}()
	case "signals":
		if h.Runner.SignalStatus().Running {
			writeJSON(w, map[string]any{"ok": false, "msg": "already running"})
			return
		}
		go func() {
			_ = h.Runner.RefreshSignals(context.Background(), cfg.Sheets.Signals.URL)
		}()
	default:
		go func() {
			_ = h.Runner.RefreshAll(context.Background(), cfg.Sheets.Leads.URL, cfg.Sheets.Signals.URL)
		}()
	}

	writeJSON(w, map[string]any{"ok": true})
}

func (h RefreshHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]poll.RefreshStatus{
		"leads":   h.Runner.LeadStatus(),
		"signals": h.Runner.SignalStatus(),
	})
}
