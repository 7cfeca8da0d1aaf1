package httpapi

import "net/http"

// NewMux returns the raw mux so main() can still attach /shutdown (needs srv+token).
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	hh := HealthHandler{}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	// Leads
	lh := LeadsHandler{Store: d.Leads, Runner: d.Runner, Hub: d.Hub}
	mux.HandleFunc("/leads", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: lh.List,
	}))
	mux.HandleFunc("/leads/table", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: lh.Table,
	}))
	mux.HandleFunc("/leads/metrics", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: lh.Metrics,
	}))
	mux.HandleFunc("/leads/charts", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: lh.Charts,
	}))
	mux.HandleFunc("/leads/edits", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: lh.SaveEdit,
	}))

	// Signals
	sgh := SignalsHandler{Store: d.Signals, Runner: d.Runner}
	mux.HandleFunc("/signals", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sgh.List,
	}))
	mux.HandleFunc("/signals/table", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sgh.Table,
	}))
	mux.HandleFunc("/signals/stats", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sgh.Stats,
	}))

	// Refresh
	rh := RefreshHandler{Runner: d.Runner, CfgVal: d.CfgVal}
	mux.HandleFunc("/refresh", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: rh.Run,
	}))
	mux.HandleFunc("/refresh/status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: rh.Status,
	}))

	// Outbound automation
	wh := WebhookHandler{Client: d.Webhooks, CfgVal: d.CfgVal}
	mux.HandleFunc("/scrape", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: wh.SubmitScrape,
	}))
	mux.HandleFunc("/leads/send-email", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: wh.SendLeadEmail,
	}))
	mux.HandleFunc("/signals/send-email", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: wh.SendSignalEmail,
	}))
	mux.HandleFunc("/track", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: wh.StartTracking,
	}))

	// Run history
	hih := HistoryHandler{DB: d.History}
	mux.HandleFunc("/history", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hih.List,
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))

	// Secrets (use cfgVal, NOT a snapshot cfg)
	sh := SecretsHandler{CfgVal: d.CfgVal, TokenVal: d.TokenVal}
	mux.HandleFunc("/api/secrets/webhook", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.SetWebhookToken,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	return mux
}
