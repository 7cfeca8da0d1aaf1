package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/2024eb03012-afk/recruitment-os/internal/config"
	"github.com/2024eb03012-afk/recruitment-os/internal/webhook"
)

type WebhookHandler struct {
	Client *webhook.Client
	CfgVal *atomic.Value // config.Config
}

func (h WebhookHandler) cfg() config.Config {
	return h.CfgVal.Load().(config.Config)
}

// SubmitScrape validates and forwards a scrape request to the scrape
// automation flow.
func (h WebhookHandler) SubmitScrape(w http.ResponseWriter, r *http.Request) {
	var req webhook.ScrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	req.Stamp(time.Now())

	if err := h.Client.Post(r.Context(), h.cfg().Webhooks.ScrapeURL, req); err != nil {
		WriteError(w, r, http.StatusBadGateway, "webhook_failed", err.Error())
		return
	}
	writeJSON(w, map[string]any{"ok": true})
}

type leadEmailRequest struct {
	Title string `json:"title"`
	Email string `json:"email"`
	Body  string `json:"body"`
}

// SendLeadEmail forwards one outreach send from the lead table.
func (h WebhookHandler) SendLeadEmail(w http.ResponseWriter, r *http.Request) {
	var req leadEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Body) == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_body", "no outreach text found")
		return
	}

	payload := webhook.LeadEmail{
		Title:     req.Title,
		Email:     req.Email,
		Body:      req.Body,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if err := h.Client.Post(r.Context(), h.cfg().Webhooks.LeadEmailURL, payload); err != nil {
		WriteError(w, r, http.StatusBadGateway, "webhook_failed", err.Error())
		return
	}
	writeJSON(w, map[string]any{"ok": true})
}

type signalEmailRequest struct {
	Email       string `json:"email"`
	Content     string `json:"content"`
	CompanyName string `json:"companyName"`
}

// SendSignalEmail forwards one outreach send from the signals table.
// The content may be a JSON envelope carrying subject and body.
func (h WebhookHandler) SendSignalEmail(w http.ResponseWriter, r *http.Request) {
	var req signalEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_email", "contact email is required")
		return
	}

	subject, body := webhook.SplitOutreach(req.Content)
	payload := webhook.SignalEmail{
		Email:       req.Email,
		Message:     body,
		Subject:     subject,
		CompanyName: req.CompanyName,
	}
	if err := h.Client.Post(r.Context(), h.cfg().Webhooks.SignalEmailURL, payload); err != nil {
		WriteError(w, r, http.StatusBadGateway, "webhook_failed", err.Error())
		return
	}
	writeJSON(w, map[string]any{"ok": true})
}

// StartTracking validates and forwards a job-change tracking request
// and relays the flow's result back to the caller.
func (h WebhookHandler) StartTracking(w http.ResponseWriter, r *http.Request) {
	var req webhook.TrackingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	result, err := h.Client.StartTracking(r.Context(), h.cfg().Webhooks.JobChangeURL, &req)
	if err != nil {
		WriteError(w, r, http.StatusBadGateway, "webhook_failed", err.Error())
		return
	}
	writeJSON(w, result)
}
