package httpapi

import (
	"encoding/json"
	"net/http"
	"sync/atomic"

	"github.com/2024eb03012-afk/recruitment-os/internal/config"
	"github.com/2024eb03012-afk/recruitment-os/internal/secrets"
)

type SecretsHandler struct {
	CfgVal   *atomic.Value // stores config.Config
	TokenVal *atomic.Value // stores the live token string
}

type setWebhookTokenReq struct {
	Token string `json:"token"`
}

func (h SecretsHandler) SetWebhookToken(w http.ResponseWriter, r *http.Request) {
	var req setWebhookTokenReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	cfg := h.CfgVal.Load().(config.Config)
	if err := secrets.SetWebhookToken(cfg.Webhooks.TokenAccount, req.Token); err != nil {
		http.Error(w, "failed to store token: "+err.Error(), http.StatusBadRequest)
		return
	}
	h.TokenVal.Store(req.Token)
	w.WriteHeader(http.StatusNoContent)
}
