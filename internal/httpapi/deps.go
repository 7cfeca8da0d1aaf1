package httpapi

import (
	"sync/atomic"

	"github.com/2024eb03012-afk/recruitment-os/internal/config"
	"github.com/2024eb03012-afk/recruitment-os/internal/dataset"
	"github.com/2024eb03012-afk/recruitment-os/internal/events"
	"github.com/2024eb03012-afk/recruitment-os/internal/history"
	"github.com/2024eb03012-afk/recruitment-os/internal/lead"
	"github.com/2024eb03012-afk/recruitment-os/internal/poll"
	"github.com/2024eb03012-afk/recruitment-os/internal/signal"
	"github.com/2024eb03012-afk/recruitment-os/internal/webhook"
)

type Deps struct {
	History *history.DB

	Hub *events.Hub

	// Datasets
	Leads   *dataset.Store[*lead.Lead]
	Signals *dataset.Store[*signal.Signal]

	// Refresh entrypoint
	Runner *poll.Runner

	// Outbound automation
	Webhooks *webhook.Client

	// Atomic stores
	CfgVal   *atomic.Value // stores config.Config
	TokenVal *atomic.Value // stores the webhook bearer token string

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)
}
