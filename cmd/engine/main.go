package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/2024eb03012-afk/recruitment-os/internal/config"
	"github.com/2024eb03012-afk/recruitment-os/internal/dataset"
	"github.com/2024eb03012-afk/recruitment-os/internal/events"
	"github.com/2024eb03012-afk/recruitment-os/internal/history"
	"github.com/2024eb03012-afk/recruitment-os/internal/httpapi"
	"github.com/2024eb03012-afk/recruitment-os/internal/lead"
	"github.com/2024eb03012-afk/recruitment-os/internal/poll"
	"github.com/2024eb03012-afk/recruitment-os/internal/secrets"
	"github.com/2024eb03012-afk/recruitment-os/internal/sheet"
	"github.com/2024eb03012-afk/recruitment-os/internal/signal"
	"github.com/2024eb03012-afk/recruitment-os/internal/webhook"

	"github.com/gofrs/flock"
)

func main() {
	// Engine data dir: use env if provided, else local folder.
	dataDir := os.Getenv("RECRUITMENT_OS_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// Single-instance guard: a second engine on the same data dir
	// would double-fire every webhook.
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("instance lock failed: %v", err)
	}
	if !locked {
		log.Fatalf("another engine is already running on %s", dataDir)
	}
	defer lock.Unlock()

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	// Load config and keep it reloadable
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		return config.Load(userCfgPath)
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfgVal.Store(cfg)

	// Session-local run history
	hist, err := history.Open()
	if err != nil {
		log.Fatal(err)
	}
	defer hist.Close()
	if err := history.Migrate(hist.Pool); err != nil {
		log.Fatal(err)
	}

	hub := events.NewHub()

	leads := dataset.NewStore[*lead.Lead]()
	signals := dataset.NewStore[*signal.Signal]()

	// Webhook bearer token: keychain if set, else unauthenticated
	var tokenVal atomic.Value // stores string
	tokenVal.Store("")
	if acct := cfg.Webhooks.TokenAccount; acct != "" {
		if tok, err := secrets.GetWebhookToken(acct); err == nil {
			tokenVal.Store(tok)
		} else {
			log.Printf("[secrets] webhook token: %v", err)
		}
	}

	limiter := webhook.NewHostLimiter(cfg.Webhooks.RatePerSec, cfg.Webhooks.Burst)
	hooks := webhook.NewClient(
		time.Duration(cfg.Webhooks.TimeoutSeconds)*time.Second,
		limiter,
		func() string { return tokenVal.Load().(string) },
	)

	runner := &poll.Runner{
		Sheets:  sheet.NewClient(20 * time.Second),
		Leads:   leads,
		Signals: signals,
		History: hist,
		Hub:     hub,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	poll.StartPoller(ctx, &cfgVal, runner)

	mux := httpapi.NewMux(httpapi.Deps{
		History:     hist,
		Hub:         hub,
		Leads:       leads,
		Signals:     signals,
		Runner:      runner,
		Webhooks:    hooks,
		CfgVal:      &cfgVal,
		TokenVal:    &tokenVal,
		UserCfgPath: userCfgPath,
		LoadCfg:     loadCfg,
	})

	srv := &http.Server{
		ReadHeaderTimeout: 5 * time.Second,
	}

	shutdownToken, err := randomToken(16)
	if err != nil {
		log.Fatal(err)
	}
	mux.HandleFunc("/shutdown", shutdownHandler(&shutdownToken, srv))

	srv.Handler = httpapi.Chain(mux,
		httpapi.RequestID,
		httpapi.Recover,
		httpapi.AccessLog,
		httpapi.Cors,
	)

	addr := net.JoinHostPort("127.0.0.1", portString(cfg.App.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("engine listening on http://%s (config=%s)", addr, userCfgPath)
	log.Printf("shutdown token: %s", shutdownToken)

	if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

func portString(port int) string {
	if port <= 0 {
		port = 38471
	}
	return strconv.Itoa(port)
}
