package poll

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/2024eb03012-afk/recruitment-os/internal/config"
	"github.com/2024eb03012-afk/recruitment-os/internal/scheduler"
)

// StartPoller runs one ticker loop per lane. Each tick re-reads the
// live config so URL or interval edits apply without a restart; the
// interval itself is fixed at the value seen on startup.
func StartPoller(ctx context.Context, cfgVal *atomic.Value, runner *Runner) {
	cfg := cfgVal.Load().(config.Config)

	leadEvery := time.Duration(cfg.Sheets.Leads.RefreshSeconds) * time.Second
	signalEvery := time.Duration(cfg.Sheets.Signals.RefreshSeconds) * time.Second

	// a hand-edited config may carry a missing or zero interval
	if leadEvery <= 0 {
		leadEvery = 30 * time.Second
	}
	if signalEvery <= 0 {
		signalEvery = 5 * time.Minute
	}

	go scheduler.Every(ctx, leadEvery, "poll:leads", func(ctx context.Context) error {
		c := cfgVal.Load().(config.Config)
		if c.Sheets.Leads.URL == "" {
			return nil
		}
		err := runner.RefreshLeads(ctx, c.Sheets.Leads.URL)
		if err == ErrAlreadyRunning {
			return nil
		}
		return err
	})

	go scheduler.Every(ctx, signalEvery, "poll:signals", func(ctx context.Context) error {
		c := cfgVal.Load().(config.Config)
		if c.Sheets.Signals.URL == "" {
			return nil
		}
		err := runner.RefreshSignals(ctx, c.Sheets.Signals.URL)
		if err == ErrAlreadyRunning {
			return nil
		}
		return err
	})
}
