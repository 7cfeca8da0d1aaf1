// Package poll drives the periodic and manual refresh of both data
// lanes: fetch the sheet CSV, parse, map, merge session edits, and
// publish the outcome.
package poll

import (
	"context"
	"errors"
	"log"
	"sync/atomic"
	"time"

	"github.com/2024eb03012-afk/recruitment-os/internal/dataset"
	"github.com/2024eb03012-afk/recruitment-os/internal/events"
	"github.com/2024eb03012-afk/recruitment-os/internal/history"
	"github.com/2024eb03012-afk/recruitment-os/internal/lead"
	"github.com/2024eb03012-afk/recruitment-os/internal/sheet"
	"github.com/2024eb03012-afk/recruitment-os/internal/signal"
	"github.com/2024eb03012-afk/recruitment-os/internal/stats"

	"golang.org/x/sync/errgroup"
)

// ErrAlreadyRunning reports a refresh request for a lane whose
// previous refresh has not finished.
var ErrAlreadyRunning = errors.New("refresh already running")

// RefreshStatus is the last known state of one lane.
type RefreshStatus struct {
	LastRunAt string `json:"lastRunAt"`
	LastOkAt  string `json:"lastOkAt"`
	LastError string `json:"lastError"`
	LastCount int    `json:"lastCount"`
	Running   bool   `json:"running"`
}

// Runner owns both lanes. A failed fetch keeps the previous dataset
// in place; only the lane status carries the error.
type Runner struct {
	Sheets  *sheet.Client
	Leads   *dataset.Store[*lead.Lead]
	Signals *dataset.Store[*signal.Signal]
	History *history.DB
	Hub     *events.Hub

	leadStatus    atomic.Value // RefreshStatus
	signalStatus  atomic.Value // RefreshStatus
	leadRunning   atomic.Bool
	signalRunning atomic.Bool
}

func (r *Runner) LeadStatus() RefreshStatus   { return loadStatus(&r.leadStatus) }
func (r *Runner) SignalStatus() RefreshStatus { return loadStatus(&r.signalStatus) }

func loadStatus(v *atomic.Value) RefreshStatus {
	if st, ok := v.Load().(RefreshStatus); ok {
		return st
	}
	return RefreshStatus{}
}

// RefreshLeads runs one full lead-lane cycle against the given sheet
// URL. Overlapping calls for the same lane are rejected.
func (r *Runner) RefreshLeads(ctx context.Context, url string) error {
	if !r.leadRunning.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer r.leadRunning.Store(false)

	st := loadStatus(&r.leadStatus)
	st.Running = true
	st.LastRunAt = time.Now().UTC().Format(time.RFC3339)
	r.leadStatus.Store(st)

	text, err := r.Sheets.FetchCSV(ctx, url)
	if err != nil {
		r.finishLeads(ctx, st, 0, 0, err)
		return err
	}

	rows := sheet.LeadDialect.Parse(text)
	records := lead.MapRows(rows)
	r.Leads.Replace(records)

	var sum float64
	var n int
	for _, rec := range records {
		if v, ok := stats.ParseScore(rec.MatchScore); ok {
			sum += v
			n++
		}
	}
	avg := 0.0
	if n > 0 {
		avg = sum / float64(n)
	}

	r.finishLeads(ctx, st, len(records), avg, nil)
	r.Hub.Publish(events.MakeEvent("", "leads_refreshed", 1, map[string]int{"records": len(records)}))
	return nil
}

func (r *Runner) finishLeads(ctx context.Context, st RefreshStatus, count int, avg float64, err error) {
	st.Running = false
	st.LastCount = count
	if err != nil {
		st.LastError = err.Error()
		log.Printf("[refresh:leads] error: %v", err)
	} else {
		st.LastError = ""
		st.LastOkAt = time.Now().UTC().Format(time.RFC3339)
		log.Printf("[refresh:leads] ok records=%d", count)
	}
	r.leadStatus.Store(st)
	r.record(ctx, "leads", count, avg, err)
}

// RefreshSignals runs one full signal-lane cycle. The signal lane
// reverses at load time so the newest sheet row is stored first.
func (r *Runner) RefreshSignals(ctx context.Context, url string) error {
	if !r.signalRunning.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer r.signalRunning.Store(false)

	st := loadStatus(&r.signalStatus)
	st.Running = true
	st.LastRunAt = time.Now().UTC().Format(time.RFC3339)
	r.signalStatus.Store(st)

	text, err := r.Sheets.FetchCSV(ctx, url)
	if err != nil {
		r.finishSignals(ctx, st, 0, 0, err)
		return err
	}

	rows := sheet.SignalDialect.Parse(text)
	records := signal.MapRows(rows)
	signal.Reverse(records)
	r.Signals.Replace(records)

	var sum float64
	var n int
	for _, rec := range records {
		if v, ok := stats.ParseScore(rec.HiringScore); ok {
			sum += v
			n++
		}
	}
	avg := 0.0
	if n > 0 {
		avg = sum / float64(n)
	}

	r.finishSignals(ctx, st, len(records), avg, nil)
	r.Hub.Publish(events.MakeEvent("", "signals_refreshed", 1, map[string]int{"records": len(records)}))
	return nil
}

func (r *Runner) finishSignals(ctx context.Context, st RefreshStatus, count int, avg float64, err error) {
	st.Running = false
	st.LastCount = count
	if err != nil {
		st.LastError = err.Error()
		log.Printf("[refresh:signals] error: %v", err)
	} else {
		st.LastError = ""
		st.LastOkAt = time.Now().UTC().Format(time.RFC3339)
		log.Printf("[refresh:signals] ok records=%d", count)
	}
	r.signalStatus.Store(st)
	r.record(ctx, "signals", count, avg, err)
}

func (r *Runner) record(ctx context.Context, source string, count int, avg float64, runErr error) {
	if r.History == nil {
		return
	}
	run := history.Run{Source: source, Records: count, AvgScore: avg}
	if runErr != nil {
		run.Error = runErr.Error()
	}
	if err := history.InsertRun(ctx, r.History.Pool, &run); err != nil {
		log.Printf("[history] insert: %v", err)
	}
}

// RefreshAll refreshes both lanes concurrently. A lane already in
// flight is left alone rather than treated as a failure.
func (r *Runner) RefreshAll(ctx context.Context, leadsURL, signalsURL string) error {
	var g errgroup.Group
	g.Go(func() error {
		if err := r.RefreshLeads(ctx, leadsURL); err != nil && !errors.Is(err, ErrAlreadyRunning) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		if err := r.RefreshSignals(ctx, signalsURL); err != nil && !errors.Is(err, ErrAlreadyRunning) {
			return err
		}
		return nil
	})
	return g.Wait()
}
