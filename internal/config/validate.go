package config

import (
	"fmt"
	"net/url"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy plus everything a
// user should fix or know about before the config is saved.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	trimURL := func(s string) string { return strings.TrimSpace(s) }

	out.Sheets.Leads.URL = trimURL(out.Sheets.Leads.URL)
	out.Sheets.Signals.URL = trimURL(out.Sheets.Signals.URL)
	out.Webhooks.ScrapeURL = trimURL(out.Webhooks.ScrapeURL)
	out.Webhooks.LeadEmailURL = trimURL(out.Webhooks.LeadEmailURL)
	out.Webhooks.SignalEmailURL = trimURL(out.Webhooks.SignalEmailURL)
	out.Webhooks.JobChangeURL = trimURL(out.Webhooks.JobChangeURL)

	// sheet sanity
	checkSheet := func(name string, s Sheet) {
		if s.URL == "" {
			res.addWarn("sheets.%s.url is empty; that lane will stay empty until set.", name)
		} else if u, err := url.Parse(s.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			res.addErr("sheets.%s.url must be an http(s) URL", name)
		}
		if s.RefreshSeconds <= 0 {
			res.addErr("sheets.%s.refresh_seconds must be > 0", name)
		} else if s.RefreshSeconds < 10 {
			res.addWarn("sheets.%s.refresh_seconds is very low (%d) and may cause rate limits.", name, s.RefreshSeconds)
		}
	}
	checkSheet("leads", out.Sheets.Leads)
	checkSheet("signals", out.Sheets.Signals)

	// webhook sanity
	checkHook := func(name, raw string) {
		if raw == "" {
			return
		}
		if u, err := url.Parse(raw); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			res.addErr("webhooks.%s must be an http(s) URL", name)
		}
	}
	checkHook("scrape_url", out.Webhooks.ScrapeURL)
	checkHook("lead_email_url", out.Webhooks.LeadEmailURL)
	checkHook("signal_email_url", out.Webhooks.SignalEmailURL)
	checkHook("job_change_url", out.Webhooks.JobChangeURL)

	if out.Webhooks.RatePerSec <= 0 {
		res.addErr("webhooks.rate_per_sec must be > 0")
	}
	if out.Webhooks.Burst <= 0 {
		res.addErr("webhooks.burst must be > 0")
	}
	if out.Webhooks.TimeoutSeconds <= 0 {
		res.addErr("webhooks.timeout_seconds must be > 0")
	} else if out.Webhooks.TimeoutSeconds > 120 {
		res.addWarn("webhooks.timeout_seconds is very high (%d); sends block the caller that long.", out.Webhooks.TimeoutSeconds)
	}

	return out, res
}
