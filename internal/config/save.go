package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

func Validate(cfg Config) error {
	var errs []string

	if cfg.App.Port <= 0 || cfg.App.Port > 65535 {
		errs = append(errs, "app.port must be 1..65535")
	}
	if cfg.Sheets.Leads.RefreshSeconds <= 0 {
		errs = append(errs, "sheets.leads.refresh_seconds must be > 0")
	}
	if cfg.Sheets.Signals.RefreshSeconds <= 0 {
		errs = append(errs, "sheets.signals.refresh_seconds must be > 0")
	}
	if cfg.Webhooks.RatePerSec <= 0 {
		errs = append(errs, "webhooks.rate_per_sec must be > 0")
	}
	if cfg.Webhooks.Burst <= 0 {
		errs = append(errs, "webhooks.burst must be > 0")
	}
	if cfg.Webhooks.TimeoutSeconds <= 0 {
		errs = append(errs, "webhooks.timeout_seconds must be > 0")
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n- " + joinLines(errs))
	}
	return nil
}

func SaveAtomic(path string, cfg Config) error {
	if err := Validate(cfg); err != nil {
		return err
	}

	b, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	bak := path + ".bak"

	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}

	_ = os.Remove(bak)
	_ = os.Rename(path, bak)

	return os.Rename(tmp, path)
}

func joinLines(lines []string) string {
	out := ""
	for i, s := range lines {
		if i > 0 {
			out += "\n-"
		}
		out += s
	}
	return out
}
