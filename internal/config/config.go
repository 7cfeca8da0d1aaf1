package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Sheet is one published CSV source plus its polling interval.
type Sheet struct {
	URL            string `yaml:"url" json:"url"`
	RefreshSeconds int    `yaml:"refresh_seconds" json:"refreshSeconds"`
}

type Config struct {
	App struct {
		Port    int    `yaml:"port" json:"port"`
		DataDir string `yaml:"data_dir" json:"dataDir"`
	} `yaml:"app" json:"app"`

	Sheets struct {
		Leads   Sheet `yaml:"leads" json:"leads"`
		Signals Sheet `yaml:"signals" json:"signals"`
	} `yaml:"sheets" json:"sheets"`

	Webhooks struct {
		ScrapeURL      string  `yaml:"scrape_url" json:"scrapeUrl"`
		LeadEmailURL   string  `yaml:"lead_email_url" json:"leadEmailUrl"`
		SignalEmailURL string  `yaml:"signal_email_url" json:"signalEmailUrl"`
		JobChangeURL   string  `yaml:"job_change_url" json:"jobChangeUrl"`
		RatePerSec     float64 `yaml:"rate_per_sec" json:"ratePerSec"`
		Burst          int     `yaml:"burst" json:"burst"`
		TimeoutSeconds int     `yaml:"timeout_seconds" json:"timeoutSeconds"`
		TokenAccount   string  `yaml:"token_account" json:"tokenAccount"`
	} `yaml:"webhooks" json:"webhooks"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
