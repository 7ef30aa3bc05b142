package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"TradeScope/internal/model"
)

// Config holds all application configuration.
type Config struct {
	Watchlist struct {
		Symbols      []string `yaml:"symbols"`
		SecurityType string   `yaml:"security_type"`
		LookbackDays int      `yaml:"lookback_days"`
	} `yaml:"watchlist"`
	Monitor struct {
		UpdateInterval   time.Duration `yaml:"update_interval"`
		InterSymbolDelay time.Duration `yaml:"inter_symbol_delay"`
		AlertLogPath     string        `yaml:"alert_log_path"`
		SummaryPath      string        `yaml:"summary_path"`
	} `yaml:"monitor"`
	Schedule struct {
		CycleCron   string `yaml:"cycle_cron"`
		SummaryCron string `yaml:"summary_cron"`
	} `yaml:"schedule"`
	Grading struct {
		RubricPath  string `yaml:"rubric_path"`
		KnowhowPath string `yaml:"knowhow_path"`
	} `yaml:"grading"`
	OpenAI struct {
		APIKey  string `yaml:"api_key"`
		Model   string `yaml:"model"`
		BaseURL string `yaml:"base_url"`
	} `yaml:"openai"`
	Slack struct {
		Token   string `yaml:"token"`
		Channel string `yaml:"channel"`
	} `yaml:"slack"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("WATCH_SYMBOLS"); v != "" {
		cfg.Watchlist.Symbols = splitSymbols(v)
	}
	if v := os.Getenv("SECURITY_TYPE"); v != "" {
		cfg.Watchlist.SecurityType = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.OpenAI.APIKey = v
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		cfg.OpenAI.Model = v
	}
	if v := os.Getenv("SLACK_TOKEN"); v != "" {
		cfg.Slack.Token = v
	}
	if v := os.Getenv("SLACK_CHANNEL"); v != "" {
		cfg.Slack.Channel = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("UPDATE_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Monitor.UpdateInterval = d
		}
	}
	if v := os.Getenv("LOOKBACK_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Watchlist.LookbackDays = n
		}
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("CRON_CYCLE"); v != "" {
		cfg.Schedule.CycleCron = v
	}

	// Defaults
	if len(cfg.Watchlist.Symbols) == 0 {
		cfg.Watchlist.Symbols = []string{"AAPL", "MSFT", "GOOGL"}
	}
	if cfg.Watchlist.SecurityType == "" {
		cfg.Watchlist.SecurityType = string(model.SecurityEquity)
	}
	if cfg.Watchlist.LookbackDays == 0 {
		cfg.Watchlist.LookbackDays = 365
	}
	if cfg.Monitor.UpdateInterval == 0 {
		cfg.Monitor.UpdateInterval = time.Hour
	}
	if cfg.Monitor.InterSymbolDelay == 0 {
		cfg.Monitor.InterSymbolDelay = 2 * time.Second
	}
	if cfg.Monitor.AlertLogPath == "" {
		cfg.Monitor.AlertLogPath = "data/alerts.json"
	}
	if cfg.Monitor.SummaryPath == "" {
		cfg.Monitor.SummaryPath = "data/summary.json"
	}
	if cfg.Schedule.SummaryCron == "" {
		cfg.Schedule.SummaryCron = "0 0 22 * * 1-5"
	}
	if cfg.Grading.RubricPath == "" {
		cfg.Grading.RubricPath = "configs/rubric.yaml"
	}
	if cfg.Grading.KnowhowPath == "" {
		cfg.Grading.KnowhowPath = "configs/knowhow.md"
	}
	if cfg.OpenAI.Model == "" {
		cfg.OpenAI.Model = "gpt-4o-mini"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/tradescope.db"
	}

	return cfg, nil
}

func splitSymbols(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, strings.ToUpper(p))
		}
	}
	return out
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if len(c.Watchlist.Symbols) == 0 {
		return fmt.Errorf("watchlist.symbols is required")
	}
	if !model.SecurityType(c.Watchlist.SecurityType).Valid() {
		return fmt.Errorf("watchlist.security_type %q is invalid", c.Watchlist.SecurityType)
	}
	if c.Watchlist.LookbackDays < 30 {
		return fmt.Errorf("watchlist.lookback_days must be at least 30")
	}
	if c.OpenAI.APIKey == "" {
		return fmt.Errorf("openai.api_key is required")
	}
	if c.Monitor.UpdateInterval < time.Minute {
		return fmt.Errorf("monitor.update_interval must be at least 1m")
	}
	return nil
}
