package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DataSource   string `yaml:"data_source"`   // LIVE or STATIC
	LookbackDays int    `yaml:"lookback_days"` // price history window

	Indicators struct {
		RSIPeriod    int   `yaml:"rsi_period"`
		MACDFast     int   `yaml:"macd_fast"`
		MACDSlow     int   `yaml:"macd_slow"`
		SMAWindows   []int `yaml:"sma_windows"`
		VolWindow    int   `yaml:"vol_window"`
		VolumeWindow int   `yaml:"volume_window"`
	} `yaml:"indicators"`

	News struct {
		MaxArticles    int      `yaml:"max_articles"`
		TrustedSources []string `yaml:"trusted_sources"`
		TimeoutSeconds int      `yaml:"timeout_seconds"`
	} `yaml:"news"`

	LLM struct {
		Provider       string  `yaml:"provider"` // OPENAI, CLAUDE or NOOP
		Model          string  `yaml:"model"`
		BaseURL        string  `yaml:"base_url"`
		APIKeyEnv      string  `yaml:"api_key_env"`
		MaxTokens      int     `yaml:"max_tokens"`
		Temperature    float32 `yaml:"temperature"`
		MaxRetries     int     `yaml:"max_retries"`
		RetryBackoffMS int     `yaml:"retry_backoff_ms"`
		RequestsPerMin int     `yaml:"requests_per_min"`
	} `yaml:"llm"`
}

func (c *Config) Validate() error {
	if c.DataSource != "LIVE" && c.DataSource != "STATIC" {
		return fmt.Errorf("invalid data_source '%s': must be 'LIVE' or 'STATIC'", c.DataSource)
	}
	if c.LookbackDays < 2 {
		return fmt.Errorf("lookback_days must be at least 2, got %d", c.LookbackDays)
	}
	if c.News.MaxArticles <= 0 {
		return fmt.Errorf("news.max_articles must be positive, got %d", c.News.MaxArticles)
	}
	switch c.LLM.Provider {
	case "OPENAI", "CLAUDE", "NOOP":
	default:
		return fmt.Errorf("llm.provider must be 'OPENAI', 'CLAUDE' or 'NOOP', got '%s'", c.LLM.Provider)
	}
	if c.LLM.Provider != "NOOP" && c.LLM.Model == "" {
		return fmt.Errorf("llm.model is required for provider %s", c.LLM.Provider)
	}
	return nil
}

// DefaultTrustedSources is the outlet allowlist applied to the news feed when
// the config does not override it.
var DefaultTrustedSources = []string{
	"Forbes", "Bloomberg", "Reuters", "CNBC",
	"Financial Times", "Business Insider", "Wall Street Journal",
	"The Economist", "MarketWatch",
}

func applyDefaults(c *Config) {
	if c.DataSource == "" {
		c.DataSource = "LIVE"
	}
	if c.LookbackDays == 0 {
		c.LookbackDays = 250
	}
	if c.Indicators.RSIPeriod == 0 {
		c.Indicators.RSIPeriod = 14
	}
	if c.Indicators.MACDFast == 0 {
		c.Indicators.MACDFast = 12
	}
	if c.Indicators.MACDSlow == 0 {
		c.Indicators.MACDSlow = 26
	}
	if len(c.Indicators.SMAWindows) == 0 {
		c.Indicators.SMAWindows = []int{50, 200}
	}
	if c.Indicators.VolWindow == 0 {
		c.Indicators.VolWindow = 20
	}
	if c.Indicators.VolumeWindow == 0 {
		c.Indicators.VolumeWindow = 30
	}
	if c.News.MaxArticles == 0 {
		c.News.MaxArticles = 5
	}
	if len(c.News.TrustedSources) == 0 {
		c.News.TrustedSources = DefaultTrustedSources
	}
	if c.News.TimeoutSeconds == 0 {
		c.News.TimeoutSeconds = 30
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = "NOOP"
	}
	if c.LLM.APIKeyEnv == "" {
		c.LLM.APIKeyEnv = "OPENAI_API_KEY"
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 1024
	}
	if c.LLM.MaxRetries == 0 {
		c.LLM.MaxRetries = 2
	}
	if c.LLM.RetryBackoffMS == 0 {
		c.LLM.RetryBackoffMS = 2000
	}
	if c.LLM.RequestsPerMin == 0 {
		c.LLM.RequestsPerMin = 20
	}
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	applyDefaults(&c)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &c, nil
}

// DefaultConfig returns a config with all defaults applied, used when no
// config file is present.
func DefaultConfig() *Config {
	var c Config
	applyDefaults(&c)
	return &c
}
