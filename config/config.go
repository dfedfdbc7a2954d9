package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Endpoints holds the base URL of every upstream site.
// They are configurable so tests can point parsers at local fixtures.
type Endpoints struct {
	NaverFinance string `mapstructure:"naver_finance"`
	FnGuide      string `mapstructure:"fnguide"`
	Investing    string `mapstructure:"investing"`
	CoinGecko    string `mapstructure:"coingecko"`
	Yahoo        string `mapstructure:"yahoo"`
	MarketWatch  string `mapstructure:"marketwatch"`
	SECEdgar     string `mapstructure:"sec_edgar"`
}

// Config holds all configuration for finpipe.
type Config struct {
	// Timeout bounds every outbound fetch.
	Timeout time.Duration `mapstructure:"timeout"`
	// Workers bounds the goroutines used by one batch call.
	Workers  int    `mapstructure:"workers"`
	LogLevel string `mapstructure:"log_level"`

	Endpoints Endpoints `mapstructure:"endpoints"`
}

// DefaultEndpoints returns the production base URLs.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		NaverFinance: "https://finance.naver.com",
		FnGuide:      "https://comp.fnguide.com/SVO2/ASP",
		Investing:    "https://kr.investing.com",
		CoinGecko:    "https://api.coingecko.com/api/v3",
		Yahoo:        "https://finance.yahoo.com",
		MarketWatch:  "https://www.marketwatch.com",
		SECEdgar:     "https://www.sec.gov",
	}
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Timeout:   15 * time.Second,
		Workers:   4,
		LogLevel:  "info",
		Endpoints: DefaultEndpoints(),
	}
}

// Load reads configuration from environment variables and an optional config file.
// Environment variables take precedence over config file values.
//
// Recognized environment variables:
//   - FINPIPE_TIMEOUT (e.g. "10s")
//   - FINPIPE_WORKERS
//   - FINPIPE_LOG_LEVEL
//   - FINPIPE_ENDPOINTS_<NAME> (e.g. FINPIPE_ENDPOINTS_NAVER_FINANCE)
//
// When path is empty, ./finpipe.yaml and $HOME/.finpipe/finpipe.yaml are
// tried and silently skipped if absent. An explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix("FINPIPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := Default()
	v.SetDefault("timeout", def.Timeout.String())
	v.SetDefault("workers", def.Workers)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("endpoints.naver_finance", def.Endpoints.NaverFinance)
	v.SetDefault("endpoints.fnguide", def.Endpoints.FnGuide)
	v.SetDefault("endpoints.investing", def.Endpoints.Investing)
	v.SetDefault("endpoints.coingecko", def.Endpoints.CoinGecko)
	v.SetDefault("endpoints.yahoo", def.Endpoints.Yahoo)
	v.SetDefault("endpoints.marketwatch", def.Endpoints.MarketWatch)
	v.SetDefault("endpoints.sec_edgar", def.Endpoints.SECEdgar)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("finpipe")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.finpipe")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the pipeline cannot run with.
func (c *Config) Validate() error {
	var problems []string
	if c.Timeout <= 0 {
		problems = append(problems, "timeout must be positive")
	}
	if c.Workers < 1 {
		problems = append(problems, "workers must be at least 1")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, ", "))
	}
	return nil
}
