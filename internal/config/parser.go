package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dimchansky/utfbom"
	"github.com/titanous/json5"
)

const (
	DefaultBaseURL      = "https://www.iplt20.com/stats/"
	DefaultYearSelector = ".np-battingtable_contaner"
	DefaultStatSelector = ".st-table.statsTable"
	DefaultWaitTimeout  = 10
	DefaultFilePrefix   = "Result"
	DefaultIndex        = "statscraper-rows"
)

// 页面加载本身的上限, 不计入等待元素出现的时间
const DefaultNavigationTimeout = 60

// ParseConfig 解析配置, 接受 json5 (注释, 尾逗号), 并补全默认值
func ParseConfig(byteConfig []byte) (*Config, error) {
	raw, err := io.ReadAll(utfbom.SkipOnly(bytes.NewReader(byteConfig)))
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := json5.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.applyDefaults()

	for _, dir := range []*string{&cfg.Chromedp.UserDataDir, &cfg.Rod.UserDataDir, &cfg.Output.Dir} {
		if *dir == "" {
			continue
		}
		absPath, err := filepath.Abs(*dir)
		if err != nil {
			return nil, err
		}
		*dir = absPath
	}
	return &cfg, nil
}

// ReadConfigFile reads and parses the config file at path.
func ReadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return ParseConfig(data)
}

func (cfg *Config) applyDefaults() {
	if cfg.Site.BaseURL == "" {
		cfg.Site.BaseURL = DefaultBaseURL
	}
	if cfg.Site.YearSelector == "" {
		cfg.Site.YearSelector = DefaultYearSelector
	}
	if cfg.Site.StatSelector == "" {
		cfg.Site.StatSelector = DefaultStatSelector
	}
	if cfg.Site.WaitTimeoutSeconds == 0 {
		cfg.Site.WaitTimeoutSeconds = DefaultWaitTimeout
	}
	if cfg.Site.NavigationTimeoutSeconds == 0 {
		cfg.Site.NavigationTimeoutSeconds = DefaultNavigationTimeout
	}
	if cfg.Site.Driver == "" {
		cfg.Site.Driver = DriverChromedp
	}
	if cfg.Colly.RequestTimeoutSeconds == 0 {
		cfg.Colly.RequestTimeoutSeconds = 30
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "."
	}
	if cfg.Output.FilePrefix == "" {
		cfg.Output.FilePrefix = DefaultFilePrefix
	}
	if len(cfg.Output.Sinks) == 0 {
		cfg.Output.Sinks = []Sink{SinkCSV}
	}
	if cfg.Elasticsearch.Index == "" {
		cfg.Elasticsearch.Index = DefaultIndex
	}
}

// WaitTimeout is how long a page may take to render its ready element.
func (cfg *Config) WaitTimeout() time.Duration {
	return time.Duration(cfg.Site.WaitTimeoutSeconds) * time.Second
}

func (cfg *Config) NavigationTimeout() time.Duration {
	return time.Duration(cfg.Site.NavigationTimeoutSeconds) * time.Second
}

// CatalogDriver returns the driver used for the landing page.
func (cfg *Config) CatalogDriver() Driver {
	if cfg.Site.CatalogDriver == "" {
		return cfg.Site.Driver
	}
	return cfg.Site.CatalogDriver
}

func (cfg *Config) Validate() error {
	switch cfg.Site.Driver {
	case DriverChromedp, DriverRod:
	default:
		return fmt.Errorf("unknown driver %q (must be chromedp or rod)", cfg.Site.Driver)
	}
	switch cfg.CatalogDriver() {
	case DriverChromedp, DriverRod, DriverColly:
	default:
		return fmt.Errorf("unknown catalog driver %q (must be chromedp, rod or colly)", cfg.Site.CatalogDriver)
	}
	if cfg.Site.WaitTimeoutSeconds < 0 || cfg.Site.NavigationTimeoutSeconds < 0 {
		return fmt.Errorf("timeouts must be positive, got wait=%d navigation=%d",
			cfg.Site.WaitTimeoutSeconds, cfg.Site.NavigationTimeoutSeconds)
	}
	for _, sink := range cfg.Output.Sinks {
		switch sink {
		case SinkCSV:
		case SinkElasticsearch:
			if cfg.Elasticsearch.Address == "" {
				return fmt.Errorf("sink %s requires elasticsearch.address", sink)
			}
		case SinkSQLite:
			if cfg.SQLite.Path == "" {
				return fmt.Errorf("sink %s requires sqlite.path", sink)
			}
		default:
			return fmt.Errorf("unknown sink %q", sink)
		}
	}
	return nil
}
