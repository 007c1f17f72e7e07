package config

type Driver string

const (
	DriverChromedp Driver = "chromedp"
	DriverRod      Driver = "rod"
	// DriverColly 只能用于首页目录发现, 数据表需要浏览器渲染
	DriverColly Driver = "colly"
)

type Sink string

const (
	SinkCSV           Sink = "csv"
	SinkElasticsearch Sink = "elasticsearch"
	SinkSQLite        Sink = "sqlite"
)

type Config struct {
	Site struct {
		BaseURL string `json:"base_url"`
		// YearSelector matches the season filter containers on the landing page,
		// the last class token of each one is the year id.
		YearSelector string `json:"year_selector"`
		// StatSelector matches the statistic links on the landing page and the
		// table region on every per-(year, statistic) page.
		StatSelector             string `json:"stat_selector"`
		WaitTimeoutSeconds       int    `json:"wait_timeout_seconds"`
		NavigationTimeoutSeconds int    `json:"navigation_timeout_seconds"`
		// CatalogDriver fetches the landing page, empty means same as Driver.
		CatalogDriver Driver `json:"catalog_driver"`
		Driver        Driver `json:"driver"`
	} `json:"site"`

	Rod struct {
		UserDataDir          string `json:"user_data_dir"`
		Headless             bool   `json:"headless"`
		DisableBlinkFeatures string `json:"disable_blink_features"`
		Incognito            bool   `json:"incognito"`
		DisableDevShmUsage   bool   `json:"disable_dev_shm_usage"`
		NoSandbox            bool   `json:"no_sandbox"`
		UserAgent            string `json:"user_agent"`
		Leakless             bool   `json:"leakless"`
		Bin                  string `json:"bin"`
		Trace                bool   `json:"trace"`
	} `json:"rod"`

	Chromedp struct {
		UserDataDir          string            `json:"user_data_dir"`
		Headless             bool              `json:"headless"`
		DisableBlinkFeatures string            `json:"disable_blink_features"`
		Incognito            bool              `json:"incognito"`
		DisableDevShmUsage   bool              `json:"disable_dev_shm_usage"`
		NoSandbox            bool              `json:"no_sandbox"`
		UserAgent            string            `json:"user_agent"`
		ExtraHeaders         map[string]string `json:"extra_headers"`
	} `json:"chromedp"`

	Colly struct {
		UserAgent             string `json:"user_agent"`
		IgnoreRobotsTxt       bool   `json:"ignore_robots_txt"`
		RequestTimeoutSeconds int    `json:"request_timeout_seconds"`
	} `json:"colly"`

	Output struct {
		Dir        string `json:"dir"`
		FilePrefix string `json:"file_prefix"`
		Sinks      []Sink `json:"sinks"`
	} `json:"output"`

	Elasticsearch struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Address  string `json:"address"`
		Index    string `json:"index"`
	} `json:"elasticsearch"`

	SQLite struct {
		Path string `json:"path"`
	} `json:"sqlite"`
}

// HasSink reports whether sink is one of the configured output sinks.
func (c *Config) HasSink(sink Sink) bool {
	for _, s := range c.Output.Sinks {
		if s == sink {
			return true
		}
	}
	return false
}
