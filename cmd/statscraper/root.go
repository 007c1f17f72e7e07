package main

import (
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/LouYuanbo1/statscraper/internal/config"
)

type options struct {
	configPath string
	driver     string
	headless   bool
	outDir     string
	prefix     string
	sinks      []string
	years      []string
	stats      []string
	all        bool
	verbose    bool
	quiet      bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "statscraper",
		Short:         "Scrape IPL statistics tables into CSV, SQLite or Elasticsearch.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(opts, cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScrape(cmd, opts)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "config file (json5), defaults to the embedded config")
	pf.StringVar(&opts.driver, "driver", "", "browser driver: chromedp or rod")
	pf.BoolVar(&opts.headless, "headless", true, "run the browser without a window")
	pf.StringVar(&opts.outDir, "out-dir", "", "directory for csv files")
	pf.StringVar(&opts.prefix, "prefix", "", "csv file name prefix")
	pf.StringSliceVar(&opts.sinks, "sink", nil, "output sink: csv, elasticsearch or sqlite (repeatable)")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "log with file and microsecond timestamps")
	pf.BoolVarP(&opts.quiet, "quiet", "q", false, "discard log output")

	f := root.Flags()
	f.StringSliceVar(&opts.years, "years", nil, `years to scrape, comma separated, or "all"`)
	f.StringSliceVar(&opts.stats, "stats", nil, `statistic ids to scrape, comma separated, or "all"`)
	f.BoolVar(&opts.all, "all", false, "scrape every year and statistic without asking")

	root.AddCommand(newCatalogCmd(opts), newParseCmd(opts))
	return root
}

func setupLogging(opts *options, w io.Writer) {
	log.SetOutput(w)
	switch {
	case opts.quiet:
		log.SetOutput(io.Discard)
	case opts.verbose:
		log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)
	}
}

// loadConfig reads the config and applies flags that were set explicitly.
func loadConfig(flags *pflag.FlagSet, opts *options) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.ReadConfigFile(opts.configPath)
	} else {
		cfg, err = config.ParseConfig(appConfig)
	}
	if err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if opts.driver != "" {
		cfg.Site.Driver = config.Driver(opts.driver)
	}
	if flags.Changed("headless") {
		cfg.Chromedp.Headless = opts.headless
		cfg.Rod.Headless = opts.headless
	}
	if opts.outDir != "" {
		cfg.Output.Dir = opts.outDir
	}
	if opts.prefix != "" {
		cfg.Output.FilePrefix = opts.prefix
	}
	if len(opts.sinks) > 0 {
		cfg.Output.Sinks = cfg.Output.Sinks[:0]
		for _, s := range opts.sinks {
			cfg.Output.Sinks = append(cfg.Output.Sinks, config.Sink(s))
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func printInterrupted(w io.Writer) {
	fmt.Fprintln(w, "You pressed Ctrl+C!")
	fmt.Fprintln(w, "Exiting the application")
}
