package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"

	"github.com/LouYuanbo1/statscraper/internal/config"
	"github.com/LouYuanbo1/statscraper/internal/infra/crawler/chrome"
	"github.com/LouYuanbo1/statscraper/internal/infra/crawler/collector"
	"github.com/LouYuanbo1/statscraper/internal/infra/prompt"
	"github.com/LouYuanbo1/statscraper/internal/service/catalog"
	"github.com/LouYuanbo1/statscraper/internal/service/scrape"
)

// newCrawler starts the browser session of a run.
var newCrawler = chrome.InitCrawler

func runScrape(cmd *cobra.Command, opts *options) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	cfg, err := loadConfig(cmd.Flags(), opts)
	if err != nil {
		return err
	}
	writer, closeSinks, err := openSinks(ctx, cfg, out)
	if err != nil {
		return err
	}
	defer closeSinks()

	// 整个运行期间只使用一个浏览器会话, 任何退出路径都会关闭
	browser, err := newCrawler(ctx, cfg)
	if err != nil {
		if ctx.Err() != nil {
			printInterrupted(out)
			return nil
		}
		return fmt.Errorf("初始化浏览器失败: %w", err)
	}
	defer browser.Close()

	cat, err := discover(ctx, cfg, browser)
	if ctx.Err() != nil {
		printInterrupted(out)
		return nil
	}
	if errors.Is(err, scrape.ErrNoCatalog) {
		fmt.Fprintln(out, "No data available")
		return nil
	}

	var selector prompt.Selector = prompt.NewSurveySelector()
	if opts.all || len(opts.years) > 0 || len(opts.stats) > 0 {
		selector = &prompt.PresetSelector{
			Years:    opts.years,
			Stats:    opts.stats,
			All:      opts.all,
			Fallback: selector,
		}
	}
	years, err := selector.SelectYears(cat.Years)
	if err != nil {
		return selectionError(out, err)
	}
	stats, err := selector.SelectStatistics(cat.Statistics)
	if err != nil {
		return selectionError(out, err)
	}
	if len(years) == 0 || len(stats) == 0 {
		log.Printf("没有选择任何年份或统计类别")
		return nil
	}

	service := scrape.InitScrapeService(browser, writer, cfg.Site.BaseURL, cfg.Site.StatSelector, out)
	summary := service.Run(ctx, years, stats)
	if ctx.Err() != nil {
		printInterrupted(out)
		return nil
	}
	summary.Render(out)
	return nil
}

// discover reads the catalog with colly when configured, otherwise with the
// already running browser.
func discover(ctx context.Context, cfg *config.Config, browser chrome.ChromeCrawler) (*catalog.Catalog, error) {
	var fetcher catalog.HTMLFetcher = browser
	if cfg.CatalogDriver() == config.DriverColly {
		fetcher = collector.InitCollyCrawler(cfg)
	}
	service := catalog.InitCatalogService(fetcher, cfg.Site.BaseURL, cfg.Site.YearSelector, cfg.Site.StatSelector)
	cat := service.Discover(ctx)
	if cat.Empty() {
		return cat, scrape.ErrNoCatalog
	}
	return cat, nil
}

func selectionError(w io.Writer, err error) error {
	if errors.Is(err, prompt.ErrInterrupted) {
		printInterrupted(w)
		return nil
	}
	return err
}
