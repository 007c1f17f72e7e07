package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/LouYuanbo1/statscraper/internal/config"
	"github.com/LouYuanbo1/statscraper/internal/infra/crawler/chrome"
	"github.com/LouYuanbo1/statscraper/internal/service/catalog"
	"github.com/LouYuanbo1/statscraper/internal/service/scrape"
)

func newCatalogCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List the years and statistics the site offers.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			cfg, err := loadConfig(cmd.Flags(), opts)
			if err != nil {
				return err
			}

			var browser chrome.ChromeCrawler
			if cfg.CatalogDriver() != config.DriverColly {
				browser, err = newCrawler(ctx, cfg)
				if err != nil {
					return fmt.Errorf("初始化浏览器失败: %w", err)
				}
				defer browser.Close()
			}

			cat, err := discover(ctx, cfg, browser)
			if ctx.Err() != nil {
				printInterrupted(out)
				return nil
			}
			if errors.Is(err, scrape.ErrNoCatalog) {
				fmt.Fprintln(out, "No data available")
				return nil
			}
			renderCatalog(out, cat)
			return nil
		},
	}
}

func renderCatalog(w io.Writer, cat *catalog.Catalog) {
	years := newTable(w)
	years.AppendHeader(table.Row{"Year"})
	for _, y := range cat.Years {
		years.AppendRow(table.Row{y})
	}
	years.Render()

	stats := newTable(w)
	stats.AppendHeader(table.Row{"ID", "Title"})
	for _, s := range cat.Statistics {
		stats.AppendRow(table.Row{s.ID, s.Title})
	}
	stats.Render()
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}
