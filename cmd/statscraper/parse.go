package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/dimchansky/utfbom"
	"github.com/spf13/cobra"

	"github.com/LouYuanbo1/statscraper/internal/domain/model"
	"github.com/LouYuanbo1/statscraper/internal/service/scrape"
)

func newParseCmd(opts *options) *cobra.Command {
	var (
		statID string
		year   string
	)
	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a saved table text dump and write it to the configured sinks.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			cfg, err := loadConfig(cmd.Flags(), opts)
			if err != nil {
				return err
			}
			text, err := readText(args[0])
			if err != nil {
				return err
			}

			writer, closeSinks, err := openSinks(ctx, cfg, out)
			if err != nil {
				return err
			}
			defer closeSinks()

			service := scrape.InitScrapeService(nil, writer, cfg.Site.BaseURL, cfg.Site.StatSelector, out)
			outcome := service.Save(ctx, model.YearToken(year), statID, text)
			if outcome.Err != nil {
				return outcome.Err
			}
			fmt.Fprintf(out, "%s: %d rows\n", outcome.Dataset, outcome.Rows)
			return nil
		},
	}
	cmd.Flags().StringVar(&statID, "stat", "", "statistic id of the table, e.g. most-runs")
	cmd.Flags().StringVar(&year, "year", "", `year of the table, or "all-time"`)
	cmd.MarkFlagRequired("stat")
	cmd.MarkFlagRequired("year")
	return cmd
}

func readText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	text, err := io.ReadAll(utfbom.SkipOnly(bytes.NewReader(data)))
	if err != nil {
		return "", err
	}
	return string(text), nil
}
