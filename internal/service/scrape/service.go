package scrape

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/url"
	"strings"

	"github.com/LouYuanbo1/statscraper/internal/domain/model"
	"github.com/LouYuanbo1/statscraper/internal/domain/parser"
	"github.com/LouYuanbo1/statscraper/internal/infra/persistence"
)

// ErrNoCatalog means the landing page offered no years or no statistics.
var ErrNoCatalog = errors.New("no data available")

// PageFetcher 返回页面中目标区域渲染后的文本
type PageFetcher interface {
	FetchText(ctx context.Context, url, readySelector, targetSelector string) (string, error)
}

type Service struct {
	fetcher       PageFetcher
	writer        persistence.DatasetWriter
	baseURL       string
	tableSelector string
	out           io.Writer
}

// InitScrapeService wires the loop. tableSelector is both the ready condition
// and the region whose text is parsed. User facing messages go to out.
func InitScrapeService(
	fetcher PageFetcher,
	writer persistence.DatasetWriter,
	baseURL string,
	tableSelector string,
	out io.Writer,
) *Service {
	return &Service{
		fetcher:       fetcher,
		writer:        writer,
		baseURL:       baseURL,
		tableSelector: tableSelector,
		out:           out,
	}
}

// PageURL is base/{year} for team-ranking and base/{year}/{statistic} otherwise.
func PageURL(base string, year model.YearToken, statisticID string) (string, error) {
	if statisticID == model.TeamRanking {
		return url.JoinPath(base, string(year))
	}
	return url.JoinPath(base, string(year), statisticID)
}

// Run attempts every (year, statistic) pair, years outermost. A failed pair
// never stops the loop, only ctx does; pairs not attempted are reported as
// skipped.
func (s *Service) Run(ctx context.Context, years []model.YearToken, stats []model.StatCategory) *Summary {
	summary := &Summary{Outcomes: make([]Outcome, 0, len(years)*len(stats))}
	for _, year := range years {
		for _, stat := range stats {
			if ctx.Err() != nil {
				summary.add(Outcome{Year: year, Statistic: stat.ID, Status: StatusSkipped})
				continue
			}
			summary.add(s.scrapeOne(ctx, year, stat.ID))
		}
	}
	return summary
}

func (s *Service) scrapeOne(ctx context.Context, year model.YearToken, statID string) Outcome {
	outcome := Outcome{Year: year, Statistic: statID}

	pageURL, err := PageURL(s.baseURL, year, statID)
	if err != nil {
		log.Printf("构造URL失败 %s-%s: %v", statID, year, err)
		outcome.Status = StatusUnavailable
		outcome.Err = err
		return outcome
	}
	outcome.URL = pageURL

	log.Printf("开始抓取: %s", pageURL)
	text, err := s.fetcher.FetchText(ctx, pageURL, s.tableSelector, s.tableSelector)
	if ctx.Err() != nil {
		outcome.Status = StatusSkipped
		return outcome
	}
	if err != nil {
		log.Printf("抓取失败 %s: %v", pageURL, err)
	}
	if err != nil || strings.TrimSpace(text) == "" {
		fmt.Fprintf(s.out, "Data not available for %s-%s\n", statID, year)
		outcome.Status = StatusUnavailable
		outcome.Err = err
		return outcome
	}

	saved := s.Save(ctx, year, statID, text)
	saved.URL = pageURL
	return saved
}

// Save parses text as the table of (statID, year) and writes the dataset.
func (s *Service) Save(ctx context.Context, year model.YearToken, statID string, text string) Outcome {
	outcome := Outcome{Year: year, Statistic: statID}

	name, err := model.DatasetName(statID, year)
	if err != nil {
		log.Printf("数据集名称无效: %v", err)
		outcome.Status = StatusWriteFailed
		outcome.Err = err
		return outcome
	}
	outcome.Dataset = name

	result := parser.ParseDetailed(text)
	if result.Truncated {
		log.Printf("%s: 表格末尾记录不完整, 已丢弃", name)
	}
	if result.SkippedLines > 0 {
		log.Printf("%s: 跳过 %d 行无法识别的文本", name, result.SkippedLines)
	}

	dataset := &model.Dataset{
		Name:      name,
		Statistic: statID,
		Year:      year,
		Header:    result.Header,
		Rows:      result.Rows,
	}
	if n := dataset.Normalize(); n > 0 {
		log.Printf("%s: %d 行列数与表头 (%d 列) 不一致, 已补齐或截断", name, n, len(dataset.Header))
	}
	outcome.Rows = len(dataset.Rows)

	if err := s.writer.Write(ctx, dataset); err != nil {
		log.Printf("写入 %s 失败: %v", name, err)
		outcome.Status = StatusWriteFailed
		outcome.Err = err
		return outcome
	}
	outcome.Status = StatusWritten
	return outcome
}
