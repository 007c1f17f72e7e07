package catalog

import (
	"context"
	"log"
	"net/url"
	"sort"
	"strings"

	"github.com/LouYuanbo1/statscraper/internal/domain/model"
	"github.com/PuerkitoBio/goquery"
)

// HTMLFetcher 返回渲染后的页面 HTML, 浏览器和 colly 都实现了它
type HTMLFetcher interface {
	FetchHTML(ctx context.Context, url, readySelector string) (string, error)
}

type Service struct {
	fetcher      HTMLFetcher
	baseURL      string
	yearSelector string
	statSelector string
}

func InitCatalogService(fetcher HTMLFetcher, baseURL, yearSelector, statSelector string) *Service {
	return &Service{
		fetcher:      fetcher,
		baseURL:      baseURL,
		yearSelector: yearSelector,
		statSelector: statSelector,
	}
}

// Catalog is everything the landing page offers for one run.
type Catalog struct {
	Years      []model.YearToken
	Statistics []model.StatCategory
}

func (c *Catalog) Empty() bool {
	return len(c.Years) == 0 || len(c.Statistics) == 0
}

// ListYears returns the season filters found on the landing page, newest
// first, followed by model.AllTime. Any failure yields nil.
func (s *Service) ListYears(ctx context.Context) []model.YearToken {
	doc, err := s.landingPage(ctx, s.yearSelector)
	if err != nil {
		log.Printf("获取年份失败: %v", err)
		return nil
	}
	return parseYears(doc, s.yearSelector)
}

// ListStatCategories returns the statistic links of the landing page in page
// order. Any failure yields nil.
func (s *Service) ListStatCategories(ctx context.Context) []model.StatCategory {
	doc, err := s.landingPage(ctx, s.statSelector)
	if err != nil {
		log.Printf("获取统计类别失败: %v", err)
		return nil
	}
	return parseStatCategories(doc, s.statSelector)
}

// Discover loads the landing page once and extracts both lists from it.
func (s *Service) Discover(ctx context.Context) *Catalog {
	doc, err := s.landingPage(ctx, s.statSelector)
	if err != nil {
		log.Printf("获取目录失败: %v", err)
		return &Catalog{}
	}
	catalog := &Catalog{
		Years:      parseYears(doc, s.yearSelector),
		Statistics: parseStatCategories(doc, s.statSelector),
	}
	log.Printf("发现 %d 个年份, %d 个统计类别", len(catalog.Years), len(catalog.Statistics))
	return catalog
}

func (s *Service) landingPage(ctx context.Context, readySelector string) (*goquery.Document, error) {
	html, err := s.fetcher.FetchHTML(ctx, s.baseURL, readySelector)
	if err != nil {
		return nil, err
	}
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

func parseYears(doc *goquery.Document, selector string) []model.YearToken {
	seen := make(map[string]struct{})
	doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		classes := strings.Fields(sel.AttrOr("class", ""))
		if len(classes) == 0 {
			return
		}
		seen[classes[len(classes)-1]] = struct{}{}
	})
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(ids)))

	years := make([]model.YearToken, 0, len(ids)+1)
	for _, id := range ids {
		if id == string(model.AllTime) {
			continue
		}
		years = append(years, model.YearToken(id))
	}
	return append(years, model.AllTime)
}

func parseStatCategories(doc *goquery.Document, selector string) []model.StatCategory {
	var stats []model.StatCategory
	doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		id := lastPathSegment(sel.AttrOr("href", ""))
		if id == "" {
			return
		}
		stats = append(stats, model.StatCategory{
			ID:    id,
			Title: strings.Join(strings.Fields(sel.Text()), " "),
		})
	})
	return stats
}

func lastPathSegment(href string) string {
	if u, err := url.Parse(href); err == nil {
		href = u.Path
	}
	href = strings.TrimRight(href, "/")
	if i := strings.LastIndex(href, "/"); i >= 0 {
		href = href[i+1:]
	}
	return href
}
