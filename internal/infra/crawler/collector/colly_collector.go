package collector

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/LouYuanbo1/statscraper/internal/config"
	"github.com/gocolly/colly/v2"
)

type collyCrawler struct {
	colly *colly.Collector
}

func InitCollyCrawler(config *config.Config) CollyCrawler {
	var opts []colly.CollectorOption
	opts = append(opts,
		colly.AllowURLRevisit(),
	)
	if config.Colly.UserAgent != "" {
		opts = append(opts, colly.UserAgent(config.Colly.UserAgent))
	}
	c := colly.NewCollector(opts...)
	c.IgnoreRobotsTxt = config.Colly.IgnoreRobotsTxt
	c.SetRequestTimeout(time.Duration(config.Colly.RequestTimeoutSeconds) * time.Second)
	log.Printf("InitCollyCrawler, ignoreRobotsTxt: %v, requestTimeout: %ds", config.Colly.IgnoreRobotsTxt, config.Colly.RequestTimeoutSeconds)
	return &collyCrawler{
		colly: c,
	}
}

// FetchHTML returns the response body of url. readySelector only checks that
// the static document already contains the element.
func (c *collyCrawler) FetchHTML(ctx context.Context, url, readySelector string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	// Clone 不带回调, 每次请求注册自己的回调
	cl := c.colly.Clone()

	var (
		body   []byte
		found  bool
		reqErr error
	)
	cl.OnResponse(func(r *colly.Response) {
		body = r.Body
	})
	if readySelector != "" {
		cl.OnHTML(readySelector, func(_ *colly.HTMLElement) {
			found = true
		})
	}
	cl.OnError(func(r *colly.Response, err error) {
		reqErr = fmt.Errorf("status %d: %w", r.StatusCode, err)
	})

	if err := cl.Visit(url); err != nil {
		return "", fmt.Errorf("访问URL失败: %w", err)
	}
	cl.Wait()
	if reqErr != nil {
		return "", fmt.Errorf("访问URL失败: %w", reqErr)
	}
	if readySelector != "" && !found {
		return "", fmt.Errorf("element %s not found in %s", readySelector, url)
	}
	return string(body), nil
}
