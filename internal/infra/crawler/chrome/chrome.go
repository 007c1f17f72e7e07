package chrome

import (
	"context"
	"fmt"

	"github.com/LouYuanbo1/statscraper/internal/config"
)

// ChromeCrawler 持有整个运行期间唯一的浏览器会话, 不能并发使用
type ChromeCrawler interface {
	// FetchText navigates to url, waits for readySelector to be present and
	// returns the rendered text of the first element matching targetSelector.
	FetchText(ctx context.Context, url, readySelector, targetSelector string) (string, error)
	// FetchHTML navigates to url, waits for readySelector and returns the page HTML.
	FetchHTML(ctx context.Context, url, readySelector string) (string, error)
	Close()
}

// InitCrawler starts the browser selected by cfg.Site.Driver.
func InitCrawler(ctx context.Context, cfg *config.Config) (ChromeCrawler, error) {
	switch cfg.Site.Driver {
	case config.DriverChromedp:
		return InitChromedpCrawler(ctx, cfg)
	case config.DriverRod:
		return InitRodCrawler(cfg)
	default:
		return nil, fmt.Errorf("unsupported browser driver: %s", cfg.Site.Driver)
	}
}
