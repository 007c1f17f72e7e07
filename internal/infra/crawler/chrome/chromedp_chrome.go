package chrome

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/LouYuanbo1/statscraper/internal/config"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

type chromedpCrawler struct {
	allocCtx          context.Context
	allocCtxFuc       context.CancelFunc
	pageCtx           context.Context
	pageCtxFuc        context.CancelFunc
	waitTimeout       time.Duration
	navigationTimeout time.Duration
}

func InitChromedpCrawler(ctx context.Context, cfg *config.Config) (ChromeCrawler, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Chromedp.Headless),
		chromedp.Flag("incognito", cfg.Chromedp.Incognito),
		chromedp.Flag("disable-dev-shm-usage", cfg.Chromedp.DisableDevShmUsage),
		chromedp.Flag("no-sandbox", cfg.Chromedp.NoSandbox),
	)
	if cfg.Chromedp.DisableBlinkFeatures != "" {
		opts = append(opts, chromedp.Flag("disable-blink-features", cfg.Chromedp.DisableBlinkFeatures))
	}
	if cfg.Chromedp.UserDataDir != "" {
		opts = append(opts, chromedp.UserDataDir(cfg.Chromedp.UserDataDir))
	}
	if cfg.Chromedp.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(cfg.Chromedp.UserAgent))
	}
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	pageCtx, cancelPage := chromedp.NewContext(allocCtx, chromedp.WithLogf(log.Printf))

	cc := &chromedpCrawler{
		allocCtx:          allocCtx,
		allocCtxFuc:       cancelAlloc,
		pageCtx:           pageCtx,
		pageCtxFuc:        cancelPage,
		waitTimeout:       cfg.WaitTimeout(),
		navigationTimeout: cfg.NavigationTimeout(),
	}

	// 第一次 Run 会启动浏览器, 必须使用不带超时的 pageCtx, 否则超时后浏览器会被关闭
	actions := []chromedp.Action{network.Enable()}
	if len(cfg.Chromedp.ExtraHeaders) > 0 {
		headers := make(network.Headers, len(cfg.Chromedp.ExtraHeaders))
		for k, v := range cfg.Chromedp.ExtraHeaders {
			headers[k] = v
		}
		actions = append(actions, network.SetExtraHTTPHeaders(headers))
	}
	if err := chromedp.Run(pageCtx, actions...); err != nil {
		cc.Close()
		return nil, fmt.Errorf("启动浏览器失败: %w", err)
	}
	log.Printf("InitChromedpCrawler, headless: %v, waitTimeout: %s", cfg.Chromedp.Headless, cc.waitTimeout)
	return cc, nil
}

func (cc *chromedpCrawler) Close() {
	cc.pageCtxFuc()
	cc.allocCtxFuc()
}

// runContext derives a context from the tab that expires after timeout and
// is also cancelled together with ctx.
func (cc *chromedpCrawler) runContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	runCtx, cancel := context.WithTimeout(cc.pageCtx, timeout)
	stop := context.AfterFunc(ctx, cancel)
	return runCtx, func() {
		stop()
		cancel()
	}
}

func (cc *chromedpCrawler) navigate(ctx context.Context, url string) error {
	navCtx, cancel := cc.runContext(ctx, cc.navigationTimeout)
	defer cancel()
	if err := chromedp.Run(navCtx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("导航失败 %s: %w", url, err)
	}
	return nil
}

func (cc *chromedpCrawler) FetchText(ctx context.Context, url, readySelector, targetSelector string) (string, error) {
	if err := cc.navigate(ctx, url); err != nil {
		return "", err
	}
	waitCtx, cancel := cc.runContext(ctx, cc.waitTimeout)
	defer cancel()

	var text string
	err := chromedp.Run(waitCtx,
		chromedp.WaitReady(readySelector, chromedp.ByQuery),
		chromedp.Text(targetSelector, &text, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("等待元素 %s 失败: %w", readySelector, err)
	}
	return text, nil
}

func (cc *chromedpCrawler) FetchHTML(ctx context.Context, url, readySelector string) (string, error) {
	if err := cc.navigate(ctx, url); err != nil {
		return "", err
	}
	waitCtx, cancel := cc.runContext(ctx, cc.waitTimeout)
	defer cancel()

	var html string
	err := chromedp.Run(waitCtx,
		chromedp.WaitReady(readySelector, chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("等待元素 %s 失败: %w", readySelector, err)
	}
	return html, nil
}
