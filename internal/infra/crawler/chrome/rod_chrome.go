package chrome

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/LouYuanbo1/statscraper/internal/config"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/stealth"
)

type rodCrawler struct {
	browser           *rod.Browser
	page              *rod.Page
	waitTimeout       time.Duration
	navigationTimeout time.Duration
}

func InitRodCrawler(cfg *config.Config) (ChromeCrawler, error) {
	l := launcher.New().
		Headless(cfg.Rod.Headless).
		NoSandbox(cfg.Rod.NoSandbox).
		Leakless(cfg.Rod.Leakless)
	if cfg.Rod.Bin != "" {
		l = l.Bin(cfg.Rod.Bin)
	}
	if cfg.Rod.UserDataDir != "" {
		l = l.UserDataDir(cfg.Rod.UserDataDir)
	}
	if cfg.Rod.DisableBlinkFeatures != "" {
		l = l.Set("disable-blink-features", cfg.Rod.DisableBlinkFeatures)
	}
	if cfg.Rod.Incognito {
		l = l.Set("incognito")
	}
	if cfg.Rod.DisableDevShmUsage {
		l = l.Set("disable-dev-shm-usage")
	}
	if cfg.Rod.UserAgent != "" {
		l = l.Set("user-agent", cfg.Rod.UserAgent)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("启动浏览器失败: %w", err)
	}
	log.Printf("浏览器可以连接的URL: %s", controlURL)

	browser := rod.New().ControlURL(controlURL).Trace(cfg.Rod.Trace)
	if err := connectOrKill(browser, l.Kill); err != nil {
		return nil, err
	}
	page, err := stealth.Page(browser)
	if err != nil {
		_ = browser.Close()
		return nil, fmt.Errorf("获取页面失败: %w", err)
	}
	return &rodCrawler{
		browser:           browser,
		page:              page,
		waitTimeout:       cfg.WaitTimeout(),
		navigationTimeout: cfg.NavigationTimeout(),
	}, nil
}

func (rc *rodCrawler) Close() {
	if err := rc.page.Close(); err != nil {
		log.Printf("关闭页面失败: %v", err)
	}
	if err := rc.browser.Close(); err != nil {
		log.Printf("关闭浏览器失败: %v", err)
	}
}

func (rc *rodCrawler) navigate(ctx context.Context, url string) error {
	nav := rc.page.Context(ctx).Timeout(rc.navigationTimeout)
	defer nav.CancelTimeout()
	if err := nav.Navigate(url); err != nil {
		return fmt.Errorf("导航失败 %s: %w", url, err)
	}
	if err := nav.WaitLoad(); err != nil {
		return fmt.Errorf("等待加载失败 %s: %w", url, err)
	}
	return nil
}

func (rc *rodCrawler) FetchText(ctx context.Context, url, readySelector, targetSelector string) (string, error) {
	if err := rc.navigate(ctx, url); err != nil {
		return "", err
	}
	wait := rc.page.Context(ctx).Timeout(rc.waitTimeout)
	defer wait.CancelTimeout()

	if _, err := wait.Element(readySelector); err != nil {
		return "", fmt.Errorf("等待元素 %s 失败: %w", readySelector, err)
	}
	el, err := wait.Element(targetSelector)
	if err != nil {
		return "", fmt.Errorf("查找元素 %s 失败: %w", targetSelector, err)
	}
	text, err := el.Text()
	if err != nil {
		return "", fmt.Errorf("读取文本失败: %w", err)
	}
	return text, nil
}

func (rc *rodCrawler) FetchHTML(ctx context.Context, url, readySelector string) (string, error) {
	if err := rc.navigate(ctx, url); err != nil {
		return "", err
	}
	wait := rc.page.Context(ctx).Timeout(rc.waitTimeout)
	defer wait.CancelTimeout()

	if _, err := wait.Element(readySelector); err != nil {
		return "", fmt.Errorf("等待元素 %s 失败: %w", readySelector, err)
	}
	html, err := wait.HTML()
	if err != nil {
		return "", fmt.Errorf("读取页面失败: %w", err)
	}
	return html, nil
}

type connector interface {
	Connect() error
}

// connectOrKill 连接失败时结束已启动的浏览器进程
func connectOrKill(browser connector, kill func()) error {
	if err := browser.Connect(); err != nil {
		kill()
		return fmt.Errorf("连接浏览器失败: %w", err)
	}
	return nil
}
