// internal/browser/chromedp.go
package browser

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/chromedp/cdproto/storage"
	"github.com/chromedp/chromedp"

	"github.com/valpere/LexScrapexter/internal/scraper"
)

// clickTimeout bounds single remediation clicks; a missing element simply
// times out and is not treated as an error by callers.
const clickTimeout = 3 * time.Second

// Client owns one Chrome process and opens a tab per fetched page. Tabs are
// isolated, so concurrent page handlers each get their own.
type Client struct {
	allocCtx      context.Context
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
	config        *Config
	stats         Stats
	statsMu       sync.Mutex
}

// NewClient launches Chrome with the anti-detection profile.
func NewClient(ctx context.Context, config *Config) (*Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", config.Headless),
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.DisableGPU,
		chromedp.NoSandbox,
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(config.ViewportWidth, config.ViewportHeight),
	)
	if config.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(config.UserAgent))
	}
	if config.ProxyServer != "" {
		opts = append(opts, chromedp.ProxyServer(config.ProxyServer))
	}
	if config.DisableImages {
		opts = append(opts, chromedp.Flag("blink-settings", "imagesEnabled=false"))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Starting the browser eagerly surfaces launch failures here instead of
	// on the first page fetch.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("browser launch failed: %w", err)
	}

	return &Client{
		allocCtx:      allocCtx,
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
		config:        config,
	}, nil
}

// Fetch opens a tab, navigates, and returns the rendered page handle.
func (c *Client) Fetch(ctx context.Context, url string) (scraper.Page, error) {
	tabCtx, tabCancel := chromedp.NewContext(c.browserCtx)

	start := time.Now()
	navCtx, navCancel := context.WithTimeout(tabCtx, c.config.NavTimeout)
	defer navCancel()

	tasks := []chromedp.Action{
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
	}
	if c.config.SettleDelay > 0 {
		tasks = append(tasks, chromedp.Sleep(c.config.SettleDelay))
	}

	if err := chromedp.Run(navCtx, tasks...); err != nil {
		tabCancel()
		c.recordNav(time.Since(start), false)
		return nil, fmt.Errorf("navigation to %s failed: %w", url, err)
	}
	c.recordNav(time.Since(start), true)

	return &chromePage{
		ctx:    tabCtx,
		cancel: tabCancel,
		url:    url,
	}, nil
}

// Stats returns a copy of the navigation counters.
func (c *Client) Stats() Stats {
	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	return c.stats
}

// Close shuts the browser down.
func (c *Client) Close() error {
	c.browserCancel()
	c.allocCancel()
	return nil
}

func (c *Client) recordNav(d time.Duration, ok bool) {
	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	if !ok {
		c.stats.Errors++
		return
	}
	c.stats.PagesLoaded++
	if c.stats.PagesLoaded == 1 {
		c.stats.AvgLoadTime = d
	} else {
		c.stats.AvgLoadTime = (c.stats.AvgLoadTime + d) / 2
	}
}

// chromePage is one rendered tab.
type chromePage struct {
	ctx    context.Context
	cancel context.CancelFunc
	url    string
}

func (p *chromePage) URL() string { return p.url }

func (p *chromePage) Title(ctx context.Context) (string, error) {
	var title string
	if err := chromedp.Run(p.ctx, chromedp.Title(&title)); err != nil {
		return "", fmt.Errorf("title read failed: %w", err)
	}
	return title, nil
}

func (p *chromePage) HTML(ctx context.Context) (string, error) {
	var html string
	if err := chromedp.Run(p.ctx, chromedp.OuterHTML("html", &html)); err != nil {
		return "", fmt.Errorf("content read failed: %w", err)
	}
	return html, nil
}

func (p *chromePage) Click(ctx context.Context, selector string) error {
	clickCtx, cancel := context.WithTimeout(p.ctx, clickTimeout)
	defer cancel()

	err := chromedp.Run(clickCtx, chromedp.Click(selector, chromedp.ByQuery, chromedp.NodeVisible))
	if clickCtx.Err() != nil {
		// Element absent within the click window; callers treat this as
		// a no-op, not a failure.
		return nil
	}
	return err
}

func (p *chromePage) WaitQuiescence(ctx context.Context, timeout time.Duration) error {
	waitCtx, cancel := context.WithTimeout(p.ctx, timeout)
	defer cancel()

	var ready bool
	err := chromedp.Run(waitCtx, chromedp.Poll(
		`document.readyState === "complete"`,
		&ready,
		chromedp.WithPollingInterval(250*time.Millisecond),
	))
	if err != nil {
		return fmt.Errorf("quiescence wait: %w", err)
	}
	return nil
}

func (p *chromePage) Cookies(ctx context.Context) ([]*http.Cookie, error) {
	var cookies []*http.Cookie
	err := chromedp.Run(p.ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		raw, err := storage.GetCookies().Do(ctx)
		if err != nil {
			return err
		}
		for _, c := range raw {
			cookies = append(cookies, &http.Cookie{
				Name:   c.Name,
				Value:  c.Value,
				Domain: c.Domain,
				Path:   c.Path,
			})
		}
		return nil
	}))
	if err != nil {
		return nil, fmt.Errorf("cookie read failed: %w", err)
	}
	return cookies, nil
}

// Close releases the tab.
func (p *chromePage) Close() error {
	p.cancel()
	return nil
}
