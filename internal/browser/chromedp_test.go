// internal/browser/chromedp_test.go
package browser

import (
	"testing"
	"time"
)

func TestClient_StatsTracksNavigations(t *testing.T) {
	c := &Client{}

	c.recordNav(100*time.Millisecond, true)
	c.recordNav(300*time.Millisecond, true)
	c.recordNav(50*time.Millisecond, false)

	stats := c.Stats()
	if stats.PagesLoaded != 2 {
		t.Errorf("expected 2 pages loaded, got %d", stats.PagesLoaded)
	}
	if stats.Errors != 1 {
		t.Errorf("expected 1 navigation error, got %d", stats.Errors)
	}
	if stats.AvgLoadTime != 200*time.Millisecond {
		t.Errorf("expected 200ms average load time, got %v", stats.AvgLoadTime)
	}
}

func TestClient_StatsEmpty(t *testing.T) {
	c := &Client{}
	stats := c.Stats()
	if stats.PagesLoaded != 0 || stats.Errors != 0 || stats.AvgLoadTime != 0 {
		t.Errorf("expected zeroed stats, got %+v", stats)
	}
}
