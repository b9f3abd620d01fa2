package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gocolly/colly/v2"
)

// StatusError is returned when the server answers outside the 2xx range
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d %s from %s", e.StatusCode, http.StatusText(e.StatusCode), e.URL)
}

// CollyFetcher implements the Fetcher interface using colly
type CollyFetcher struct {
	userAgent string
	timeout   time.Duration
}

// NewCollyFetcher creates a new CollyFetcher instance
func NewCollyFetcher(userAgent string, timeout time.Duration) *CollyFetcher {
	return &CollyFetcher{
		userAgent: userAgent,
		timeout:   timeout,
	}
}

// Fetch implements the Fetcher interface. It issues exactly one GET.
func (cf *CollyFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	c := colly.NewCollector(
		colly.UserAgent(cf.userAgent),
		colly.StdlibContext(ctx),
		// 0 disables colly's default 10 MiB cap, which truncates silently.
		colly.MaxBodySize(0),
	)
	c.SetRequestTimeout(cf.timeout)
	// Hand every status to OnResponse so non-2xx can be reported with its code.
	c.ParseHTTPErrorResponse = true

	var (
		body   []byte
		status int
	)
	c.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
		body = r.Body
		slog.Debug("fetched page", "url", r.Request.URL.String(), "status", r.StatusCode, "bytes", len(r.Body))
	})

	if err := c.Visit(url); err != nil {
		return nil, fmt.Errorf("failed to visit %s: %w", url, err)
	}

	if status == 0 {
		return nil, fmt.Errorf("failed to visit %s: no response received", url)
	}
	if status < 200 || status > 299 {
		return nil, &StatusError{URL: url, StatusCode: status}
	}

	return body, nil
}
