package registry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"actdex/internal/config"
)

// The three failure classes the ingestion driver distinguishes. The parser
// is never invoked when any of these is returned.
var (
	ErrStatus       = errors.New("registry: unexpected status")
	ErrBodyTooSmall = errors.New("registry: body below minimum size")
	ErrShellPage    = errors.New("registry: placeholder shell received")
)

type Client struct {
	cfg        config.Config
	httpClient *http.Client
	limiter    *RateLimiter
}

func NewClient(cfg config.Config) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: time.Duration(cfg.RegistryTimeoutMs) * time.Millisecond},
		limiter:    NewRateLimiter(cfg.RegistryRateLimitRPS),
	}
}

// FetchDocument retrieves the markup for one document id. Transient
// statuses are retried with exponential backoff; a terminal non-2xx wraps
// ErrStatus. A successful response is still rejected when the body is
// smaller than the configured minimum (ErrBodyTooSmall) or is the register's
// loading shell rather than a real document (ErrShellPage).
func (c *Client) FetchDocument(ctx context.Context, docID string) (string, error) {
	u, err := url.Parse(strings.TrimRight(c.cfg.RegistryBaseURL, "/") + "/" + url.PathEscape(docID))
	if err != nil {
		return "", err
	}

	var lastErr error
	for attempt := 1; attempt <= 5; attempt++ {
		c.limiter.WaitTurn()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return "", err
		}
		req.Header.Set("Accept", "text/html")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			if isRetryableStatus(resp.StatusCode) && attempt < 5 {
				backoff := time.Duration(250*(1<<(attempt-1))+rand.Intn(100)) * time.Millisecond
				time.Sleep(backoff)
				lastErr = fmt.Errorf("status %d: %w", resp.StatusCode, ErrStatus)
				continue
			}
			return "", fmt.Errorf("doc %s: status %d: %w", docID, resp.StatusCode, ErrStatus)
		}

		if len(body) < c.cfg.RegistryMinBodyBytes {
			return "", fmt.Errorf("doc %s: %d bytes: %w", docID, len(body), ErrBodyTooSmall)
		}
		markup := string(body)
		if isShellPage(markup) {
			return "", fmt.Errorf("doc %s: %w", docID, ErrShellPage)
		}
		return markup, nil
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("doc %s: request failed", docID)
	}
	return "", lastErr
}

func isRetryableStatus(status int) bool {
	switch status {
	case 429, 500, 502, 503, 504:
		return true
	default:
		return false
	}
}

// The register answers with a JS loading shell while a compilation is being
// regenerated: an app-shell container and none of the heading classes a
// real document always carries.
func isShellPage(markup string) bool {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return false
	}
	if doc.Find("#app-shell").Length() == 0 {
		return false
	}
	return doc.Find(`[class*="ActHead"], [class*="LegHead"]`).Length() == 0
}
