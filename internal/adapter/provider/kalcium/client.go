// Package kalcium is the REST client of the Kalcium termbase service.
package kalcium

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"github.com/heartmarshall/termtag/internal/config"
	"github.com/heartmarshall/termtag/internal/domain"
)

// Client talks to one tenant of a Kalcium server. It logs in lazily and
// renews its bearer token shortly before it expires or after a 401.
type Client struct {
	baseURL    string
	tenantID   int
	user       string
	password   string
	urlToken   string
	httpClient *http.Client
	limiter    *rate.Limiter
	aliases    *lru.Cache[int, map[string]string]
	log        *slog.Logger

	mu      sync.Mutex
	session session
}

// New creates a Client. No request is made until the first call.
func New(cfg config.TermbaseConfig, logger *slog.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errors.New("kalcium: base url is required")
	}
	if cfg.TenantID < 1 {
		return nil, fmt.Errorf("kalcium: tenant id must be >= 1 (got %d)", cfg.TenantID)
	}
	if cfg.URLToken == "" && (cfg.User == "" || cfg.Password == "") {
		return nil, errors.New("kalcium: provide a url token or user and password")
	}

	cacheSize := cfg.AliasCacheSize
	if cacheSize <= 0 {
		cacheSize = 64
	}
	aliases, err := lru.New[int, map[string]string](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("kalcium: alias cache: %w", err)
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		tenantID:   cfg.TenantID,
		user:       cfg.User,
		password:   cfg.Password,
		urlToken:   cfg.URLToken,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(limit, 1),
		aliases:    aliases,
		log:        logger.With("adapter", "kalcium"),
	}, nil
}

// BaseURL returns the server root without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// Ping makes sure the client holds a valid session.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.token(ctx)
	return err
}

// getJSON performs an authorized GET and decodes the JSON answer into v.
func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	body, err := c.authorized(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return decodeJSON(path, body, v)
}

// exchangeJSON performs an authorized JSON POST and decodes the answer into v.
func (c *Client) exchangeJSON(ctx context.Context, path string, payload, v any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("kalcium: encode %s: %w", path, err)
	}
	body, err := c.authorized(ctx, http.MethodPost, path, data)
	if err != nil {
		return err
	}
	return decodeJSON(path, body, v)
}

func decodeJSON(path string, body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("kalcium: decode %s: %w", trimQuery(path), domain.NewMalformedInput("json", err))
	}
	return nil
}

// authorized sends a bearer-authenticated request and returns the body of a
// 2xx answer. A non-nil payload is sent as JSON. A 401 triggers one
// re-login and retry.
func (c *Client) authorized(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	for attempt := 0; ; attempt++ {
		tok, err := c.token(ctx)
		if err != nil {
			return nil, err
		}

		newReq := func() (*http.Request, error) {
			var body io.Reader
			if payload != nil {
				body = bytes.NewReader(payload)
			}
			req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
			if err != nil {
				return nil, err
			}
			req.Header.Set("Authorization", "Bearer "+tok)
			req.Header.Set("Accept", "application/json")
			if payload != nil {
				req.Header.Set("Content-Type", "application/json")
			}
			return req, nil
		}

		status, body, err := c.send(ctx, newReq, trimQuery(path))
		if err != nil {
			return nil, err
		}
		if status == http.StatusUnauthorized && attempt == 0 {
			c.log.InfoContext(ctx, "kalcium session rejected, logging in again")
			c.invalidate(tok)
			continue
		}
		if status < 200 || status > 299 {
			return nil, &domain.RemoteError{StatusCode: status, Body: string(body)}
		}
		return body, nil
	}
}

// postJSON sends an unauthenticated JSON POST (used by the logins).
func (c *Client) postJSON(ctx context.Context, path string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("kalcium: encode %s: %w", path, err)
	}

	newReq := func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	}

	status, body, err := c.send(ctx, newReq, path)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, &domain.RemoteError{StatusCode: status, Body: string(body)}
	}
	return body, nil
}

// send waits for the rate limiter, performs the request with a single retry
// on 5xx or network errors and reads the whole body.
func (c *Client) send(ctx context.Context, newReq func() (*http.Request, error), label string) (int, []byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, nil, fmt.Errorf("kalcium: rate limit: %w", err)
	}

	resp, err := c.doWithRetry(ctx, newReq, label)
	if err != nil {
		c.log.ErrorContext(ctx, "kalcium request failed", slog.String("path", label), slog.String("error", err.Error()))
		return 0, nil, fmt.Errorf("kalcium: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("kalcium: read body: %w", err)
	}

	c.log.DebugContext(ctx, "kalcium response",
		slog.String("path", label),
		slog.Int("status", resp.StatusCode),
		slog.Int("bytes", len(body)),
	)
	return resp.StatusCode, body, nil
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (c *Client) doWithRetry(ctx context.Context, newReq func() (*http.Request, error), label string) (*http.Response, error) {
	req, err := newReq()
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}

	// Don't retry if context is already cancelled.
	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	c.log.WarnContext(ctx, "kalcium retry", slog.String("path", label), slog.String("reason", reason))

	// Close body from the failed attempt before retrying.
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(500 * time.Millisecond):
	}

	req, err = newReq()
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return c.httpClient.Do(req)
}

func trimQuery(path string) string {
	p, _, _ := strings.Cut(path, "?")
	return p
}
