package kalcium

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/heartmarshall/termtag/internal/domain"
)

// expiryLeeway renews a token this long before its exp claim.
const expiryLeeway = 30 * time.Second

// session is the bearer token of the current login.
// A zero expiresAt means the token carries no exp claim.
type session struct {
	token     string
	expiresAt time.Time
	termbases []int
}

func (s session) valid(now time.Time) bool {
	if s.token == "" {
		return false
	}
	return s.expiresAt.IsZero() || now.Add(expiryLeeway).Before(s.expiresAt)
}

// token returns a valid bearer token, logging in when needed.
// Concurrent callers share one login.
func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session.valid(time.Now()) {
		return c.session.token, nil
	}

	s, err := c.login(ctx)
	if err != nil {
		return "", err
	}
	c.session = s
	return s.token, nil
}

// invalidate drops the session if it still holds tok.
func (c *Client) invalidate(tok string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session.token == tok {
		c.session = session{}
	}
}

// EnabledTermbases returns the termbase ids enabled for the logged-in
// user's groups, logging in if needed.
func (c *Client) EnabledTermbases(ctx context.Context) ([]int, error) {
	if _, err := c.token(ctx); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]int(nil), c.session.termbases...), nil
}

func (c *Client) login(ctx context.Context) (session, error) {
	var (
		path    string
		payload any
		method  string
	)
	if c.urlToken != "" {
		path, method = "/kalcrest/authentication/url-token", "url_token"
		payload = loginRequestToken{TenantID: c.tenantID, Token: c.urlToken}
	} else {
		path, method = "/kalcrest/authentication/token", "password"
		payload = loginRequestPassword{TenantID: c.tenantID, UserName: c.user, Password: c.password}
	}

	body, err := c.postJSON(ctx, path, payload)
	if err != nil {
		var re *domain.RemoteError
		if errors.As(err, &re) {
			c.log.WarnContext(ctx, "kalcium login rejected",
				slog.String("method", method),
				slog.Int("status", re.StatusCode),
			)
		}
		return session{}, fmt.Errorf("kalcium: login: %w", err)
	}

	var resp loginResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return session{}, fmt.Errorf("kalcium: login: %w", domain.NewMalformedInput("json", err))
	}
	if resp.Token == "" {
		return session{}, fmt.Errorf("kalcium: login: %w", &domain.RemoteError{
			StatusCode: 200,
			Body:       "response carries no token",
		})
	}

	s := session{
		token:     resp.Token,
		expiresAt: tokenExpiry(resp.Token),
		termbases: enabledTermbases(resp.Groups),
	}
	c.log.InfoContext(ctx, "kalcium login",
		slog.String("method", method),
		slog.Int("tenant_id", c.tenantID),
		slog.Time("expires_at", s.expiresAt),
	)
	return s, nil
}

// tokenExpiry reads the exp claim without verifying the signature; the
// server remains the authority and answers 401 on a bad token.
// Opaque tokens yield the zero time.
func tokenExpiry(token string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}

func enabledTermbases(groups []apiGroup) []int {
	seen := make(map[int]bool)
	var ids []int
	for _, g := range groups {
		for _, tb := range g.Termbases {
			if !tb.IsEnabled.Value || seen[tb.TermbaseID] {
				continue
			}
			seen[tb.TermbaseID] = true
			ids = append(ids, tb.TermbaseID)
		}
	}
	return ids
}
