package config

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/heartmarshall/termtag/internal/domain"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if err := c.Termbase.validate(); err != nil {
		return fmt.Errorf("termbase: %w", err)
	}

	if err := c.Tag.validate(); err != nil {
		return fmt.Errorf("tag: %w", err)
	}

	if c.LLM.Enabled() && c.LLM.MaxTokens <= 0 {
		return fmt.Errorf("llm.max_tokens must be > 0 (got %d)", c.LLM.MaxTokens)
	}

	if err := c.Auth.validate(); err != nil {
		return fmt.Errorf("auth: %w", err)
	}

	if c.RateLimit.RequestsPerMinute < 0 {
		return fmt.Errorf("rate_limit.requests_per_minute must be >= 0 (got %d)", c.RateLimit.RequestsPerMinute)
	}

	return nil
}

func (t *TermbaseConfig) validate() error {
	if strings.TrimSpace(t.BaseURL) == "" {
		return fmt.Errorf("base_url is required")
	}
	if t.TenantID < 1 {
		return fmt.Errorf("tenant_id must be >= 1 (got %d)", t.TenantID)
	}
	if t.URLToken == "" && (t.User == "" || t.Password == "") {
		return fmt.Errorf("either url_token or user and password must be set")
	}
	if t.RequestsPerSecond < 0 {
		return fmt.Errorf("requests_per_second must be >= 0 (got %v)", t.RequestsPerSecond)
	}
	return nil
}

func (t *TagConfig) validate() error {
	if t.DefaultProfileID < 0 {
		return fmt.Errorf("default_profile_id must be >= 0 (got %d)", t.DefaultProfileID)
	}
	if !domain.Format(t.DefaultFormat).IsValid() {
		return fmt.Errorf("default_format must be markdown, yaml or unchanged (got %q)", t.DefaultFormat)
	}
	switch t.Detection {
	case "", DetectionLocal, DetectionTermbase:
	default:
		return fmt.Errorf("detection must be local or termbase (got %q)", t.Detection)
	}
	return nil
}

func (a *AuthConfig) validate() error {
	hashes := splitList(a.APIKeyHashesRaw)
	for i, h := range hashes {
		if _, err := bcrypt.Cost([]byte(h)); err != nil {
			return fmt.Errorf("api_key_hashes[%d]: not a bcrypt hash: %w", i, err)
		}
	}
	a.APIKeyHashes = hashes
	return nil
}
