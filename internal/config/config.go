package config

import (
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Termbase  TermbaseConfig  `yaml:"termbase"`
	Tag       TagConfig       `yaml:"tag"`
	LLM       LLMConfig       `yaml:"llm"`
	Auth      AuthConfig      `yaml:"auth"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Log       LogConfig       `yaml:"log"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type,X-API-Key"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// TermbaseConfig holds the Kalcium connection settings.
// Either URLToken or User and Password must be set.
type TermbaseConfig struct {
	BaseURL           string        `yaml:"base_url"            env:"TERMBASE_BASE_URL"            env-required:"true"`
	TenantID          int           `yaml:"tenant_id"           env:"TERMBASE_TENANT_ID"           env-default:"1"`
	User              string        `yaml:"user"                env:"TERMBASE_USER"`
	Password          string        `yaml:"password"            env:"TERMBASE_PASSWORD"`
	URLToken          string        `yaml:"url_token"           env:"TERMBASE_URL_TOKEN"`
	TermbaseID        int           `yaml:"termbase_id"         env:"TERMBASE_ID"                  env-default:"14"`
	Timeout           time.Duration `yaml:"timeout"             env:"TERMBASE_TIMEOUT"             env-default:"15s"`
	RequestsPerSecond float64       `yaml:"requests_per_second" env:"TERMBASE_REQUESTS_PER_SECOND" env-default:"5"`
	AliasCacheSize    int           `yaml:"alias_cache_size"    env:"TERMBASE_ALIAS_CACHE_SIZE"    env-default:"64"`
}

// TagConfig holds the defaults of the tag pipeline and the chat filter.
type TagConfig struct {
	DefaultProfileID int    `yaml:"default_profile_id" env:"TAG_DEFAULT_PROFILE_ID" env-default:"17"`
	DefaultFormat    string `yaml:"default_format"     env:"TAG_DEFAULT_FORMAT"     env-default:"markdown"`
	ProfilesPath     string `yaml:"profiles_path"      env:"TAG_PROFILES_PATH"`
	ExactMatchesOnly bool   `yaml:"exact_matches_only" env:"TAG_EXACT_MATCHES_ONLY" env-default:"false"`
	// Detection is "local" (stem matching) or "termbase" (stem matching
	// plus the termbase's sentence analysis) for exact-match lookups.
	Detection        string `yaml:"detection"          env:"TAG_DETECTION"          env-default:"local"`
	ShowCitation     bool   `yaml:"show_citation"      env:"TAG_SHOW_CITATION"      env-default:"true"`
	ShowTagContext   bool   `yaml:"show_tag_context"   env:"TAG_SHOW_TAG_CONTEXT"   env-default:"false"`
}

// Detection modes of TagConfig.Detection.
const (
	DetectionLocal    = "local"
	DetectionTermbase = "termbase"
)

// TermbaseDetection reports whether exact-match lookups ask the termbase.
func (c TagConfig) TermbaseDetection() bool { return c.Detection == DetectionTermbase }

// LLMConfig holds the optional Claude translator settings.
// An empty APIKey disables the translate endpoint.
type LLMConfig struct {
	APIKey    string `yaml:"api_key"    env:"LLM_API_KEY"`
	Model     string `yaml:"model"      env:"LLM_MODEL"      env-default:"claude-sonnet-4-5"`
	MaxTokens int    `yaml:"max_tokens" env:"LLM_MAX_TOKENS" env-default:"2048"`
}

// Enabled reports whether an API key is configured.
func (c LLMConfig) Enabled() bool { return c.APIKey != "" }

// AuthConfig holds API-key authentication settings.
// With no hashes configured the API is open.
type AuthConfig struct {
	APIKeyHashesRaw string `yaml:"api_key_hashes" env:"AUTH_API_KEY_HASHES"`

	// APIKeyHashes is parsed from APIKeyHashesRaw during validation.
	APIKeyHashes []string `yaml:"-" env:"-"`
}

// Enabled reports whether at least one API key hash is configured.
func (c AuthConfig) Enabled() bool { return len(c.APIKeyHashes) > 0 }

// RateLimitConfig holds the per-client inbound rate limit.
type RateLimitConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute" env:"RATE_LIMIT_REQUESTS_PER_MINUTE" env-default:"60"`
	Burst             int `yaml:"burst"               env:"RATE_LIMIT_BURST"               env-default:"10"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// splitList splits a comma-separated list, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
