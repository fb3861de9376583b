package rest

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/heartmarshall/termtag/internal/config"
	"github.com/heartmarshall/termtag/internal/transport/middleware"
)

// RouterDeps are the handlers and settings the router mounts.
type RouterDeps struct {
	Health  *HealthHandler
	Tag     *TagHandler
	Chat    *ChatHandler
	Catalog *CatalogHandler
	Search  *SearchHandler
	Metrics prometheus.Gatherer
	Limiter *middleware.RateLimiter

	Auth      config.AuthConfig
	CORS      config.CORSConfig
	RateLimit config.RateLimitConfig
	Logger    *slog.Logger
}

// NewRouter mounts the probes and metrics without authentication and the
// /v1 API behind API-key authentication, access logging and rate limiting.
func NewRouter(d RouterDeps) http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("POST /v1/translations", d.Tag.FindTranslation)
	api.HandleFunc("POST /v1/revisions", d.Tag.CheckTerminology)
	api.HandleFunc("POST /v1/chat/inlet", d.Chat.Inlet)
	api.HandleFunc("POST /v1/chat/outlet", d.Chat.Outlet)
	api.HandleFunc("POST /v1/chat/translate", d.Chat.Translate)
	api.HandleFunc("GET /v1/languages", d.Catalog.Languages)
	api.HandleFunc("GET /v1/termbases", d.Catalog.Termbases)
	api.HandleFunc("GET /v1/termbases/{id}/aliases", d.Catalog.FieldAliases)
	api.HandleFunc("GET /v1/profiles", d.Catalog.Profiles)
	api.HandleFunc("POST /v1/search", d.Search.Search)
	api.HandleFunc("POST /v1/analyze", d.Search.Analyze)

	var limit middleware.Middleware
	if d.Limiter != nil {
		limit = d.Limiter.Limit(d.RateLimit.RequestsPerMinute, d.RateLimit.Burst)
	}
	// Logger runs after APIKey so it sees the client id.
	protected := middleware.Chain(
		middleware.APIKey(d.Auth.APIKeyHashes),
		middleware.Logger(d.Logger),
		limit,
	)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /live", d.Health.Live)
	mux.HandleFunc("GET /ready", d.Health.Ready)
	mux.HandleFunc("GET /health", d.Health.Health)
	if d.Metrics != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(d.Metrics, promhttp.HandlerOpts{}))
	}
	mux.Handle("/v1/", protected(api))

	return middleware.Chain(
		middleware.RequestID(),
		middleware.Recovery(d.Logger),
		middleware.CORS(d.CORS),
	)(mux)
}
