package app

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/heartmarshall/termtag/internal/adapter/llm"
	"github.com/heartmarshall/termtag/internal/adapter/provider/kalcium"
	"github.com/heartmarshall/termtag/internal/chatfilter"
	"github.com/heartmarshall/termtag/internal/config"
	"github.com/heartmarshall/termtag/internal/profile"
	"github.com/heartmarshall/termtag/internal/service/tag"
)

// Deps holds the components shared by the server and the CLI.
type Deps struct {
	Profiles *profile.Registry
	Termbase *kalcium.Client
	Tags     *tag.Service
	Filter   *chatfilter.Filter
	// LLM is nil when no API key is configured.
	LLM      *llm.Translator
	Registry *prometheus.Registry
}

// Build wires the profile registry, the termbase client, the lookup
// service and the chat filter.
func Build(cfg *config.Config, logger *slog.Logger) (*Deps, error) {
	profiles, err := profile.Load(cfg.Tag.ProfilesPath)
	if err != nil {
		return nil, err
	}
	if _, err := profiles.Lookup(cfg.Tag.DefaultProfileID); err != nil {
		return nil, fmt.Errorf("app: default profile: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		newBuildInfo(),
	)

	tb, err := kalcium.New(cfg.Termbase, logger)
	if err != nil {
		return nil, err
	}

	var opts []tag.Option
	if cfg.Tag.TermbaseDetection() {
		opts = append(opts, tag.WithTermRecognizer(tb))
	}
	tags := tag.NewService(logger, tb, profiles, tag.NewMetrics(reg), opts...)

	d := &Deps{
		Profiles: profiles,
		Termbase: tb,
		Tags:     tags,
		Filter:   chatfilter.New(logger, tags, tb.BaseURL(), cfg.Termbase.TermbaseID),
		Registry: reg,
	}

	if cfg.LLM.Enabled() {
		d.LLM, err = llm.New(cfg.LLM, logger)
		if err != nil {
			return nil, err
		}
	}

	logger.Info("components ready",
		slog.Any("profiles", profiles.IDs()),
		slog.Int("default_profile_id", cfg.Tag.DefaultProfileID),
		slog.String("termbase_url", tb.BaseURL()),
		slog.Bool("llm", d.LLM != nil),
		slog.String("detection", cfg.Tag.Detection),
	)
	return d, nil
}
