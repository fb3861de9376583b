// Package tag runs terminology lookups: fetch from the termbase,
// normalize, derive and render.
package tag

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/termtag/internal/domain"
	"github.com/heartmarshall/termtag/internal/normalize"
	"github.com/heartmarshall/termtag/internal/profile"
	"github.com/heartmarshall/termtag/internal/provider"
)

const (
	outcomeOK    = "ok"
	outcomeError = "error"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type termbase interface {
	FetchEntryContent(ctx context.Context, text string, profileID int, sourceLanguageIDs, targetLanguageIDs []int) (provider.RawPayload, error)
}

type profileSource interface {
	Lookup(id int) (profile.Profile, error)
}

type termRecognizer interface {
	RecognizeTerms(ctx context.Context, text string, sourceLanguageIDs, targetLanguageIDs []int) ([]domain.TermHit, error)
}

// Service performs terminology lookups against the termbase.
type Service struct {
	log        *slog.Logger
	termbase   termbase
	profiles   profileSource
	metrics    *Metrics
	recognizer termRecognizer
}

// Option configures a Service.
type Option func(*Service)

// WithTermRecognizer lets exact-match lookups also keep the concepts the
// termbase recognizes in the text.
func WithTermRecognizer(r termRecognizer) Option {
	return func(s *Service) { s.recognizer = r }
}

// NewService creates a Service. metrics may be nil.
func NewService(logger *slog.Logger, tb termbase, profiles profileSource, metrics *Metrics, opts ...Option) *Service {
	s := &Service{
		log:      logger.With("service", "tag"),
		termbase: tb,
		profiles: profiles,
		metrics:  metrics,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Profile returns the configuration of a profile.
func (s *Service) Profile(id int) (profile.Profile, error) {
	p, err := s.profiles.Lookup(id)
	if err != nil {
		s.log.Error("profile lookup failed", slog.Int("profile_id", id), slog.String("error", err.Error()))
		return profile.Profile{}, err
	}
	return p, nil
}

// FindTranslation fetches the entries matching req.Text and renders the
// translation view.
func (s *Service) FindTranslation(ctx context.Context, req Request) (*TranslationResult, error) {
	p, raw, err := s.fetch(ctx, domain.TaskTranslation, req)
	if err != nil {
		s.metrics.observe(domain.TaskTranslation, outcomeError, 0)
		return nil, err
	}

	if req.ExactMatchesOnly && s.recognizer != nil {
		req.termHits = s.recognize(ctx, req)
	}

	res, err := FindTranslation(raw, req, p)
	if err != nil {
		s.metrics.observe(domain.TaskTranslation, outcomeError, 0)
		return nil, fmt.Errorf("find translation: %w", err)
	}

	s.recordDrops(ctx, res.Dropped)
	s.metrics.observe(domain.TaskTranslation, outcomeOK, len(res.Entries))
	s.log.InfoContext(ctx, "translation lookup",
		slog.Int("profile_id", req.ProfileID),
		slog.Int("concepts", len(res.Entries)),
		slog.Int("dropped", len(res.Dropped)),
	)
	return res, nil
}

// CheckTerminology fetches the entries matching req.Text and renders the
// monolingual revision view.
func (s *Service) CheckTerminology(ctx context.Context, req Request) (*RevisionResult, error) {
	p, raw, err := s.fetch(ctx, domain.TaskRevision, req)
	if err != nil {
		s.metrics.observe(domain.TaskRevision, outcomeError, 0)
		return nil, err
	}

	res, err := CheckTerminology(raw, req, p)
	if err != nil {
		s.metrics.observe(domain.TaskRevision, outcomeError, 0)
		return nil, fmt.Errorf("check terminology: %w", err)
	}

	s.recordDrops(ctx, res.Dropped)
	s.metrics.observe(domain.TaskRevision, outcomeOK, len(res.Entries))
	s.log.InfoContext(ctx, "revision lookup",
		slog.Int("profile_id", req.ProfileID),
		slog.Int("concepts", len(res.Entries)),
		slog.Int("dropped", len(res.Dropped)),
	)
	return res, nil
}

// fetch validates req, resolves its profile and retrieves the raw payload.
func (s *Service) fetch(ctx context.Context, task domain.Task, req Request) (profile.Profile, provider.RawPayload, error) {
	if err := req.Validate(task); err != nil {
		return profile.Profile{}, provider.RawPayload{}, err
	}

	p, err := s.Profile(req.ProfileID)
	if err != nil {
		return profile.Profile{}, provider.RawPayload{}, err
	}

	raw, err := s.termbase.FetchEntryContent(ctx, req.Text, req.ProfileID, req.SourceLanguageIDs, req.TargetLanguageIDs)
	if err != nil {
		var remote *domain.RemoteError
		if errors.As(err, &remote) {
			s.log.WarnContext(ctx, "termbase rejected request",
				slog.Int("status", remote.StatusCode),
				slog.Int("profile_id", req.ProfileID),
			)
		}
		return profile.Profile{}, provider.RawPayload{}, fmt.Errorf("fetch entries: %w", err)
	}
	return p, raw, nil
}

// recognize asks the termbase for the concepts in req.Text. On failure the
// lookup goes on with local matching only.
func (s *Service) recognize(ctx context.Context, req Request) []domain.TermHit {
	hits, err := s.recognizer.RecognizeTerms(ctx, req.Text, req.SourceLanguageIDs[:1], req.TargetLanguageIDs)
	if err != nil {
		s.log.WarnContext(ctx, "term recognition failed, using local matching",
			slog.Int("profile_id", req.ProfileID),
			slog.String("error", err.Error()),
		)
		return nil
	}
	return hits
}

func (s *Service) recordDrops(ctx context.Context, drops []normalize.Drop) {
	for _, d := range drops {
		s.log.WarnContext(ctx, "entry dropped",
			slog.String("entry_id", d.EntryID),
			slog.String("reason", d.Reason.String()),
		)
		s.metrics.drop(d)
	}
}
