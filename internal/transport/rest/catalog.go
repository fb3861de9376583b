package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/heartmarshall/termtag/internal/adapter/provider/kalcium"
	"github.com/heartmarshall/termtag/internal/domain"
	"github.com/heartmarshall/termtag/internal/profile"
)

type termbaseCatalog interface {
	Languages(ctx context.Context) ([]kalcium.Language, error)
	Termbases(ctx context.Context, ids ...int) ([]kalcium.Termbase, error)
	FieldAliases(ctx context.Context, termbaseID int) (map[string]string, error)
}

type profileCatalog interface {
	IDs() []int
	Lookup(id int) (profile.Profile, error)
}

// CatalogHandler lists what a client may put into a lookup request.
type CatalogHandler struct {
	termbase termbaseCatalog
	profiles profileCatalog
	log      *slog.Logger
}

// NewCatalogHandler creates a CatalogHandler.
func NewCatalogHandler(tb termbaseCatalog, profiles profileCatalog, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{termbase: tb, profiles: profiles, log: logger.With("handler", "catalog")}
}

type profileResponse struct {
	ID        int            `json:"id"`
	Languages map[string]int `json:"languages"`
}

// Languages handles GET /v1/languages.
func (h *CatalogHandler) Languages(w http.ResponseWriter, r *http.Request) {
	langs, err := h.termbase.Languages(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	if langs == nil {
		langs = []kalcium.Language{}
	}
	writeJSON(w, http.StatusOK, langs)
}

// Termbases handles GET /v1/termbases. Without ?id= it lists the termbases
// enabled for the service account.
func (h *CatalogHandler) Termbases(w http.ResponseWriter, r *http.Request) {
	var ids []int
	for _, raw := range r.URL.Query()["id"] {
		id, err := strconv.Atoi(raw)
		if err != nil || id < 1 {
			handleError(w, r, h.log, domain.NewValidationError("id", "must be a positive integer"))
			return
		}
		ids = append(ids, id)
	}

	tbs, err := h.termbase.Termbases(r.Context(), ids...)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	if tbs == nil {
		tbs = []kalcium.Termbase{}
	}
	writeJSON(w, http.StatusOK, tbs)
}

// FieldAliases handles GET /v1/termbases/{id}/aliases.
func (h *CatalogHandler) FieldAliases(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id < 1 {
		handleError(w, r, h.log, domain.NewValidationError("id", "must be a positive integer"))
		return
	}

	aliases, err := h.termbase.FieldAliases(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, aliases)
}

// Profiles handles GET /v1/profiles.
func (h *CatalogHandler) Profiles(w http.ResponseWriter, r *http.Request) {
	ids := h.profiles.IDs()
	out := make([]profileResponse, 0, len(ids))
	for _, id := range ids {
		p, err := h.profiles.Lookup(id)
		if err != nil {
			handleError(w, r, h.log, err)
			return
		}
		out = append(out, profileResponse{ID: p.ID, Languages: p.LanguageNames})
	}
	writeJSON(w, http.StatusOK, out)
}
