package profile

import (
	"fmt"
	"maps"
	"slices"

	"github.com/heartmarshall/termtag/internal/domain"
)

// Registry is a read-only set of profiles keyed by id.
type Registry struct {
	profiles map[int]Profile
}

// NewRegistry validates and registers the given profiles.
// A later profile with the same id replaces an earlier one.
func NewRegistry(profiles ...Profile) (*Registry, error) {
	r := &Registry{profiles: make(map[int]Profile, len(profiles))}
	for _, p := range profiles {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("profile %d: %w", p.ID, err)
		}
		r.profiles[p.ID] = p
	}
	return r, nil
}

// Lookup returns the profile with the given id. A missing profile is a
// *domain.ConfigurationError.
func (r *Registry) Lookup(id int) (Profile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return Profile{}, &domain.ConfigurationError{ProfileID: id}
	}
	return p, nil
}

// IDs returns the registered ids in ascending order.
func (r *Registry) IDs() []int {
	return slices.Sorted(maps.Keys(r.profiles))
}

// With returns a new registry with the given profiles layered on top.
func (r *Registry) With(profiles ...Profile) (*Registry, error) {
	all := make([]Profile, 0, len(r.profiles)+len(profiles))
	for _, id := range r.IDs() {
		all = append(all, r.profiles[id])
	}
	all = append(all, profiles...)
	return NewRegistry(all...)
}
