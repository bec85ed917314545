// Package search resolves client queries against the provider catalog with
// deterministic ranking. It reads the catalog store and the availability
// ledger and mutates neither.
package search

import (
	"sort"
	"strings"

	"festa/models"
	"festa/services/availability"

	providerRepo "festa/database/repository/provider"
)

// SearchService filters and ranks the catalog.
type SearchService interface {
	// Search applies every supplied criterion conjunctively and returns
	// providers in ranked order. An empty filter returns the full catalog,
	// ranked. An empty result is valid, not an error.
	Search(filters models.SearchFilters) ([]models.Provider, error)
}

// DefaultSearchService implements SearchService.
type DefaultSearchService struct {
	Repo   providerRepo.ProviderRepository
	Ledger availability.Ledger
}

var _ SearchService = (*DefaultSearchService)(nil)

func (s *DefaultSearchService) Search(filters models.SearchFilters) ([]models.Provider, error) {
	catalog, err := s.Repo.List()
	if err != nil {
		return nil, err
	}

	results := make([]models.Provider, 0, len(catalog))
	for _, provider := range catalog {
		ok, err := s.matches(&provider, filters)
		if err != nil {
			return nil, err
		}
		if ok {
			results = append(results, provider)
		}
	}

	rank(results)
	return results, nil
}

func (s *DefaultSearchService) matches(p *models.Provider, f models.SearchFilters) (bool, error) {
	if !p.Searchable() {
		return false, nil
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		name := strings.ToLower(p.BusinessName)
		desc := strings.ToLower(p.Description)
		if !strings.Contains(name, q) && !strings.Contains(desc, q) {
			return false, nil
		}
	}
	if f.Location != "" {
		if !strings.Contains(strings.ToLower(p.Location), strings.ToLower(f.Location)) {
			return false, nil
		}
	}
	if f.Category != "" && p.Category != f.Category {
		return false, nil
	}
	if f.MinRating > 0 && p.Rating < f.MinRating {
		return false, nil
	}
	if f.Price != nil && !anyPackageInRange(p, *f.Price) {
		return false, nil
	}
	if f.Date != "" {
		free, err := s.Ledger.IsFree(p.ID, f.Date)
		if err != nil {
			return false, err
		}
		if !free {
			return false, nil
		}
	}
	return true, nil
}

func anyPackageInRange(p *models.Provider, pr models.PriceRange) bool {
	for _, pkg := range p.ActivePackages() {
		if pkg.Price >= pr.Min && pkg.Price <= pr.Max {
			return true
		}
	}
	return false
}

// rank orders results by verified desc, rating desc, reviewCount desc and
// finally id asc, so equal inputs always produce the same list.
func rank(providers []models.Provider) {
	sort.Slice(providers, func(i, j int) bool {
		a, b := &providers[i], &providers[j]
		if a.Verified != b.Verified {
			return a.Verified
		}
		if a.Rating != b.Rating {
			return a.Rating > b.Rating
		}
		if a.ReviewCount != b.ReviewCount {
			return a.ReviewCount > b.ReviewCount
		}
		return a.ID < b.ID
	})
}
