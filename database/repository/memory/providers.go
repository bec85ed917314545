package memory

import (
	"time"

	providerRepo "festa/database/repository/provider"
	"festa/errs"
	"festa/models"
)

// ProviderRepo is an in-memory ProviderRepository.
type ProviderRepo struct {
	store
	byID     map[string]models.Provider
	byUserID map[string]string
}

// NewProviderRepo creates an empty in-memory provider repository.
func NewProviderRepo() *ProviderRepo {
	return &ProviderRepo{
		byID:     make(map[string]models.Provider),
		byUserID: make(map[string]string),
	}
}

var _ providerRepo.ProviderRepository = (*ProviderRepo)(nil)

func (r *ProviderRepo) Create(provider *models.Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byUserID[provider.UserID]; exists {
		return errs.Validation("user %s already owns a provider profile", provider.UserID)
	}
	now := time.Now()
	provider.CreatedAt = now
	provider.UpdatedAt = now
	r.byID[provider.ID] = clone(provider)
	r.byUserID[provider.UserID] = provider.ID
	return nil
}

func (r *ProviderRepo) Update(provider *models.Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[provider.ID]; !ok {
		return errs.NotFound("provider", provider.ID)
	}
	provider.UpdatedAt = time.Now()
	r.byID[provider.ID] = clone(provider)
	return nil
}

func (r *ProviderRepo) GetByID(id string) (*models.Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	provider, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	out := clone(&provider)
	return &out, nil
}

func (r *ProviderRepo) GetByUserID(userID string) (*models.Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUserID[userID]
	if !ok {
		return nil, nil
	}
	provider := r.byID[id]
	out := clone(&provider)
	return &out, nil
}

func (r *ProviderRepo) List() ([]models.Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	providers := make([]models.Provider, 0, len(r.byID))
	for _, provider := range r.byID {
		providers = append(providers, clone(&provider))
	}
	return providers, nil
}

// clone deep-copies the slices so a stored snapshot never aliases caller
// memory.
func clone(p *models.Provider) models.Provider {
	out := *p
	out.Images = append([]string(nil), p.Images...)
	out.Packages = make([]models.Package, len(p.Packages))
	for i, pkg := range p.Packages {
		out.Packages[i] = pkg
		out.Packages[i].Features = append([]string(nil), pkg.Features...)
	}
	return out
}
