package providerRepo

import "festa/models"

// ProviderRepository defines persistence for provider profiles. Lookups
// return (nil, nil) when no document matches.
type ProviderRepository interface {
	Create(provider *models.Provider) error
	Update(provider *models.Provider) error
	GetByID(id string) (*models.Provider, error)
	GetByUserID(userID string) (*models.Provider, error)
	// List returns a read-only snapshot of the full catalog. No ordering
	// guarantee; ranking is the search engine's job.
	List() ([]models.Provider, error)
}
