// Package catalog owns the provider and package records: append-only
// creation, provider-owned mutation. Search reads it, never the other way
// around.
package catalog

import (
	"festa/models"
	"festa/services/auth"

	bookingRepo "festa/database/repository/booking"
	providerRepo "festa/database/repository/provider"
)

// PackageInput describes a package at creation or edit time.
type PackageInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       int      `json:"price"`
	Duration    string   `json:"duration"`
	Features    []string `json:"features"`
}

// CreateProviderInput is the full profile a provider registers with.
type CreateProviderInput struct {
	BusinessName string          `json:"businessName"`
	Category     models.Category `json:"category"`
	Description  string          `json:"description"`
	Location     string          `json:"location"`
	Images       []string        `json:"images"`
	PriceRange   string          `json:"priceRange"`
	Packages     []PackageInput  `json:"packages"`
}

// UpdateProviderInput is a patch; nil fields are left untouched.
type UpdateProviderInput struct {
	BusinessName *string   `json:"businessName,omitempty"`
	Description  *string   `json:"description,omitempty"`
	Location     *string   `json:"location,omitempty"`
	PriceRange   *string   `json:"priceRange,omitempty"`
	Images       *[]string `json:"images,omitempty"`
}

// CatalogService is the catalog store contract.
type CatalogService interface {
	CreateProvider(sess auth.ProviderSession, input CreateProviderInput) (*models.Provider, error)
	UpdateProvider(sess auth.ProviderSession, providerID string, patch UpdateProviderInput) (*models.Provider, error)
	GetProvider(id string) (*models.Provider, error)
	GetProviderByOwner(userID string) (*models.Provider, error)
	ListProviders() ([]models.Provider, error)

	AddPackage(sess auth.ProviderSession, providerID string, input PackageInput) (*models.Package, error)
	// UpdatePackage edits a package. If any non-cancelled booking references
	// it, the edit mints a replacement with a new ID and retires the
	// original so booked terms stay frozen.
	UpdatePackage(sess auth.ProviderSession, providerID, packageID string, input PackageInput) (*models.Package, error)

	// ApplyReview folds a completed booking's review into the aggregate
	// rating. Only the review subsystem calls this; reviewCount never
	// decreases.
	ApplyReview(providerID string, rating float64) error
}

// DefaultCatalogService implements CatalogService.
type DefaultCatalogService struct {
	Repo     providerRepo.ProviderRepository
	Bookings bookingRepo.BookingRepository
}
