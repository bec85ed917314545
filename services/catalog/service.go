package catalog

import (
	"festa/errs"
	"festa/models"
	"festa/services/auth"

	"github.com/google/uuid"
)

var _ CatalogService = (*DefaultCatalogService)(nil)

// CreateProvider validates and persists a new provider profile owned by the
// session user.
func (s *DefaultCatalogService) CreateProvider(sess auth.ProviderSession, input CreateProviderInput) (*models.Provider, error) {
	if input.BusinessName == "" {
		return nil, errs.Validation("business name is required")
	}
	if !input.Category.Valid() {
		return nil, errs.Validation("unknown category %q", input.Category)
	}
	if input.Location == "" {
		return nil, errs.Validation("location is required")
	}
	if len(input.Packages) == 0 {
		return nil, errs.Validation("a provider needs at least one package")
	}

	provider := models.Provider{
		ID:           uuid.New().String(),
		UserID:       sess.UserID(),
		BusinessName: input.BusinessName,
		Category:     input.Category,
		Description:  input.Description,
		Location:     input.Location,
		Images:       input.Images,
		PriceRange:   input.PriceRange,
	}
	for _, pkg := range input.Packages {
		built, err := buildPackage(provider.ID, pkg)
		if err != nil {
			return nil, err
		}
		provider.Packages = append(provider.Packages, *built)
	}

	if err := s.Repo.Create(&provider); err != nil {
		return nil, err
	}
	return &provider, nil
}

// UpdateProvider applies a patch to the profile fields the owner may edit.
func (s *DefaultCatalogService) UpdateProvider(sess auth.ProviderSession, providerID string, patch UpdateProviderInput) (*models.Provider, error) {
	provider, err := s.ownedProvider(sess, providerID)
	if err != nil {
		return nil, err
	}

	if patch.BusinessName != nil {
		if *patch.BusinessName == "" {
			return nil, errs.Validation("business name cannot be empty")
		}
		provider.BusinessName = *patch.BusinessName
	}
	if patch.Description != nil {
		provider.Description = *patch.Description
	}
	if patch.Location != nil {
		if *patch.Location == "" {
			return nil, errs.Validation("location cannot be empty")
		}
		provider.Location = *patch.Location
	}
	if patch.PriceRange != nil {
		provider.PriceRange = *patch.PriceRange
	}
	if patch.Images != nil {
		provider.Images = *patch.Images
	}

	if err := s.Repo.Update(provider); err != nil {
		return nil, err
	}
	return provider, nil
}

// GetProvider resolves a provider by ID.
func (s *DefaultCatalogService) GetProvider(id string) (*models.Provider, error) {
	provider, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, errs.NotFound("provider", id)
	}
	return provider, nil
}

// GetProviderByOwner resolves the profile owned by a user.
func (s *DefaultCatalogService) GetProviderByOwner(userID string) (*models.Provider, error) {
	provider, err := s.Repo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, errs.NotFound("provider profile for user", userID)
	}
	return provider, nil
}

// ListProviders returns an unordered catalog snapshot.
func (s *DefaultCatalogService) ListProviders() ([]models.Provider, error) {
	return s.Repo.List()
}

// AddPackage appends a new package to the provider's offering.
func (s *DefaultCatalogService) AddPackage(sess auth.ProviderSession, providerID string, input PackageInput) (*models.Package, error) {
	provider, err := s.ownedProvider(sess, providerID)
	if err != nil {
		return nil, err
	}

	pkg, err := buildPackage(providerID, input)
	if err != nil {
		return nil, err
	}
	provider.Packages = append(provider.Packages, *pkg)

	if err := s.Repo.Update(provider); err != nil {
		return nil, err
	}
	return pkg, nil
}

// UpdatePackage edits a package in place when nothing references it, or
// retires it and mints a replacement when a non-cancelled booking does.
func (s *DefaultCatalogService) UpdatePackage(sess auth.ProviderSession, providerID, packageID string, input PackageInput) (*models.Package, error) {
	provider, err := s.ownedProvider(sess, providerID)
	if err != nil {
		return nil, err
	}

	existing := provider.PackageByID(packageID)
	if existing == nil {
		return nil, errs.NotFound("package", packageID)
	}
	if existing.Retired {
		return nil, errs.InvalidState("package %s has been retired", packageID)
	}

	replacement, err := buildPackage(providerID, input)
	if err != nil {
		return nil, err
	}

	referenced, err := s.Bookings.CountActiveByPackage(packageID)
	if err != nil {
		return nil, err
	}
	if referenced > 0 {
		existing.Retired = true
		provider.Packages = append(provider.Packages, *replacement)
	} else {
		replacement.ID = existing.ID
		*existing = *replacement
	}

	if err := s.Repo.Update(provider); err != nil {
		return nil, err
	}
	return replacement, nil
}

// ApplyReview updates the running average rating and bumps the count.
func (s *DefaultCatalogService) ApplyReview(providerID string, rating float64) error {
	if rating < 0 || rating > 5 {
		return errs.Validation("rating must be between 0 and 5")
	}
	provider, err := s.GetProvider(providerID)
	if err != nil {
		return err
	}

	total := provider.Rating*float64(provider.ReviewCount) + rating
	provider.ReviewCount++
	provider.Rating = total / float64(provider.ReviewCount)

	return s.Repo.Update(provider)
}

func (s *DefaultCatalogService) ownedProvider(sess auth.ProviderSession, providerID string) (*models.Provider, error) {
	provider, err := s.GetProvider(providerID)
	if err != nil {
		return nil, err
	}
	if provider.UserID != sess.UserID() {
		return nil, errs.Authorization("provider %s is not owned by the caller", providerID)
	}
	return provider, nil
}

func buildPackage(providerID string, input PackageInput) (*models.Package, error) {
	if input.Name == "" {
		return nil, errs.Validation("package name is required")
	}
	if input.Price <= 0 {
		return nil, errs.Validation("package price must be positive")
	}
	return &models.Package{
		ID:          uuid.New().String(),
		ProviderID:  providerID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Duration:    input.Duration,
		Features:    input.Features,
	}, nil
}
