package models

import "time"

// Category enumerates the service types offered on the platform.
type Category string

const (
	CategoryBand         Category = "band"
	CategoryDJ           Category = "dj"
	CategoryVenue        Category = "venue"
	CategoryPhotographer Category = "photographer"
	CategoryVideographer Category = "videographer"
	CategoryCandyBar     Category = "candybar"
	CategoryCatering     Category = "catering"
	CategoryDecoration   Category = "decoration"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryBand, CategoryDJ, CategoryVenue, CategoryPhotographer,
		CategoryVideographer, CategoryCandyBar, CategoryCatering, CategoryDecoration:
		return true
	}
	return false
}

// Package is a bookable offering of a provider. Prices are whole RON.
// A package referenced by a non-cancelled booking is immutable: edits mint
// a replacement with a fresh ID and retire the old one, so the terms of an
// accepted booking never change under it.
type Package struct {
	ID          string   `bson:"id" json:"id"`
	ProviderID  string   `bson:"providerId" json:"providerId"`
	Name        string   `bson:"name" json:"name"`
	Description string   `bson:"description" json:"description"`
	Price       int      `bson:"price" json:"price"`
	Duration    string   `bson:"duration" json:"duration"`
	Features    []string `bson:"features" json:"features"`
	Retired     bool     `bson:"retired" json:"retired,omitempty"`
}

// Provider is a business profile owned by a user with RoleProvider.
type Provider struct {
	ID           string    `bson:"id" json:"id"`
	UserID       string    `bson:"userId" json:"userId"`
	BusinessName string    `bson:"businessName" json:"businessName"`
	Category     Category  `bson:"category" json:"category"`
	Description  string    `bson:"description" json:"description"`
	Location     string    `bson:"location" json:"location"`
	Images       []string  `bson:"images" json:"images"`
	Rating       float64   `bson:"rating" json:"rating"`
	ReviewCount  int       `bson:"reviewCount" json:"reviewCount"`
	PriceRange   string    `bson:"priceRange" json:"priceRange"`
	Packages     []Package `bson:"packages" json:"packages"`
	Verified     bool      `bson:"verified" json:"verified"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// PackageByID returns the package with the given ID, retired or not.
func (p *Provider) PackageByID(id string) *Package {
	for i := range p.Packages {
		if p.Packages[i].ID == id {
			return &p.Packages[i]
		}
	}
	return nil
}

// ActivePackages returns the packages currently offered for booking.
func (p *Provider) ActivePackages() []Package {
	var active []Package
	for _, pkg := range p.Packages {
		if !pkg.Retired {
			active = append(active, pkg)
		}
	}
	return active
}

// Searchable reports whether the provider appears in search results.
// A provider without at least one active package is neither searchable
// nor bookable.
func (p *Provider) Searchable() bool {
	return len(p.ActivePackages()) > 0
}
