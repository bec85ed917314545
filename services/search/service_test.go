package search

import (
	"testing"

	"festa/database/repository/memory"
	"festa/models"
	"festa/services/availability"
)

// fixtureCatalog mirrors the shape of the seeded demo data: a verified
// band, an unverified DJ and a verified venue, in different cities and
// price brackets.
func fixtureCatalog(t *testing.T) (*DefaultSearchService, *availability.DefaultLedger) {
	t.Helper()

	repo := memory.NewProviderRepo()
	catalog := []models.Provider{
		{
			ID:           "prov-band",
			UserID:       "user-band",
			BusinessName: "Formația Harmony",
			Category:     models.CategoryBand,
			Description:  "Muzică live pentru nunți și evenimente corporate",
			Location:     "București",
			Rating:       4.8,
			ReviewCount:  120,
			Verified:     true,
			Packages: []models.Package{
				{ID: "pkg-band-1", ProviderID: "prov-band", Name: "Pachet Standard", Price: 2500},
				{ID: "pkg-band-2", ProviderID: "prov-band", Name: "Pachet Premium", Price: 4000},
			},
		},
		{
			ID:           "prov-dj",
			UserID:       "user-dj",
			BusinessName: "DJ Alex Events",
			Category:     models.CategoryDJ,
			Description:  "DJ pentru petreceri private",
			Location:     "Cluj-Napoca",
			Rating:       4.5,
			ReviewCount:  40,
			Packages: []models.Package{
				{ID: "pkg-dj-1", ProviderID: "prov-dj", Name: "Seară Completă", Price: 1000},
			},
		},
		{
			ID:           "prov-venue",
			UserID:       "user-venue",
			BusinessName: "Salon Elegance",
			Category:     models.CategoryVenue,
			Description:  "Salon de evenimente cu grădină",
			Location:     "București",
			Rating:       4.8,
			ReviewCount:  85,
			Verified:     true,
			Packages: []models.Package{
				{ID: "pkg-venue-1", ProviderID: "prov-venue", Name: "Zi Întreagă", Price: 5000},
			},
		},
		{
			// Only package retired, so never searchable.
			ID:           "prov-dormant",
			UserID:       "user-dormant",
			BusinessName: "Foto Vintage",
			Category:     models.CategoryPhotographer,
			Location:     "București",
			Rating:       5.0,
			Verified:     true,
			Packages: []models.Package{
				{ID: "pkg-dormant", ProviderID: "prov-dormant", Name: "Arhivă", Price: 800, Retired: true},
			},
		},
	}
	for i := range catalog {
		if err := repo.Create(&catalog[i]); err != nil {
			t.Fatalf("seed provider %s: %v", catalog[i].ID, err)
		}
	}

	ledger := &availability.DefaultLedger{Repo: memory.NewSlotRepo()}
	return &DefaultSearchService{Repo: repo, Ledger: ledger}, ledger
}

func ids(providers []models.Provider) []string {
	out := make([]string, len(providers))
	for i, p := range providers {
		out[i] = p.ID
	}
	return out
}

func assertIDs(t *testing.T, got []models.Provider, want ...string) {
	t.Helper()
	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("expected %v, got %v", want, gotIDs)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, gotIDs)
		}
	}
}

func TestSearch_EmptyFiltersReturnRankedCatalog(t *testing.T) {
	svc, _ := fixtureCatalog(t)

	results, err := svc.Search(models.SearchFilters{})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	// Verified first; equal rating broken by review count; the unverified
	// DJ last; the dormant provider hidden entirely.
	assertIDs(t, results, "prov-band", "prov-venue", "prov-dj")
}

func TestSearch_RankingIsDeterministic(t *testing.T) {
	svc, _ := fixtureCatalog(t)

	first, err := svc.Search(models.SearchFilters{})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := svc.Search(models.SearchFilters{})
		if err != nil {
			t.Fatalf("search: %v", err)
		}
		assertIDs(t, again, ids(first)...)
	}
}

func TestSearch_QueryMatchesNameAndDescription(t *testing.T) {
	svc, _ := fixtureCatalog(t)

	results, err := svc.Search(models.SearchFilters{Query: "Harmony"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	assertIDs(t, results, "prov-band")

	// Case-insensitive, and descriptions count too.
	results, err = svc.Search(models.SearchFilters{Query: "petreceri"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	assertIDs(t, results, "prov-dj")

	results, err = svc.Search(models.SearchFilters{Query: "nu există"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected empty result, got %v", ids(results))
	}
}

func TestSearch_ConjunctiveFilters(t *testing.T) {
	svc, _ := fixtureCatalog(t)

	results, err := svc.Search(models.SearchFilters{Location: "București"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	assertIDs(t, results, "prov-band", "prov-venue")

	results, err = svc.Search(models.SearchFilters{
		Location: "București",
		Category: models.CategoryVenue,
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	assertIDs(t, results, "prov-venue")

	results, err = svc.Search(models.SearchFilters{
		Location: "București",
		Category: models.CategoryDJ,
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no DJ in București, got %v", ids(results))
	}
}

func TestSearch_PriceRangeUsesActivePackages(t *testing.T) {
	svc, _ := fixtureCatalog(t)

	results, err := svc.Search(models.SearchFilters{
		Price: &models.PriceRange{Min: 2000, Max: 4500},
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	assertIDs(t, results, "prov-band")

	// The dormant provider's retired 800 RON package must not match.
	results, err = svc.Search(models.SearchFilters{
		Price: &models.PriceRange{Min: 500, Max: 900},
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected retired package to be ignored, got %v", ids(results))
	}
}

func TestSearch_MinRating(t *testing.T) {
	svc, _ := fixtureCatalog(t)

	results, err := svc.Search(models.SearchFilters{MinRating: 4.6})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	assertIDs(t, results, "prov-band", "prov-venue")
}

func TestSearch_DateFilterConsultsLedger(t *testing.T) {
	svc, ledger := fixtureCatalog(t)

	if err := ledger.Hold("prov-band", "2026-06-15"); err != nil {
		t.Fatalf("hold: %v", err)
	}

	results, err := svc.Search(models.SearchFilters{Date: "2026-06-15"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	assertIDs(t, results, "prov-venue", "prov-dj")

	// A different date leaves the band bookable.
	results, err = svc.Search(models.SearchFilters{Date: "2026-06-16"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	assertIDs(t, results, "prov-band", "prov-venue", "prov-dj")
}
