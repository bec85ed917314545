// Package seed loads a small demo catalog into a fresh development
// instance so the app is browsable without manual setup. Never runs in
// production.
package seed

import (
	"time"

	providerRepo "festa/database/repository/provider"
	userRepo "festa/database/repository/user"
	"festa/models"
	"festa/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type seedProvider struct {
	user     models.User
	provider models.Provider
}

// Catalog inserts the demo providers, skipping any that already exist.
func Catalog(users userRepo.UserRepository, providers providerRepo.ProviderRepository) {
	logger := utils.GetLogger()
	hash, err := bcrypt.GenerateFromPassword([]byte("parola-demo"), bcrypt.DefaultCost)
	if err != nil {
		logger.Warn("seed: failed to hash demo password", zap.Error(err))
		return
	}

	for _, entry := range demoCatalog(string(hash)) {
		existing, err := users.GetByEmail(entry.user.Email)
		if err != nil {
			logger.Warn("seed: lookup failed", zap.String("email", entry.user.Email), zap.Error(err))
			continue
		}
		if existing != nil {
			continue
		}
		if err := users.Create(&entry.user); err != nil {
			logger.Warn("seed: failed to create user", zap.String("email", entry.user.Email), zap.Error(err))
			continue
		}
		if err := providers.Create(&entry.provider); err != nil {
			logger.Warn("seed: failed to create provider", zap.String("name", entry.provider.BusinessName), zap.Error(err))
		}
	}
	logger.Info("seed: demo catalog loaded")
}

func demoCatalog(passwordHash string) []seedProvider {
	harmony := newSeedProvider(passwordHash, "harmony@festa.ro", "Formația Harmony", models.CategoryBand,
		"Formație profesională cu experiență de peste 10 ani în evenimente private și corporate. Repertoriu variat: pop, rock, folk românesc.",
		"București", "2000-5000 RON", 4.8, 127, true,
		[]models.Package{
			{Name: "Pachet Standard", Description: "4 ore de muzică live, sonorizare inclusă", Price: 2500, Duration: "4 ore",
				Features: []string{"4 ore muzică live", "Sonorizare profesională", "2 pauze de 15 min"}},
			{Name: "Pachet Premium", Description: "6 ore de muzică live, sonorizare și lumini", Price: 4000, Duration: "6 ore",
				Features: []string{"6 ore muzică live", "Sonorizare profesională", "Lumini scenă", "DJ între pauze"}},
		})

	alex := newSeedProvider(passwordHash, "djalex@festa.ro", "DJ Alex Events", models.CategoryDJ,
		"DJ profesionist specializat în evenimente private. Echipament de ultimă generație și muzică pentru toate gusturile.",
		"Cluj-Napoca", "800-2000 RON", 4.9, 89, true,
		[]models.Package{
			{Name: "Pachet Basic", Description: "4 ore DJ, sonorizare de bază", Price: 1000, Duration: "4 ore",
				Features: []string{"4 ore DJ", "Sonorizare", "Playlist personalizată"}},
		})

	elegance := newSeedProvider(passwordHash, "elegance@festa.ro", "Salon Elegance", models.CategoryVenue,
		"Sală de evenimente elegantă în centrul Bucureștiului, capacitate 200 persoane. Decorațiuni incluse.",
		"București", "3000-8000 RON", 4.7, 156, true,
		[]models.Package{
			{Name: "Închiriere Sală", Description: "Închiriere sală pentru o zi, decorațiuni de bază incluse", Price: 5000, Duration: "1 zi",
				Features: []string{"Sală 200 persoane", "Decorațiuni de bază", "Sonorizare", "Parcare"}},
		})

	return []seedProvider{harmony, alex, elegance}
}

func newSeedProvider(passwordHash, email, name string, category models.Category, description, location, priceRange string,
	rating float64, reviewCount int, verified bool, packages []models.Package) seedProvider {

	userID := uuid.New().String()
	providerID := uuid.New().String()
	now := time.Now()

	for i := range packages {
		packages[i].ID = uuid.New().String()
		packages[i].ProviderID = providerID
	}

	return seedProvider{
		user: models.User{
			ID:           userID,
			Email:        email,
			Name:         name,
			Role:         models.RoleProvider,
			PasswordHash: passwordHash,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		provider: models.Provider{
			ID:           providerID,
			UserID:       userID,
			BusinessName: name,
			Category:     category,
			Description:  description,
			Location:     location,
			Rating:       rating,
			ReviewCount:  reviewCount,
			PriceRange:   priceRange,
			Packages:     packages,
			Verified:     verified,
		},
	}
}
