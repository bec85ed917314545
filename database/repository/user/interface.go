package userRepo

import "festa/models"

// UserRepository defines persistence for platform accounts. Lookups return
// (nil, nil) when no document matches.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
}
