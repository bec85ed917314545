package models

import "time"

// Role classifies a platform account. The role is fixed at registration;
// changing it is an administrative operation, not something the account
// itself can do.
type Role string

const (
	RoleClient   Role = "client"
	RoleProvider Role = "provider"
)

func (r Role) Valid() bool {
	return r == RoleClient || r == RoleProvider
}

// User represents a platform account, either a client booking services or
// the owner of a provider profile.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	Name         string    `bson:"name" json:"name"`
	Role         Role      `bson:"role" json:"role"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}
