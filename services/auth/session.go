package auth

import "festa/models"

// Session identifies an authenticated caller. It is a closed variant over
// the two roles so that operations can demand the right one at compile
// time instead of branching on an optional role field.
type Session interface {
	UserID() string
	Role() models.Role
	isSession()
}

// ClientSession is the session of a user with RoleClient.
type ClientSession struct {
	ID string
}

func (s ClientSession) UserID() string    { return s.ID }
func (s ClientSession) Role() models.Role { return models.RoleClient }
func (s ClientSession) isSession()        {}

// ProviderSession is the session of a user with RoleProvider.
type ProviderSession struct {
	ID string
}

func (s ProviderSession) UserID() string    { return s.ID }
func (s ProviderSession) Role() models.Role { return models.RoleProvider }
func (s ProviderSession) isSession()        {}

// sessionFor builds the variant matching the stored role.
func sessionFor(userID string, role models.Role) Session {
	if role == models.RoleProvider {
		return ProviderSession{ID: userID}
	}
	return ClientSession{ID: userID}
}
