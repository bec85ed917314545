package memory

import (
	"time"

	userRepo "festa/database/repository/user"
	"festa/errs"
	"festa/models"
)

// UserRepo is an in-memory UserRepository.
type UserRepo struct {
	store
	byID    map[string]models.User
	byEmail map[string]string
}

// NewUserRepo creates an empty in-memory user repository.
func NewUserRepo() *UserRepo {
	return &UserRepo{
		byID:    make(map[string]models.User),
		byEmail: make(map[string]string),
	}
}

var _ userRepo.UserRepository = (*UserRepo)(nil)

func (r *UserRepo) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return errs.Validation("a user with email %s already exists", user.Email)
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.byID[user.ID] = *user
	r.byEmail[user.Email] = user.ID
	return nil
}

func (r *UserRepo) GetByID(id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (r *UserRepo) GetByEmail(email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	user := r.byID[id]
	return &user, nil
}
