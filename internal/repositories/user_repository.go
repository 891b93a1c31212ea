package repositories

import "localforum/internal/models"

// UserRepository defines the interface for user data access. Users
// are never deleted or renamed once registered.
type UserRepository interface {
	Create(user *models.User) error
	GetByUsername(username string) (*models.User, error)
	UpdateBio(username, bio string) error
}
