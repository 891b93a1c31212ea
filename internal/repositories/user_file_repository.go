package repositories

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"localforum/internal/models"
)

// FileUserRepository is a file-backed implementation of UserRepository.
// The persisted file maps usernames to their records; username lookup
// and uniqueness are case-sensitive.
type FileUserRepository struct {
	path  string
	mu    sync.RWMutex
	users map[string]models.User
}

// NewFileUserRepository loads the user map from path. A missing file
// yields an empty map; a malformed file is a hard error.
func NewFileUserRepository(path string) (*FileUserRepository, error) {
	repo := &FileUserRepository{
		path:  path,
		users: make(map[string]models.User),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return repo, nil
		}
		return nil, fmt.Errorf("failed to read user store %s: %w", path, err)
	}

	if err := json.Unmarshal(data, &repo.users); err != nil {
		return nil, fmt.Errorf("failed to parse user store %s: %w", path, err)
	}
	// Usernames live in the map keys; mirror them onto the records.
	for username, user := range repo.users {
		user.Username = username
		repo.users[username] = user
	}

	return repo, nil
}

// save rewrites the whole user map. Callers must hold the write lock.
func (r *FileUserRepository) save() error {
	data, err := json.MarshalIndent(r.users, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode user store: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write user store %s: %w", r.path, err)
	}
	return nil
}

// Create stores a new user and persists. Registering a username that
// already exists fails; the check and the insert share one lock.
func (r *FileUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.Username]; ok {
		return models.ErrUsernameTaken
	}
	r.users[user.Username] = *user

	return r.save()
}

// GetByUsername returns a copy of the user with the given username.
func (r *FileUserRepository) GetByUsername(username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[username]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &user, nil
}

// UpdateBio replaces the bio of the matching user and persists.
func (r *FileUserRepository) UpdateBio(username, bio string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[username]
	if !ok {
		return models.ErrNotFound
	}
	user.Profile.Bio = bio
	r.users[username] = user

	return r.save()
}
