package services

import (
	"strings"

	"localforum/internal/models"
	"localforum/internal/repositories"
)

// ProfileService handles business logic for user profiles.
type ProfileService struct {
	userRepo repositories.UserRepository
}

// NewProfileService creates a new ProfileService.
func NewProfileService(userRepo repositories.UserRepository) *ProfileService {
	return &ProfileService{
		userRepo: userRepo,
	}
}

// GetProfile returns the profile of the given user.
func (s *ProfileService) GetProfile(username string) (*models.Profile, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	profile := user.Profile
	return &profile, nil
}

// UpdateBio replaces the bio of the actor's own profile. The bio is
// trimmed and clamped to MaxBioLength characters before it is stored;
// the clamp applies to the persisted value, not just the input.
func (s *ProfileService) UpdateBio(username, actor, bio string) error {
	if err := requireAuthor(actor, username); err != nil {
		return err
	}

	bio = strings.TrimSpace(bio)
	if runes := []rune(bio); len(runes) > models.MaxBioLength {
		bio = string(runes[:models.MaxBioLength])
	}

	return s.userRepo.UpdateBio(username, bio)
}
