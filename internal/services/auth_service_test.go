package services_test

import (
	"testing"
	"time"

	"localforum/internal/models"
	"localforum/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateBio(username, bio string) error {
	args := m.Called(username, bio)
	return args.Error(0)
}

func TestAuthService_Register(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	// Successful registration stores a digest and a default profile.
	mockRepo.On("GetByUsername", "testuser").Return(nil, models.ErrNotFound).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	user, err := authService.Register("testuser", "password123", "password123")
	assert.NoError(t, err)
	assert.Equal(t, "testuser", user.Username)
	assert.Equal(t, "testuser", user.Profile.DisplayName)
	assert.Empty(t, user.Profile.Bio)
	assert.NotEmpty(t, user.Profile.JoinedAt)
	assert.NotEqual(t, "password123", user.PasswordHash, "password must never be stored in plaintext")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
	mockRepo.AssertExpectations(t)

	// Empty fields are a validation error before anything else runs,
	// and a whitespace-only username counts as empty.
	_, err = authService.Register("", "password123", "password123")
	assert.ErrorIs(t, err, models.ErrValidation)
	_, err = authService.Register("   ", "password123", "password123")
	assert.ErrorIs(t, err, models.ErrValidation)
	_, err = authService.Register("testuser", "", "")
	assert.ErrorIs(t, err, models.ErrValidation)

	// A padded username registers as its trimmed form.
	mockRepo.On("GetByUsername", "padded").Return(nil, models.ErrNotFound).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()
	user, err = authService.Register("  padded  ", "password123", "password123")
	assert.NoError(t, err)
	assert.Equal(t, "padded", user.Username)
	mockRepo.AssertExpectations(t)

	// Username already taken.
	mockRepo.On("GetByUsername", "testuser").Return(&models.User{Username: "testuser"}, nil).Once()
	_, err = authService.Register("testuser", "password123", "password123")
	assert.ErrorIs(t, err, models.ErrUsernameTaken)
	mockRepo.AssertExpectations(t)

	// Password confirmation mismatch.
	mockRepo.On("GetByUsername", "testuser").Return(nil, models.ErrNotFound).Once()
	_, err = authService.Register("testuser", "password123", "different")
	assert.ErrorIs(t, err, models.ErrPasswordMismatch)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_AuthenticateGenericError(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{Username: "testuser", PasswordHash: string(hashedPassword)}

	// Successful authentication.
	mockRepo.On("GetByUsername", "testuser").Return(user, nil).Once()
	got, err := authService.Authenticate("testuser", "password123")
	assert.NoError(t, err)
	assert.Equal(t, "testuser", got.Username)

	// Wrong password and unknown username must be indistinguishable.
	mockRepo.On("GetByUsername", "testuser").Return(user, nil).Once()
	_, wrongPassErr := authService.Authenticate("testuser", "wrongpassword")
	mockRepo.On("GetByUsername", "nobody").Return(nil, models.ErrNotFound).Once()
	_, unknownUserErr := authService.Authenticate("nobody", "password123")

	assert.ErrorIs(t, wrongPassErr, models.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUserErr, models.ErrInvalidCredentials)
	assert.Equal(t, wrongPassErr.Error(), unknownUserErr.Error())
	mockRepo.AssertExpectations(t)
}

func TestAuthService_LoginUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	testJWTSecret := "test_jwt_secret"
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{Username: "testuser", PasswordHash: string(hashedPassword)}

	mockRepo.On("GetByUsername", "testuser").Return(user, nil).Once()
	token, err := authService.LoginUser("testuser", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := authService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "testuser", claims["username"])
	assert.NotEmpty(t, claims["jti"])
	mockRepo.AssertExpectations(t)

	mockRepo.On("GetByUsername", "testuser").Return(user, nil).Once()
	_, err = authService.LoginUser("testuser", "wrongpassword")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	testJWTSecret := "test_jwt_secret"
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	// Garbage token.
	_, err := authService.ValidateToken("invalid.token.string")
	assert.Error(t, err)

	// Token signed with the wrong secret.
	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": "testuser",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	foreignString, _ := foreign.SignedString([]byte("some_other_secret"))
	_, err = authService.ValidateToken(foreignString)
	assert.Error(t, err)

	// Expired token.
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": "testuser",
		"exp":      time.Now().Add(-time.Hour).Unix(),
	})
	expiredString, _ := expired.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(expiredString)
	assert.Error(t, err)
}
