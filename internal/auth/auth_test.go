package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/drivego/drivego-backend/internal/models"
)

func TestNewService(t *testing.T) {
	service, err := NewService()
	assert.NoError(t, err)
	assert.NotNil(t, service)
	assert.NotEmpty(t, service.jwtSecret)
	assert.Equal(t, 24*time.Hour, service.tokenExp)
}

func TestService_HashPassword(t *testing.T) {
	service, _ := NewService()

	password := "testpassword123"
	hash, err := service.HashPassword(password)

	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)
}

func TestService_CheckPassword(t *testing.T) {
	service, _ := NewService()

	password := "testpassword123"
	hash, _ := service.HashPassword(password)

	// Correct and incorrect bcrypt comparisons
	assert.True(t, service.CheckPassword(password, hash))
	assert.False(t, service.CheckPassword("wrongpassword", hash))

	// Legacy rows store the plain password
	assert.True(t, service.CheckPassword("plainpass", "plainpass"))
	assert.False(t, service.CheckPassword("plainpass", "otherpass"))

	// Stored value with surrounding whitespace still matches
	assert.True(t, service.CheckPassword(password, " "+hash+" "))

	// Empty stored value never matches
	assert.False(t, service.CheckPassword("", ""))
}

func TestService_GenerateAndValidateToken(t *testing.T) {
	service, _ := NewService()

	user := &models.User{
		ID:    primitive.NewObjectID(),
		Email: "user@drivego.demo",
	}

	token, err := service.GenerateToken(user, models.RoleUser)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, models.RoleUser, claims.Role)
	assert.Greater(t, claims.Exp, time.Now().Unix())

	// Bearer prefix is tolerated
	claims, err = service.ValidateToken("Bearer " + token)
	assert.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
}

func TestService_ValidateToken_Invalid(t *testing.T) {
	service, _ := NewService()

	_, err := service.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = service.ValidateToken("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_ExpiredToken(t *testing.T) {
	service, _ := NewService()
	service.tokenExp = -time.Hour

	user := &models.User{ID: primitive.NewObjectID(), Email: "user@drivego.demo"}
	token, err := service.GenerateToken(user, models.RoleUser)
	assert.NoError(t, err)

	_, err = service.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestService_ExtractTokenFromHeader(t *testing.T) {
	service, _ := NewService()

	token, err := service.ExtractTokenFromHeader("Bearer abc123")
	assert.NoError(t, err)
	assert.Equal(t, "abc123", token)

	_, err = service.ExtractTokenFromHeader("")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = service.ExtractTokenFromHeader("Basic abc123")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = service.ExtractTokenFromHeader("Bearer")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
