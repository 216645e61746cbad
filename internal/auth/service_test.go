package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quangdm/finvi/internal/models"
	"github.com/quangdm/finvi/internal/storage"
)

func newService(t *testing.T) (*Service, storage.SlotStore) {
	t.Helper()
	slots := storage.NewMemoryStore()
	service, err := NewService(context.Background(), slots, "test-secret", 7*24*time.Hour)
	require.NoError(t, err)
	return service, slots
}

func register(t *testing.T, service *Service, username, email string) models.AuthResponse {
	t.Helper()
	response, err := service.Register(context.Background(), models.UserRegistration{
		Username: username,
		Email:    email,
		Password: "hunter22",
	})
	require.NoError(t, err)
	return response
}

func TestRegisterAndValidate(t *testing.T) {
	service, _ := newService(t)

	response := register(t, service, "quang", "quang@example.com")
	assert.Equal(t, "quang", response.User.Username)
	assert.NotEmpty(t, response.Token)

	claims, err := service.ValidateToken(response.Token)
	require.NoError(t, err)
	assert.Equal(t, response.User.ID, claims.UserID)
	assert.Equal(t, "quang", claims.Username)
	assert.Equal(t, "finvi", claims.Issuer)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	service, _ := newService(t)
	register(t, service, "quang", "quang@example.com")

	_, err := service.Register(ctx, models.UserRegistration{
		Username: "Quang", Email: "other@example.com", Password: "hunter22",
	})
	assert.ErrorIs(t, err, ErrUserExists, "username compared case-insensitively")

	_, err = service.Register(ctx, models.UserRegistration{
		Username: "someone", Email: "QUANG@example.com", Password: "hunter22",
	})
	assert.ErrorIs(t, err, ErrUserExists, "email compared case-insensitively")
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	service, _ := newService(t)
	register(t, service, "quang", "quang@example.com")

	// by username
	response, err := service.Login(ctx, models.UserLogin{Username: "quang", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, "quang", response.User.Username)

	// by email
	_, err = service.Login(ctx, models.UserLogin{Username: "quang@example.com", Password: "hunter22"})
	assert.NoError(t, err)

	// wrong password
	_, err = service.Login(ctx, models.UserLogin{Username: "quang", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// unknown account
	_, err = service.Login(ctx, models.UserLogin{Username: "ghost", Password: "hunter22"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	service, _ := newService(t)
	response := register(t, service, "quang", "quang@example.com")

	_, err := service.ValidateToken(response.Token + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other, err := NewService(context.Background(), storage.NewMemoryStore(), "different-secret", time.Hour)
	require.NoError(t, err)
	_, err = other.ValidateToken(response.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAccountsSurviveReload(t *testing.T) {
	ctx := context.Background()
	service, slots := newService(t)
	register(t, service, "quang", "quang@example.com")

	reloaded, err := NewService(ctx, slots, "test-secret", 7*24*time.Hour)
	require.NoError(t, err)

	_, err = reloaded.Login(ctx, models.UserLogin{Username: "quang", Password: "hunter22"})
	assert.NoError(t, err)
}
