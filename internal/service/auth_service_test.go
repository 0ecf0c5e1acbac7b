package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/planets-api/internal/config"
	"github.com/spec-kit/planets-api/internal/domain"
	"github.com/spec-kit/planets-api/internal/persistence"
	"github.com/spec-kit/planets-api/internal/repository"
	"github.com/spec-kit/planets-api/internal/service"
	apperrors "github.com/spec-kit/planets-api/pkg/util"
)

func newAuthFixture(t *testing.T) (*service.AuthService, repository.UserRepository) {
	t.Helper()
	users := repository.NewMemoryUserRepository()
	planets := repository.NewMemoryPlanetRepository()
	require.NoError(t, persistence.Seed(context.Background(), users, planets, bcrypt.MinCost, zap.NewNop()))

	cfg := config.AuthConfig{JWTSecret: "test-secret", AccessTokenTTLMinutes: 30, BcryptCost: bcrypt.MinCost}
	return service.NewAuthService(cfg, users, nil), users
}

func TestLoginSucceedsForAllSeededUsers(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	for _, demo := range persistence.DemoUsers {
		t.Run(demo.Username, func(t *testing.T) {
			token, expiresAt, err := svc.Login(ctx, demo.Username, demo.Password)
			require.NoError(t, err)
			require.NotEmpty(t, token)
			assert.WithinDuration(t, time.Now().Add(30*time.Minute), expiresAt, 5*time.Second)

			identity, err := svc.CurrentUser(ctx, token)
			require.NoError(t, err)
			assert.Equal(t, demo.Username, identity.Username)
			assert.Equal(t, demo.Role, identity.Role)
			assert.Equal(t, demo.Role == domain.RoleAdmin, identity.IsAdmin)
		})
	}
}

func TestLoginFailureIsUniform(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, _, wrongPassErr := svc.Login(ctx, "admin", "wrongpass")
	require.Error(t, wrongPassErr)
	_, _, unknownUserErr := svc.Login(ctx, "nobody", "admin123")
	require.Error(t, unknownUserErr)

	// identical message for bad password and unknown username
	wrongPass := apperrors.ToDomainError(wrongPassErr)
	unknownUser := apperrors.ToDomainError(unknownUserErr)
	assert.Equal(t, wrongPass.Message, unknownUser.Message)
	assert.Equal(t, wrongPass.Code, unknownUser.Code)
	assert.Equal(t, 401, wrongPass.HTTPStatus)
	assert.Equal(t, 401, unknownUser.HTTPStatus)
}

func TestLoginIsCaseSensitive(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, _, err := svc.Login(context.Background(), "Admin", "admin123")
	assert.Error(t, err)
}

func TestCurrentUserReflectsRoleChangeWithoutReissue(t *testing.T) {
	svc, users := newAuthFixture(t)
	ctx := context.Background()

	token, _, err := svc.Login(ctx, "user", "user123")
	require.NoError(t, err)

	identity, err := svc.CurrentUser(ctx, token)
	require.NoError(t, err)
	assert.False(t, identity.IsAdmin)

	// promote the user after the token was issued
	record, err := users.GetByUsername(ctx, "user")
	require.NoError(t, err)
	record.Role = domain.RoleAdmin
	require.NoError(t, users.Update(ctx, record))

	identity, err = svc.CurrentUser(ctx, token)
	require.NoError(t, err)
	assert.True(t, identity.IsAdmin, "role must be resolved at lookup time, not from the token")
}

func TestCurrentUserRejectsDisabledAccount(t *testing.T) {
	svc, users := newAuthFixture(t)
	ctx := context.Background()

	token, _, err := svc.Login(ctx, "user", "user123")
	require.NoError(t, err)

	record, err := users.GetByUsername(ctx, "user")
	require.NoError(t, err)
	record.IsActive = false
	require.NoError(t, users.Update(ctx, record))

	_, err = svc.CurrentUser(ctx, token)
	require.Error(t, err)
	assert.Equal(t, 401, apperrors.ToDomainError(err).HTTPStatus)
}

func TestCurrentUserRejectsInvalidTokens(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	for name, token := range map[string]string{
		"empty":   "",
		"garbage": "invalid_token",
	} {
		t.Run(name, func(t *testing.T) {
			identity, err := svc.CurrentUser(ctx, token)
			assert.Nil(t, identity)
			require.Error(t, err)
			assert.Equal(t, 401, apperrors.ToDomainError(err).HTTPStatus)
		})
	}
}

func TestLoginPublishesEvent(t *testing.T) {
	users := repository.NewMemoryUserRepository()
	planets := repository.NewMemoryPlanetRepository()
	require.NoError(t, persistence.Seed(context.Background(), users, planets, bcrypt.MinCost, zap.NewNop()))

	dispatcher := &capturingDispatcher{}
	cfg := config.AuthConfig{JWTSecret: "test-secret", AccessTokenTTLMinutes: 30, BcryptCost: bcrypt.MinCost}
	svc := service.NewAuthService(cfg, users, dispatcher)

	_, _, err := svc.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	require.Len(t, dispatcher.published, 1)
	assert.Equal(t, "admin", dispatcher.published[0].Actor)
}
