package service

import (
	"context"
	"errors"
	"time"

	"github.com/spec-kit/planets-api/internal/auth"
	"github.com/spec-kit/planets-api/internal/config"
	"github.com/spec-kit/planets-api/internal/domain"
	"github.com/spec-kit/planets-api/internal/events"
	"github.com/spec-kit/planets-api/internal/repository"
	apperrors "github.com/spec-kit/planets-api/pkg/util"
)

// loginFailedMessage is deliberately identical for unknown usernames
// and wrong passwords so login responses carry no enumeration signal.
const loginFailedMessage = "Incorrect username or password"

// AuthService validates credentials, issues tokens and resolves the
// caller identity from incoming tokens.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository, dispatcher events.Dispatcher) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		dispatcher: dispatcher,
	}
}

// Login authenticates a username/password pair and issues a token.
// Username lookup is a case-sensitive exact match.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", time.Time{}, apperrors.NewInvalidCredentials(loginFailedMessage)
		}
		return "", time.Time{}, err
	}
	if !user.IsActive {
		return "", time.Time{}, apperrors.NewInvalidCredentials(loginFailedMessage)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return "", time.Time{}, apperrors.NewInvalidCredentials(loginFailedMessage)
	}

	token, expiresAt, err := s.tokenMgr.Issue(user.Username)
	if err != nil {
		return "", time.Time{}, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.NewEvent(events.EventUserLoggedIn, user.Username,
			events.UserLoggedInPayload{Username: user.Username}))
	}
	return token, expiresAt, nil
}

// CurrentUser verifies the token and re-looks-up the credential record
// by the token subject, so role changes apply without re-issuing the
// token. Any verification failure resolves to Unauthorized.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*domain.Identity, error) {
	claims, err := s.tokenMgr.Verify(token)
	if err != nil {
		return nil, apperrors.NewUnauthorized("invalid or expired token")
	}

	user, err := s.users.GetByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewUnauthorized("unknown user")
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.NewUnauthorized("account disabled")
	}
	return domain.IdentityOf(user), nil
}
