package auth

import (
	"log/slog"

	"github.com/frahmantamala/attendance-management/internal"
	"github.com/frahmantamala/attendance-management/internal/directory"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	users  directory.Repository
	tokens TokenGenerator
	logger *slog.Logger
}

func NewService(users directory.Repository, tokens TokenGenerator, logger *slog.Logger) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

func (s *Service) Authenticate(dto LoginDTO) (AuthTokens, error) {
	if err := dto.Validate(); err != nil {
		return AuthTokens{}, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	user, err := s.users.GetByUsername(dto.Username)
	if err != nil {
		s.logger.Warn("login failed: user lookup", "username", dto.Username, "error", err)
		return AuthTokens{}, internal.ErrInvalidCredentials
	}

	if !user.IsActive {
		s.logger.Warn("login failed: user inactive", "user_id", user.ID)
		return AuthTokens{}, internal.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(dto.Password)); err != nil {
		s.logger.Warn("login failed: password mismatch", "user_id", user.ID)
		return AuthTokens{}, internal.ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

func (s *Service) RefreshTokens(refreshToken string) (AuthTokens, error) {
	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		s.logger.Warn("refresh failed", "error", err)
		return AuthTokens{}, internal.ErrInvalidToken
	}

	user, err := s.users.GetByID(claims.UserID)
	if err != nil || !user.IsActive {
		return AuthTokens{}, internal.ErrInvalidToken
	}

	return s.issueTokens(user)
}

func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokens.ValidateAccessToken(tokenString)
}

// ResolveUser loads the directory user behind validated claims. The caller
// gets the full user so role scoping never re-reads the token.
func (s *Service) ResolveUser(claims *Claims) (*directory.User, error) {
	user, err := s.users.GetByID(claims.UserID)
	if err != nil {
		return nil, internal.ErrUserNotFound
	}
	if !user.IsActive {
		return nil, internal.ErrInvalidToken
	}
	return user, nil
}

func (s *Service) issueTokens(user *directory.User) (AuthTokens, error) {
	access, err := s.tokens.GenerateAccessToken(user.ID, user.Username)
	if err != nil {
		s.logger.Error("failed to sign access token", "error", err, "user_id", user.ID)
		return AuthTokens{}, internal.NewInternalError("failed to issue tokens", err)
	}

	refresh, err := s.tokens.GenerateRefreshToken(user.ID, user.Username)
	if err != nil {
		s.logger.Error("failed to sign refresh token", "error", err, "user_id", user.ID)
		return AuthTokens{}, internal.NewInternalError("failed to issue tokens", err)
	}

	return AuthTokens{AccessToken: access, RefreshToken: refresh}, nil
}
