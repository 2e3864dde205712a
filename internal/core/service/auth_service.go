package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mesafina/restaurant-backend/internal/core/domain"
	"github.com/mesafina/restaurant-backend/internal/core/ports"
	"github.com/mesafina/restaurant-backend/internal/observability"
)

// AuthService implements signup and the token lifecycle behind the
// user.* message patterns.
type AuthService struct {
	repo       ports.UserRepository
	hasher     ports.PasswordHasher
	jwtSecret  string
	accessTTL  time.Duration
	refreshTTL time.Duration
	log        zerolog.Logger
}

func NewAuthService(
	repo ports.UserRepository,
	hasher ports.PasswordHasher,
	jwtSecret string,
	accessTTL, refreshTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if accessTTL <= 0 {
		accessTTL = 24 * time.Hour
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &AuthService{
		repo:       repo,
		hasher:     hasher,
		jwtSecret:  jwtSecret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		log:        log,
	}
}

// Signup registers a new user. The flow is: normalize, check for an
// existing account, hash, persist. Email uniqueness is enforced twice —
// the pre-check here and the store's unique index — because two signups
// for the same address can interleave between the check and the insert.
func (s *AuthService) Signup(ctx context.Context, in ports.RegisterInput) (*ports.SignupResult, error) {
	email := domain.NormalizeEmail(in.Email)
	firstName := strings.TrimSpace(in.FirstName)
	lastName := strings.TrimSpace(in.LastName)

	role := domain.Role(in.Role)
	if in.Role == "" {
		role = domain.RoleCustomer
	}

	s.log.Info().Str("email", email).Msg("registration attempt")

	_, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		s.log.Warn().Str("email", email).Msg("registration rejected: email already exists")
		observability.SignupsTotal.WithLabelValues("conflict").Inc()
		return nil, domain.ErrEmailExists
	case !errors.Is(err, domain.ErrUserNotFound):
		s.log.Error().Err(err).Str("email", email).Msg("registration lookup failed")
		observability.SignupsTotal.WithLabelValues("failed").Inc()
		return nil, domain.ErrRegistrationFailed
	}

	passwordHash, err := s.hasher.Hash(in.Password)
	if err != nil {
		s.log.Error().Err(err).Str("email", email).Msg("password hashing failed")
		observability.SignupsTotal.WithLabelValues("failed").Inc()
		return nil, domain.ErrRegistrationFailed
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    firstName,
		LastName:     lastName,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailExists):
			// Lost the race against a concurrent signup; still a conflict.
			s.log.Warn().Str("email", email).Msg("registration rejected: unique index violation")
			observability.SignupsTotal.WithLabelValues("conflict").Inc()
			return nil, domain.ErrEmailExists
		case errors.Is(err, domain.ErrInvalidData):
			s.log.Warn().Err(err).Str("email", email).Msg("registration rejected: constraint violation")
			observability.SignupsTotal.WithLabelValues("invalid_data").Inc()
			return nil, domain.ErrInvalidData
		default:
			s.log.Error().Err(err).Str("email", email).Msg("registration persist failed")
			observability.SignupsTotal.WithLabelValues("failed").Inc()
			return nil, domain.ErrRegistrationFailed
		}
	}

	s.log.Info().Str("email", email).Str("user_id", created.ID).Msg("user registered")
	observability.SignupsTotal.WithLabelValues("created").Inc()

	return &ports.SignupResult{
		Message: "User registered successfully",
		User:    created.Public(),
	}, nil
}

// Login verifies credentials and issues an access/refresh token pair.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	email = domain.NormalizeEmail(email)

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login lookup: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.log.Warn().Str("email", email).Msg("login rejected: password mismatch")
		return nil, domain.ErrInvalidCredentials
	}

	accessToken, err := s.issueAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	refreshToken, err := s.issueRefreshToken(user)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}

	s.log.Info().Str("email", email).Str("user_id", user.ID).Msg("user logged in")
	return &ports.AuthResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user.Public(),
	}, nil
}

// Me returns the user's public record with a fresh access token.
func (s *AuthService) Me(ctx context.Context, userID string) (*ports.AuthResult, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.issueAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	return &ports.AuthResult{AccessToken: accessToken, User: user.Public()}, nil
}

// Logout acknowledges the logout. Tokens are stateless, so there is no
// server-side session to tear down.
func (s *AuthService) Logout(ctx context.Context, userID string) (*ports.LogoutResult, error) {
	s.log.Info().Str("user_id", userID).Msg("user logged out")
	return &ports.LogoutResult{Message: fmt.Sprintf("User %s logged out", userID)}, nil
}

// Refresh validates a refresh token and issues a new access token for
// the user it names.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*ports.AuthResult, error) {
	userID, err := s.parseRefreshToken(refreshToken)
	if err != nil {
		s.log.Warn().Err(err).Msg("refresh rejected: invalid token")
		return nil, domain.ErrInvalidToken
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, fmt.Errorf("refresh lookup: %w", err)
	}

	accessToken, err := s.issueAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	return &ports.AuthResult{AccessToken: accessToken, User: user.Public()}, nil
}
