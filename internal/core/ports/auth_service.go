package ports

import (
	"context"

	"github.com/mesafina/restaurant-backend/internal/core/domain"
)

// RegisterInput carries a registration request into the service layer.
// Fields arrive as parsed by the transport; the service normalizes them.
type RegisterInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role,omitempty"`
}

// SignupResult is the response shape for a successful registration.
type SignupResult struct {
	Message string            `json:"message"`
	User    domain.PublicUser `json:"user"`
}

// AuthResult is the response shape for token-bearing operations.
type AuthResult struct {
	AccessToken  string            `json:"accessToken"`
	RefreshToken string            `json:"refreshToken,omitempty"`
	User         domain.PublicUser `json:"user"`
}

// LogoutResult acknowledges a logout.
type LogoutResult struct {
	Message string `json:"message"`
}

// AuthService is the business logic behind the user.* message patterns.
type AuthService interface {
	Signup(ctx context.Context, in RegisterInput) (*SignupResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Me(ctx context.Context, userID string) (*AuthResult, error)
	Logout(ctx context.Context, userID string) (*LogoutResult, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
}
