package ports

import (
	"context"

	"github.com/mesafina/restaurant-backend/internal/core/domain"
)

// UserRepository defines the interface for user persistence.
//
// FindByEmail expects an already normalized email (lowercased, trimmed).
// Create must return domain.ErrEmailExists when the store's unique index
// rejects the email, and domain.ErrInvalidData on any other constraint
// violation, so callers can classify failures without knowing the engine.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
