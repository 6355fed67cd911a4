package repo

import (
	"context"

	"github.com/Miraines/MoonyAndStarry/contacts-service/internal/domain/auth/model"
	"github.com/google/uuid"
)

type UserRepo interface {
	CreateUser(ctx context.Context, u model.User) (uuid.UUID, error)

	// GetUserByEmail matches case-insensitively.
	GetUserByEmail(ctx context.Context, email string) (model.User, error)

	GetUserByID(ctx context.Context, id uuid.UUID) (model.User, error)

	// UpdateRefreshToken overwrites the stored refresh token, nil clears it.
	UpdateRefreshToken(ctx context.Context, id uuid.UUID, token *string) error

	// RotateRefreshToken replaces old with new only if old is still the
	// stored value; returns ErrStaleRefreshToken when it is not.
	RotateRefreshToken(ctx context.Context, id uuid.UUID, old, new string) error

	SetConfirmed(ctx context.Context, id uuid.UUID) error

	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error

	UpdateAvatar(ctx context.Context, id uuid.UUID, url string) (model.User, error)
}
