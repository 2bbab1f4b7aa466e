package auth

import (
	"context"

	"github.com/GabrielArdy/sigap-backend/internal/entity"
)

type User interface {
	GetByEmail(ctx context.Context, email string) (entity.User, error)
	GetByUserID(ctx context.Context, userID string) (entity.User, error)
}
