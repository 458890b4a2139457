package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenGenerator выпускает access-токены (JWT).
type TokenGenerator interface {
	Generate(ctx context.Context, user User) (string, error)
}

// TokenStore хранит refresh-токены с TTL. Get возвращает id
// пользователя, которому выдан токен.
type TokenStore interface {
	Save(ctx context.Context, token string, userID uuid.UUID, ttl time.Duration) error
	Get(ctx context.Context, token string) (uuid.UUID, error)
	Delete(ctx context.Context, token string) error
}
