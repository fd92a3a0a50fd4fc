package auth

import (
	"context"
	"time"
)

type StoreAPI interface {
	CreateUser(ctx context.Context, user User) (User, error)
	FindUserByEmail(ctx context.Context, email string) (User, error)
	RevokeToken(ctx context.Context, tokenID, userID string, expires time.Time) error
	TokenRevoked(ctx context.Context, tokenID string) (bool, error)
}
