package db

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"paydesk/internal/domain/auth"
	"paydesk/internal/platform/config"
)

// Seed ensures the configured administrator account exists. It never
// changes the password of an existing account.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	return ensureAdminUser(ctx, auth.NewStore(pool), cfg.SeedAdminName, cfg.SeedAdminEmail, cfg.SeedAdminPassword)
}

type userStore interface {
	CreateUser(ctx context.Context, user auth.User) (auth.User, error)
	FindUserByEmail(ctx context.Context, email string) (auth.User, error)
}

func ensureAdminUser(ctx context.Context, store userStore, name, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || strings.TrimSpace(password) == "" {
		return nil
	}

	_, err := store.FindUserByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, auth.ErrUserNotFound) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	if strings.TrimSpace(name) == "" {
		name = "Administrator"
	}
	if _, err := store.CreateUser(ctx, auth.User{Name: name, Email: email, PasswordHash: hash, Role: auth.RoleAdmin}); err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			return nil
		}
		return err
	}
	slog.Info("seeded admin user", "email", email)
	return nil
}
