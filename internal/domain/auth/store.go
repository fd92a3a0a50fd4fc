package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) CreateUser(ctx context.Context, user User) (User, error) {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO users (name, email, password_hash, role)
    VALUES ($1, $2, $3, $4)
    RETURNING id, created_at
  `, user.Name, user.Email, user.PasswordHash, user.Role).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return User{}, ErrEmailTaken
		}
		return User{}, err
	}
	return user, nil
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (User, error) {
	var user User
	err := s.DB.QueryRow(ctx, `
    SELECT id, name, email, password_hash, role, created_at
    FROM users
    WHERE email = $1
  `, email).Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	return user, err
}

func (s *Store) RevokeToken(ctx context.Context, tokenID, userID string, expires time.Time) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO revoked_tokens (token_id, user_id, expires_at)
    VALUES ($1, $2, $3)
    ON CONFLICT (token_id) DO NOTHING
  `, tokenID, userID, expires)
	return err
}

func (s *Store) TokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM revoked_tokens
    WHERE token_id = $1
  `, tokenID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// PurgeRevoked drops revocations whose tokens have expired anyway.
func (s *Store) PurgeRevoked(ctx context.Context, now time.Time) (int64, error) {
	tag, err := s.DB.Exec(ctx, `DELETE FROM revoked_tokens WHERE expires_at < $1`, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
