package auth

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"paydesk/internal/requestctx"
)

const minPasswordLength = 8

type Service struct {
	store  StoreAPI
	secret string
	ttl    time.Duration
}

func NewService(store StoreAPI, secret string, ttl time.Duration) *Service {
	return &Service{store: store, secret: secret, ttl: ttl}
}

// Register creates a viewer account. Roles are raised by an administrator.
func (s *Service) Register(ctx context.Context, in Registration) (User, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return User{}, ErrInvalidName
	}
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return User{}, err
	}
	if len(in.Password) < minPasswordLength {
		return User{}, ErrWeakPassword
	}
	hash, err := HashPassword(in.Password)
	if err != nil {
		return User{}, err
	}
	return s.store.CreateUser(ctx, User{Name: name, Email: email, PasswordHash: hash, Role: RoleViewer})
}

func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return Session{}, ErrInvalidCredentials
	}
	user, err := s.store.FindUserByEmail(ctx, normalized)
	if errors.Is(err, ErrUserNotFound) {
		return Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, err
	}
	if err := CheckPassword(user.PasswordHash, password); err != nil {
		return Session{}, ErrInvalidCredentials
	}
	token, claims, err := GenerateToken(s.secret, Claims{UserID: user.ID, Role: user.Role}, s.ttl)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, ExpiresAt: claims.ExpiresAt.Time, User: user}, nil
}

// Logout revokes the token of the current session.
func (s *Service) Logout(ctx context.Context, session requestctx.Session) error {
	if session.TokenID == "" {
		return nil
	}
	return s.store.RevokeToken(ctx, session.TokenID, session.UserID, session.ExpiresAt)
}

// Authenticate turns a bearer token into a session, rejecting revoked tokens.
func (s *Service) Authenticate(ctx context.Context, token string) (requestctx.Session, error) {
	claims, err := ParseToken(s.secret, token)
	if err != nil {
		return requestctx.Session{}, err
	}
	revoked, err := s.store.TokenRevoked(ctx, claims.ID)
	if err != nil {
		return requestctx.Session{}, err
	}
	if revoked {
		return requestctx.Session{}, errors.New("token revoked")
	}
	session := requestctx.Session{UserID: claims.UserID, Role: claims.Role, TokenID: claims.ID}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}
	return session, nil
}

func normalizeEmail(raw string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return "", ErrInvalidEmail
	}
	return value, nil
}
