package requestctx

import (
	"context"
	"time"
)

type ctxKey string

const (
	requestIDKey ctxKey = "request_id"
	sessionKey   ctxKey = "session"
)

// Session is the authenticated caller of one request. It is populated by the
// auth middleware from a bearer token and ends when the token expires or is
// revoked at logout.
type Session struct {
	UserID    string
	Role      string
	TokenID   string
	ExpiresAt time.Time
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func GetRequestID(ctx context.Context) string {
	if value, ok := ctx.Value(requestIDKey).(string); ok {
		return value
	}
	return ""
}

func WithSession(ctx context.Context, session Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

func GetSession(ctx context.Context) (Session, bool) {
	session, ok := ctx.Value(sessionKey).(Session)
	return session, ok && session.UserID != ""
}
