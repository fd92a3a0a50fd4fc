package requestctx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRequestID(ctx))
	assert.Equal(t, "req-1", GetRequestID(WithRequestID(ctx, "req-1")))
}

func TestSession(t *testing.T) {
	ctx := context.Background()
	_, ok := GetSession(ctx)
	assert.False(t, ok)

	_, ok = GetSession(WithSession(ctx, Session{}))
	assert.False(t, ok)

	session, ok := GetSession(WithSession(ctx, Session{UserID: "u1", Role: "admin", TokenID: "t1"}))
	assert.True(t, ok)
	assert.Equal(t, "admin", session.Role)
}
