package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = strings.Repeat("k", 32)

func TestTokens_IssueAndParse(t *testing.T) {
	tokens := NewTokens(secret)

	raw, err := tokens.Issue("ops@example.com", "admin", time.Hour)
	require.NoError(t, err)

	claims, err := tokens.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "ops@example.com", claims.Subject)
	assert.Equal(t, "admin", claims.Role)
	assert.True(t, claims.IsAdmin())
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestTokens_Issue_UnknownRole(t *testing.T) {
	_, err := NewTokens(secret).Issue("someone", "root", time.Hour)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown role")
}

func TestTokens_Parse_Rejects(t *testing.T) {
	tokens := NewTokens(secret)

	expired := NewTokens(secret)
	expired.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }
	expiredRaw, err := expired.Issue("someone", "user", time.Hour)
	require.NoError(t, err)

	otherRaw, err := NewTokens(strings.Repeat("x", 32)).Issue("someone", "user", time.Hour)
	require.NoError(t, err)

	noneRaw, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "someone",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExpRaw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role:             "admin",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "someone"},
	}).SignedString([]byte(secret))
	require.NoError(t, err)

	tests := []struct {
		name string
		raw  string
	}{
		{name: "Garbage", raw: "not.a.token"},
		{name: "Expired", raw: expiredRaw},
		{name: "Wrong secret", raw: otherRaw},
		{name: "Unsigned", raw: noneRaw},
		{name: "No expiry", raw: noExpRaw},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := tokens.Parse(tt.raw)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Nil(t, claims)
		})
	}
}

func TestClaimsContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	ctx := WithClaims(context.Background(), &Claims{Role: "user"})
	claims, ok := FromContext(ctx)
	require.True(t, ok)
	assert.False(t, claims.IsAdmin())
}
