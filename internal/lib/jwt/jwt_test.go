package jwt

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_secret_key_1234567890"

func TestJWTMaker_GenerateAndParseToken_ValidCases(t *testing.T) {
	tokenTTL := 15 * time.Minute
	maker := NewJWTMaker(testSecret, tokenTTL)

	tests := []struct {
		name   string
		userID string
		email  string
		role   string
	}{
		{
			name:   "citizen user",
			userID: "9f2c7b1e-0d24-4c0a-8a27-1f6f3f1c2d11",
			email:  "a@b.com",
			role:   "citizen",
		},
		{
			name:   "admin user",
			userID: "1b8f3e72-55aa-4b9f-9a01-cc91d2e4f802",
			email:  "admin@asppibra.com",
			role:   "admin",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := maker.GenerateToken(tt.userID, tt.email, tt.role)
			require.NoError(t, err)
			assert.NotEmpty(t, token)
			assert.Len(t, strings.Split(token, "."), 3)

			claims, err := maker.ParseToken(token)
			require.NoError(t, err)

			assert.Equal(t, tt.userID, claims.Subject)
			assert.Equal(t, tt.email, claims.Email)
			assert.Equal(t, tt.role, claims.Role)
			assert.WithinDuration(t, time.Now(), claims.IssuedAt.Time, time.Second)
			assert.WithinDuration(t, time.Now().Add(tokenTTL), claims.ExpiresAt.Time, time.Second)
		})
	}
}

func TestJWTMaker_ParseToken_Expired(t *testing.T) {
	maker := NewJWTMaker(testSecret, time.Second)

	token, err := maker.GenerateToken("uid", "a@b.com", "citizen")
	require.NoError(t, err)

	time.Sleep(2 * time.Second)

	claims, err := maker.ParseToken(token)
	assert.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	assert.Nil(t, claims)
}

func TestJWTMaker_ParseToken_TamperedSignature(t *testing.T) {
	maker := NewJWTMaker(testSecret, 15*time.Minute)

	token, err := maker.GenerateToken("uid", "a@b.com", "citizen")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	claims, err := maker.ParseToken(tampered)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTMaker_ParseToken_InvalidTokens(t *testing.T) {
	maker := NewJWTMaker(testSecret, 15*time.Minute)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty token", token: ""},
		{name: "malformed token", token: "invalid.token.here"},
		{name: "two segments", token: "only.two"},
		{name: "wrong secret key", token: signedWithWrongSecret(t)},
		{name: "none algorithm", token: noneAlgToken(t)},
		{name: "missing expiry", token: tokenWithoutExpiry(t)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := maker.ParseToken(tt.token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

func signedWithWrongSecret(t *testing.T) string {
	t.Helper()
	other := NewJWTMaker("another_secret_key", 15*time.Minute)
	token, err := other.GenerateToken("uid", "a@b.com", "citizen")
	require.NoError(t, err)
	return token
}

func noneAlgToken(t *testing.T) string {
	t.Helper()
	claims := CustomClaims{
		Email: "a@b.com",
		Role:  "citizen",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "uid",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(15 * time.Minute)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	return signed
}

func tokenWithoutExpiry(t *testing.T) string {
	t.Helper()
	claims := CustomClaims{
		Email: "a@b.com",
		Role:  "citizen",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: "uid",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}
