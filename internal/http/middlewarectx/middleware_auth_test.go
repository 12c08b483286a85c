package middlewarectx

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asppibra-dao/core-api/internal/lib/jwt"
)

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestJWTMiddleware(t *testing.T) {
	maker := jwt.NewJWTMaker("test_secret_key_1234567890", 15*time.Minute)
	expiredMaker := jwt.NewJWTMaker("test_secret_key_1234567890", -time.Minute)

	validToken, err := maker.GenerateToken("uid-1", "a@b.com", "citizen")
	require.NoError(t, err)
	expiredToken, err := expiredMaker.GenerateToken("uid-1", "a@b.com", "citizen")
	require.NoError(t, err)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
		wantNext   bool
	}{
		{
			name:       "valid token",
			authHeader: "Bearer " + validToken,
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
		{
			name:       "missing header",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong prefix",
			authHeader: "Token " + validToken,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "expired token",
			authHeader: "Bearer " + expiredToken,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "garbage token",
			authHeader: "Bearer not.a.token",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				claims, ok := ClaimsFromContext(r.Context())
				require.True(t, ok)
				assert.Equal(t, "uid-1", claims.Subject)
				assert.Equal(t, "a@b.com", claims.Email)
				w.WriteHeader(http.StatusOK)
			})

			handler := JWTMiddleware(maker, newNoopLogger())(next)

			req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantNext, nextCalled)

			if tt.wantStatus == http.StatusUnauthorized {
				var got map[string]any
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
				assert.Equal(t, false, got["success"])
				assert.NotEmpty(t, got["message"])
			}
		})
	}
}

func TestStorageMiddleware_NilStorage(t *testing.T) {
	next := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		t.Fatal("handler must not be reached without a storage handle")
	})
	handler := StorageMiddleware(nil, newNoopLogger())(next)

	req := httptest.NewRequest(http.MethodGet, "/health-db", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var got map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, false, got["success"])
}
