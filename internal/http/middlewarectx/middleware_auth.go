// Package middlewarectx содержит HTTP middleware шлюза: проверку JWT,
// привязку хранилища к контексту запроса, лимитер и метрики.
//
// JWTMiddleware проверяет наличие и валидность JWT токена в заголовке
// Authorization и кладёт проверенные claims в контекст запроса — дальше
// по цепочке «текущий пользователь» передаётся только явно.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/asppibra-dao/core-api/internal/http/response"
	"github.com/asppibra-dao/core-api/internal/lib/jwt"
	"github.com/asppibra-dao/core-api/internal/lib/sl"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// ClaimsKey — ключ проверенных claims токена в контексте.
	ClaimsKey Key = "claims"
	// StorageKey — ключ привязанного хранилища в контексте.
	StorageKey Key = "storage"
)

// ClaimsFromContext возвращает проверенные claims текущего запроса.
func ClaimsFromContext(ctx context.Context) (*jwt.CustomClaims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(*jwt.CustomClaims)
	return claims, ok
}

// JWTMiddleware возвращает HTTP middleware, который проверяет JWT в заголовке Authorization.
//
// Если токен валиден, кладёт claims в контекст запроса,
// иначе возвращает ошибку с HTTP статусом 401 Unauthorized.
func JWTMiddleware(jwtMaker jwt.Maker, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"
			authHeader := r.Header.Get("Authorization")

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("missing or invalid authorization header")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := jwtMaker.ParseToken(tokenStr)
			if err != nil {
				log.Error("invalid or expired token", sl.Err(err))
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}
			ctx := context.WithValue(r.Context(), ClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
