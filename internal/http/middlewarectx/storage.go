package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/asppibra-dao/core-api/internal/http/response"
	"github.com/asppibra-dao/core-api/internal/storage/repository"
)

// StorageFromContext возвращает хранилище, привязанное к запросу.
func StorageFromContext(ctx context.Context) (*repository.Storage, bool) {
	db, ok := ctx.Value(StorageKey).(*repository.Storage)
	return db, ok
}

// StorageMiddleware привязывает живой дескриптор хранилища к контексту
// каждого запроса. Если дескриптора нет (деградированный старт),
// запрос завершается 500 без обращения к обработчику.
func StorageMiddleware(db *repository.Storage, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.StorageMiddleware"

			if db == nil {
				log.Error("no storage handle available",
					slog.String("op", op),
					slog.String("request_id", middleware.GetReqID(r.Context())),
				)
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal error connecting to data store"))
				return
			}
			ctx := context.WithValue(r.Context(), StorageKey, db)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
