// Package health реализует проверку соединения с базой данных.
package health

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/asppibra-dao/core-api/internal/http/middlewarectx"
	"github.com/asppibra-dao/core-api/internal/http/response"
	"github.com/asppibra-dao/core-api/internal/lib/sl"
)

// Handler обрабатывает HTTP-запросы проверки базы данных.
type Handler struct {
	log *slog.Logger
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP godoc
// @Summary Проверка базы данных
// @Description Выполняет живой ping привязанного хранилища.
// @Tags Monitoring
// @Produce json
// @Success 200 {object} response.Response "База данных доступна"
// @Failure 500 {object} response.ErrorResponse "Хранилище не привязано или недоступно"
// @Router /health-db [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	storage, ok := middlewarectx.StorageFromContext(r.Context())
	if !ok {
		log.Error("storage missing from context")
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error connecting to data store"))
		return
	}

	if err := storage.Ping(r.Context()); err != nil {
		log.Error("database ping failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("database unreachable"))
		return
	}

	render.JSON(w, r, response.OK("DB Connected", nil))
}
