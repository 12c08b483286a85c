// Package list реализует HTTP-обработчик списка опубликованных постов.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/asppibra-dao/core-api/internal/http/response"
	"github.com/asppibra-dao/core-api/internal/lib/sl"
	"github.com/asppibra-dao/core-api/internal/models"
)

// Service описывает интерфейс каталога постов.
type Service interface {
	List(ctx context.Context) ([]*models.Post, error)
}

// Handler обрабатывает HTTP-запросы списка постов.
type Handler struct {
	log   *slog.Logger
	posts Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, posts Service) *Handler {
	return &Handler{
		log:   log,
		posts: posts,
	}
}

// ServeHTTP godoc
// @Summary Список постов
// @Description Возвращает опубликованные посты, новые первыми.
// @Tags Posts
// @Produce json
// @Success 200 {object} response.Response "Список постов"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /post/list [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.post.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	posts, err := h.posts.List(r.Context())
	if err != nil {
		log.Error("failed to list posts", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list posts"))
		return
	}

	// Пустой каталог — это пустой список, а не null.
	if posts == nil {
		posts = []*models.Post{}
	}

	log.Info("posts listed", slog.Int("count", len(posts)))
	render.JSON(w, r, response.OK("posts retrieved successfully", map[string]any{"posts": posts}))
}
