// Package read реализует HTTP-обработчик чтения одного поста по заголовку.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/asppibra-dao/core-api/internal/http/response"
	"github.com/asppibra-dao/core-api/internal/lib/sl"
	"github.com/asppibra-dao/core-api/internal/models"
	postservice "github.com/asppibra-dao/core-api/internal/services/post"
)

// Service описывает интерфейс чтения поста.
type Service interface {
	GetByTitle(ctx context.Context, title string) (*models.Post, error)
}

// Handler обрабатывает HTTP-запросы чтения поста.
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
// @Summary Пост по заголовку
// @Description Возвращает один опубликованный пост по точному заголовку.
// @Tags Posts
// @Produce json
// @Param title path string true "Заголовок поста"
// @Success 200 {object} response.Response "Пост"
// @Failure 404 {object} response.ErrorResponse "Пост не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /post/{title} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.post.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	// chi уже декодировал percent-encoding сегмента пути.
	title := chi.URLParam(r, "title")

	post, err := h.posts.GetByTitle(r.Context(), title)
	if err != nil {
		if errors.Is(err, postservice.ErrNotFound) {
			log.Info("post not found", slog.String("title", title))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("post not found"))
			return
		}
		log.Error("failed to read post", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to read post"))
		return
	}

	log.Info("post retrieved", slog.String("title", post.Title))
	render.JSON(w, r, response.OK("post retrieved successfully", map[string]any{"post": post}))
}
