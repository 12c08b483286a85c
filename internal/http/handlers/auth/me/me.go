// Package me реализует HTTP-обработчик выдачи профиля текущего пользователя
// по проверенному токену сессии.
package me

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/asppibra-dao/core-api/internal/http/middlewarectx"
	"github.com/asppibra-dao/core-api/internal/http/response"
	"github.com/asppibra-dao/core-api/internal/lib/sl"
	"github.com/asppibra-dao/core-api/internal/models"
	authservice "github.com/asppibra-dao/core-api/internal/services/auth"
)

// Service описывает интерфейс получения профиля по идентификатору.
type Service interface {
	Me(ctx context.Context, userID string) (*models.PublicUser, error)
}

// Handler обрабатывает HTTP-запросы профиля текущего пользователя.
type Handler struct {
	log  *slog.Logger
	auth Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, auth Service) *Handler {
	return &Handler{
		log:  log,
		auth: auth,
	}
}

// ServeHTTP godoc
// @Summary Профиль текущего пользователя
// @Description Возвращает актуальный публичный профиль по subject токена.
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response "Публичный профиль"
// @Failure 401 {object} response.ErrorResponse "Токен отсутствует, просрочен или пользователь удален"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /auth/me [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.me"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	claims, ok := middlewarectx.ClaimsFromContext(r.Context())
	if !ok {
		log.Error("claims missing from context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("authentication required"))
		return
	}

	user, err := h.auth.Me(r.Context(), claims.Subject)
	if err != nil {
		// Пользователь мог быть удален после выдачи токена.
		if errors.Is(err, authservice.ErrUserNotFound) {
			log.Info("token subject no longer exists", slog.String("user_id", claims.Subject))
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("user not found"))
			return
		}
		log.Error("failed to load user profile", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to load profile"))
		return
	}

	render.JSON(w, r, response.OK("user profile", map[string]any{"user": user}))
}
