// Package signin реализует HTTP-обработчик входа по email и паролю.
package signin

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/asppibra-dao/core-api/internal/http/response"
	"github.com/asppibra-dao/core-api/internal/lib/sl"
	"github.com/asppibra-dao/core-api/internal/models"
	authservice "github.com/asppibra-dao/core-api/internal/services/auth"
)

// Request — структура входных данных для входа.
type Request struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Service описывает интерфейс бизнес-логики входа.
type Service interface {
	SignIn(ctx context.Context, email, password string) (string, *models.PublicUser, error)
}

// Handler обрабатывает HTTP-запросы входа.
type Handler struct {
	log      *slog.Logger
	auth     Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, auth Service) *Handler {
	return &Handler{
		log:      log,
		auth:     auth,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Вход пользователя
// @Description Проверяет email и пароль и выдает JWT сессии.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body Request true "Учетные данные"
// @Success 200 {object} response.Response "Токен и публичный профиль"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Неверные учетные данные"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /auth/sign-in [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.signin"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	token, user, err := h.auth.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, authservice.ErrInvalidCredentials) {
			// Одно сообщение и для неизвестного email, и для неверного пароля.
			log.Info("sign in rejected", slog.String("email", req.Email))
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("invalid email or password"))
			return
		}
		log.Error("sign in failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to sign in"))
		return
	}

	log.Info("sign in success", slog.String("email", user.Email))
	render.JSON(w, r, response.OK("login successful", map[string]any{
		"accessToken": token,
		"user":        user,
	}))
}
