// Package signup реализует HTTP-обработчик регистрации пользователей
// с немедленной выдачей токена сессии.
package signup

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

// Request — структура входных данных для регистрации.
type Request struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	SignUp(ctx context.Context, email, password, firstName, lastName string) (string, *models.PublicUser, error)
}

// Handler обрабатывает HTTP-запросы регистрации.
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
// @Summary Регистрация пользователя
// @Description Создает пользователя и сразу выдает JWT сессии.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body Request true "Данные нового пользователя"
// @Success 200 {object} response.Response "Токен и публичный профиль"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 409 {object} response.ErrorResponse "Email уже занят"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /auth/sign-up [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.signup"

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

	token, user, err := h.auth.SignUp(r.Context(), req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		if errors.Is(err, authservice.ErrEmailTaken) {
			log.Info("sign up rejected, email taken", slog.String("email", req.Email))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("email already in use"))
			return
		}
		log.Error("sign up failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to create account"))
		return
	}

	log.Info("sign up success", slog.String("email", user.Email))
	render.JSON(w, r, response.OK("user created successfully", map[string]any{
		"accessToken": token,
		"user":        user,
	}))
}
