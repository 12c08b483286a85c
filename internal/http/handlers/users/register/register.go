// Package register реализует HTTP-обработчик регистрации пользователя
// без выдачи токена: полное имя одной строкой и необязательный адрес кошелька.
package register

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

// Request — структура входных данных для регистрации участника.
type Request struct {
	Name          string  `json:"name" validate:"required,min=3"`
	Email         string  `json:"email" validate:"required,email"`
	Password      string  `json:"password" validate:"required,min=8"`
	WalletAddress *string `json:"walletAddress" validate:"omitempty,startswith=0x"`
}

// Service описывает интерфейс бизнес-логики регистрации участника.
type Service interface {
	Register(ctx context.Context, name, email, password string, walletAddress *string) (*models.PublicUser, error)
}

// Handler обрабатывает HTTP-запросы регистрации участника.
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
// @Summary Регистрация участника
// @Description Создает пользователя без выдачи токена сессии.
// @Tags Users
// @Accept json
// @Produce json
// @Param request body Request true "Данные участника"
// @Success 201 {object} response.Response "Публичный профиль"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 409 {object} response.ErrorResponse "Email уже занят"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /users/register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.register"

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

	user, err := h.auth.Register(r.Context(), req.Name, req.Email, req.Password, req.WalletAddress)
	if err != nil {
		if errors.Is(err, authservice.ErrEmailTaken) {
			log.Info("registration rejected, email taken", slog.String("email", req.Email))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("email already in use"))
			return
		}
		log.Error("registration failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to register user"))
		return
	}

	log.Info("user registered", slog.String("email", user.Email))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OK("user registered successfully", map[string]any{"user": user}))
}
