// Package auth содержит бизнес-логику аутентификации: регистрацию,
// вход и получение текущего пользователя по claims токена.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/asppibra-dao/core-api/internal/lib/jwt"
	"github.com/asppibra-dao/core-api/internal/lib/password"
	"github.com/asppibra-dao/core-api/internal/lib/sl"
	"github.com/asppibra-dao/core-api/internal/models"
	"github.com/asppibra-dao/core-api/internal/storage/repository"
)

// Типизированные ошибки сервиса. Обработчики транслируют их в HTTP-статусы.
var (
	// ErrInvalidCredentials возвращается и при неизвестном email, и при
	// неверном пароле — случаи намеренно неразличимы.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken возвращается при попытке регистрации с занятым email
	// или адресом кошелька.
	ErrEmailTaken = errors.New("email already in use")
	// ErrUserNotFound возвращается, если пользователь из claims исчез из хранилища.
	ErrUserNotFound = errors.New("user not found")
)

// defaultRole — роль, присваиваемая при регистрации.
const defaultRole = "citizen"

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	RegisterUser(ctx context.Context, user models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// EventPublisher публикует аудит-события. Публикация best effort:
// ошибка публикации логируется, но не роняет запрос.
type EventPublisher interface {
	Publish(event models.AuditEvent) error
}

// Service отвечает за регистрацию, вход и выдачу данных текущего пользователя.
type Service struct {
	users    UserRepository
	jwtMaker jwt.Maker
	events   EventPublisher
	log      *slog.Logger
}

// New создает новый экземпляр Service. events может быть nil —
// тогда аудит-события не публикуются.
func New(users UserRepository, jwtMaker jwt.Maker, events EventPublisher, log *slog.Logger) *Service {
	return &Service{
		users:    users,
		jwtMaker: jwtMaker,
		events:   events,
		log:      log,
	}
}

// SignUp создает нового пользователя с хэшированием пароля и дефолтной ролью,
// выполняет ровно одну вставку и сразу выдает токен сессии.
func (s *Service) SignUp(ctx context.Context, email, rawPassword, firstName, lastName string) (string, *models.PublicUser, error) {
	const op = "services.auth.SignUp"

	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return "", nil, fmt.Errorf("%s: %w", op, ErrEmailTaken)
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	user := models.User{
		ID:           uuid.New().String(),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: hashed,
		Role:         defaultRole,
	}
	created, err := s.users.RegisterUser(ctx, user)
	if err != nil {
		// Гонка двух регистраций разрешается ограничением уникальности.
		if errors.Is(err, repository.ErrUserExists) {
			return "", nil, fmt.Errorf("%s: %w", op, ErrEmailTaken)
		}
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.jwtMaker.GenerateToken(created.ID, created.Email, created.Role)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	s.publish("auth.sign_up", created)

	public := created.Public()
	return token, &public, nil
}

// SignIn проверяет пароль пользователя и выдает токен сессии.
// Неизвестный email и неверный пароль дают одну и ту же ошибку.
func (s *Service) SignIn(ctx context.Context, email, rawPassword string) (string, *models.PublicUser, error) {
	const op = "services.auth.SignIn"

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	if !password.Verify(user.PasswordHash, rawPassword) {
		return "", nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, err := s.jwtMaker.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	s.publish("auth.sign_in", user)

	public := user.Public()
	return token, &public, nil
}

// Register создает пользователя без выдачи токена сессии — вариант
// регистрации для административного маршрута /users/register.
// Переданное имя делится на имя и фамилию по первому пробелу.
func (s *Service) Register(ctx context.Context, name, email, rawPassword string, walletAddress *string) (*models.PublicUser, error) {
	const op = "services.auth.Register"

	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrEmailTaken)
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	firstName, lastName := splitName(name)
	user := models.User{
		ID:            uuid.New().String(),
		FirstName:     firstName,
		LastName:      lastName,
		Email:         email,
		PasswordHash:  hashed,
		WalletAddress: walletAddress,
		Role:          defaultRole,
	}
	created, err := s.users.RegisterUser(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return nil, fmt.Errorf("%s: %w", op, ErrEmailTaken)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.publish("user.register", created)

	public := created.Public()
	return &public, nil
}

func splitName(name string) (string, string) {
	first, last, found := strings.Cut(name, " ")
	if !found {
		return name, ""
	}
	return first, last
}

// Me перечитывает пользователя по subject проверенного токена, чтобы
// отдать актуальную роль и имена, а не слепок из claims.
func (s *Service) Me(ctx context.Context, userID string) (*models.PublicUser, error) {
	const op = "services.auth.Me"

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	public := user.Public()
	return &public, nil
}

func (s *Service) publish(action string, user *models.User) {
	if s.events == nil {
		return
	}
	event := models.AuditEvent{
		ID:         uuid.New().String(),
		Action:     action,
		UserID:     user.ID,
		Email:      user.Email,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.events.Publish(event); err != nil {
		s.log.Error("failed to publish audit event", slog.String("action", action), sl.Err(err))
	}
}
