// Package repository реализует хранилище данных на основе PostgreSQL
// для учетных записей пользователей и каталога публикаций.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Ошибки уровня хранилища. Сервисы сравнивают их через errors.Is
// и транслируют в HTTP-статусы на внешней границе.
var (
	// ErrUserExists возвращается при нарушении уникальности email или кошелька.
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound возвращается, если пользователь не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrPostNotFound возвращается, если публикация не найдена.
	ErrPostNotFound = errors.New("post not found")
)

// Storage инкапсулирует соединение с базой данных PostgreSQL.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// Ping проверяет готовность базы данных. Используется liveness-пробой.
func (s *Storage) Ping(ctx context.Context) error {
	const op = "storage.Ping"
	if err := s.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close закрывает пул соединений.
func (s *Storage) Close() error {
	return s.DB.Close()
}
