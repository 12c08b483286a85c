package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/asppibra-dao/core-api/internal/models"
)

// uniqueViolation — код ошибки PostgreSQL 23505 (unique_violation).
const uniqueViolation = "23505"

// RegisterUser сохраняет нового пользователя и возвращает запись из базы
// с заполненными временными метками. Дубликат email или адреса кошелька
// транслируется в ErrUserExists.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (*models.User, error) {
	const op = "storage.RegisterUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (id, first_name, last_name, email, password_hash,
			      wallet_address, role)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING created_at, updated_at;`
	created := user
	if err := s.DB.QueryRowContext(ctx, query,
		user.ID, user.FirstName, user.LastName, user.Email, user.PasswordHash,
		user.WalletAddress, user.Role).Scan(&created.CreatedAt, &created.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, fmt.Errorf("%s: %w", op, ErrUserExists)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &created, nil
}

// GetUserByEmail возвращает пользователя по email или ErrUserNotFound.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, first_name, last_name, email, password_hash,
			      wallet_address, role, created_at, updated_at
			  FROM users
			  WHERE email = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, email), op)
}

// GetUserByID возвращает пользователя по его UUID или ErrUserNotFound.
func (s *Storage) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	const op = "storage.GetUserByID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, first_name, last_name, email, password_hash,
			      wallet_address, role, created_at, updated_at
			  FROM users
			  WHERE id = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, id), op)
}

func (s *Storage) scanUser(row *sql.Row, op string) (*models.User, error) {
	u := &models.User{}
	var wallet sql.NullString
	if err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash,
		&wallet, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if wallet.Valid {
		u.WalletAddress = &wallet.String
	}
	return u, nil
}
