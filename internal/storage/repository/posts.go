package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/asppibra-dao/core-api/internal/models"
)

// ListPosts возвращает все опубликованные записи каталога.
func (s *Storage) ListPosts(ctx context.Context) ([]*models.Post, error) {
	const op = "storage.ListPosts"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, content, description, category, cover_url,
			      author_name, is_published, total_views, created_at
			  FROM posts
			  WHERE is_published = TRUE
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Post
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.Description, &p.Category,
			&p.CoverURL, &p.AuthorName, &p.IsPublished, &p.TotalViews, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetPostByTitle возвращает публикацию по точному заголовку или ErrPostNotFound.
func (s *Storage) GetPostByTitle(ctx context.Context, title string) (*models.Post, error) {
	const op = "storage.GetPostByTitle"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, content, description, category, cover_url,
			      author_name, is_published, total_views, created_at
			  FROM posts
			  WHERE title = $1`
	var p models.Post
	if err := s.DB.QueryRowContext(ctx, query, title).Scan(&p.ID, &p.Title, &p.Content,
		&p.Description, &p.Category, &p.CoverURL, &p.AuthorName, &p.IsPublished,
		&p.TotalViews, &p.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrPostNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}
