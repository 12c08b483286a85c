// Package post содержит логику чтения каталога публикаций через кэш.
package post

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/asppibra-dao/core-api/internal/lib/sl"
	"github.com/asppibra-dao/core-api/internal/models"
	"github.com/asppibra-dao/core-api/internal/storage/repository"
)

// ErrNotFound возвращается, если публикация с таким заголовком отсутствует.
var ErrNotFound = errors.New("post not found")

const (
	listCacheKey  = "posts:list"
	cacheTTL      = 5 * time.Minute
	postKeyPrefix = "posts:title:"
)

// PostRepository описывает контракт чтения публикаций из хранилища.
type PostRepository interface {
	ListPosts(ctx context.Context) ([]*models.Post, error)
	GetPostByTitle(ctx context.Context, title string) (*models.Post, error)
}

// Cache описывает используемое подмножество кэша.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// Service отдаёт каталог публикаций, прозрачно кэшируя ответы хранилища.
// Каталог read-only, поэтому инвалидация не нужна — достаточно TTL.
type Service struct {
	posts PostRepository
	cache Cache
	log   *slog.Logger
}

// New создает новый экземпляр Service. cache может быть nil.
func New(posts PostRepository, cache Cache, log *slog.Logger) *Service {
	return &Service{
		posts: posts,
		cache: cache,
		log:   log,
	}
}

// List возвращает все опубликованные записи каталога.
func (s *Service) List(ctx context.Context) ([]*models.Post, error) {
	const op = "services.post.List"

	var cached []*models.Post
	if s.cacheGet(ctx, listCacheKey, &cached) {
		return cached, nil
	}

	posts, err := s.posts.ListPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.cacheSet(ctx, listCacheKey, posts)
	return posts, nil
}

// GetByTitle возвращает публикацию по точному заголовку.
func (s *Service) GetByTitle(ctx context.Context, title string) (*models.Post, error) {
	const op = "services.post.GetByTitle"

	var cached models.Post
	if s.cacheGet(ctx, postKeyPrefix+title, &cached) {
		return &cached, nil
	}

	post, err := s.posts.GetPostByTitle(ctx, title)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.cacheSet(ctx, postKeyPrefix+title, post)
	return post, nil
}

func (s *Service) cacheGet(ctx context.Context, key string, result any) bool {
	if s.cache == nil {
		return false
	}
	found, err := s.cache.Get(ctx, key, result)
	if err != nil {
		s.log.Warn("cache read failed", slog.String("key", key), sl.Err(err))
		return false
	}
	return found
}

func (s *Service) cacheSet(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, cacheTTL); err != nil {
		s.log.Warn("cache write failed", slog.String("key", key), sl.Err(err))
	}
}
