// Package coreapi собирает HTTP-шлюз: хранилище, миграции, кэш, очередь
// аудита, сервисы и маршруты — и управляет жизненным циклом сервера.
package coreapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/asppibra-dao/core-api/internal/cache"
	"github.com/asppibra-dao/core-api/internal/config"
	"github.com/asppibra-dao/core-api/internal/http/cors"
	"github.com/asppibra-dao/core-api/internal/lib/jwt"
	"github.com/asppibra-dao/core-api/internal/lib/rabbitmq"
	"github.com/asppibra-dao/core-api/internal/lib/sl"
	"github.com/asppibra-dao/core-api/internal/migrations"
	authservice "github.com/asppibra-dao/core-api/internal/services/auth"
	monservice "github.com/asppibra-dao/core-api/internal/services/monitoring"
	postservice "github.com/asppibra-dao/core-api/internal/services/post"
	"github.com/asppibra-dao/core-api/internal/storage/repository"
)

// App — собранный HTTP-шлюз с ресурсами, которые надо закрыть при останове.
type App struct {
	server   *http.Server
	logger   *slog.Logger
	db       *repository.Storage
	cache    *cache.Cache
	amqpConn *amqp.Connection
}

// New инициализирует зависимости шлюза и собирает маршрутизатор.
// Redis и RabbitMQ опциональны: без них шлюз стартует в деградированном
// режиме — без кэша и без аудит-событий.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	var cacheRedis *cache.Cache
	if cfg.RedisConnection.AddressRedis != "" {
		cacheRedis, err = cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			logger.Warn("redis unavailable, continuing without cache", sl.Err(err))
			cacheRedis = nil
		}
	}

	var amqpConn *amqp.Connection
	var auditPublisher *rabbitmq.AuditPublisher
	if cfg.RabbitMQ.ConnectionString != "" {
		amqpConn, err = rabbitmq.Connect(cfg.RabbitMQ.ConnectionString, cfg.RabbitMQ.Retries, cfg.RabbitMQ.RetryDelay)
		if err != nil {
			logger.Warn("rabbitmq unavailable, continuing without audit events", sl.Err(err))
		} else {
			ch, chErr := rabbitmq.SetupChannel(amqpConn)
			if chErr != nil {
				logger.Warn("failed to setup rabbitmq channel", sl.Err(chErr))
			} else {
				auditPublisher = rabbitmq.NewAuditPublisher(ch)
			}
		}
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTToken.JWTSecretKey, cfg.JWTToken.TokenTTL)

	var events authservice.EventPublisher
	if auditPublisher != nil {
		events = auditPublisher
	}
	authSvc := authservice.New(db, jwtMaker, events, logger)

	var postCache postservice.Cache
	var monCache monservice.Cache
	if cacheRedis != nil {
		postCache = cacheRedis
		monCache = cacheRedis
	}
	postSvc := postservice.New(db, postCache, logger)
	monSvc := monservice.New(cfg.Analytics, monCache, logger)

	corsPolicy := cors.NewPolicy(cfg.CORSPolicy)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, db, corsPolicy, jwtMaker, authSvc, postSvc, monSvc)

	srv := &http.Server{
		Addr:         cfg.HTTPServer.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.TimeoutHTTP,
		WriteTimeout: cfg.HTTPServer.TimeoutHTTP,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	return &App{
		server:   srv,
		logger:   logger,
		db:       db,
		cache:    cacheRedis,
		amqpConn: amqpConn,
	}, nil
}

// Run запускает HTTP-сервер и блокируется до отмены контекста или ошибки.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close database", sl.Err(err))
	}
	if a.cache != nil {
		if err := a.cache.Db.Close(); err != nil {
			a.logger.Error("failed to close redis client", sl.Err(err))
		}
	}
	if a.amqpConn != nil {
		if err := a.amqpConn.Close(); err != nil {
			a.logger.Error("failed to close rabbitmq connection", sl.Err(err))
		}
	}
}
