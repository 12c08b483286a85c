package coreapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	"github.com/asppibra-dao/core-api/internal/config"
	"github.com/asppibra-dao/core-api/internal/http/cors"
	"github.com/asppibra-dao/core-api/internal/http/handlers/auth/me"
	"github.com/asppibra-dao/core-api/internal/http/handlers/auth/signin"
	"github.com/asppibra-dao/core-api/internal/http/handlers/auth/signup"
	"github.com/asppibra-dao/core-api/internal/http/handlers/dashboard"
	"github.com/asppibra-dao/core-api/internal/http/handlers/health"
	monhandler "github.com/asppibra-dao/core-api/internal/http/handlers/monitoring"
	"github.com/asppibra-dao/core-api/internal/http/handlers/post/list"
	"github.com/asppibra-dao/core-api/internal/http/handlers/post/read"
	"github.com/asppibra-dao/core-api/internal/http/handlers/users/register"
	"github.com/asppibra-dao/core-api/internal/http/middlewarectx"
	"github.com/asppibra-dao/core-api/internal/http/response"
	"github.com/asppibra-dao/core-api/internal/lib/jwt"
	authservice "github.com/asppibra-dao/core-api/internal/services/auth"
	monservice "github.com/asppibra-dao/core-api/internal/services/monitoring"
	postservice "github.com/asppibra-dao/core-api/internal/services/post"
	"github.com/asppibra-dao/core-api/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты шлюза. Каждая конечная точка
// доступна и по голому пути, и под префиксом /api/v1 — маршрутизация
// обоих вариантов идентична.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config,
	db *repository.Storage, corsPolicy *cors.Policy, jwtMaker jwt.Maker,
	authSvc *authservice.Service, postSvc *postservice.Service, monSvc *monservice.Service,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		cors.Middleware(corsPolicy),
		middlewarectx.MetricsMiddleware,
		middlewarectx.StorageMiddleware(db, logger),
	)

	limiter := rate.NewLimiter(rate.Limit(10), 20)

	endpoints := func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/sign-up", signup.New(logger, authSvc).ServeHTTP)
		r.Post("/auth/sign-in", signin.New(logger, authSvc).ServeHTTP)
		r.Post("/users/register", register.New(logger, authSvc).ServeHTTP)
		r.Get("/post/list", list.New(logger, postSvc).ServeHTTP)
		r.Get("/post/{title}", read.New(logger, postSvc).ServeHTTP)
		r.Get("/health-db", health.New(logger).ServeHTTP)
		r.Get("/monitoring", monhandler.New(logger, monSvc).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger, limiter))
			r.Get("/auth/me", me.New(logger, authSvc).ServeHTTP)
		})
	}

	endpoints(r)
	r.Route("/api/v1", endpoints)

	r.Get("/", dashboard.New(logger, "ASPPIBRA DAO Core API", cfg.Env).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("route not found"))
	})
}
