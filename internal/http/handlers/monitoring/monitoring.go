// Package monitoring реализует HTTP-обработчик снимка метрик трафика.
package monitoring

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/asppibra-dao/core-api/internal/http/response"
	"github.com/asppibra-dao/core-api/internal/lib/sl"
	monservice "github.com/asppibra-dao/core-api/internal/services/monitoring"
)

// Service описывает интерфейс получения снимка метрик.
type Service interface {
	Fetch(ctx context.Context) (*monservice.Snapshot, error)
}

// Handler обрабатывает HTTP-запросы снимка метрик.
type Handler struct {
	log     *slog.Logger
	metrics Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, metrics Service) *Handler {
	return &Handler{
		log:     log,
		metrics: metrics,
	}
}

// ServeHTTP godoc
// @Summary Снимок метрик трафика
// @Description Возвращает метрики за последние сутки от аналитического провайдера.
// @Tags Monitoring
// @Produce json
// @Success 200 {object} response.Response "Снимок метрик"
// @Failure 500 {object} response.ErrorResponse "Провайдер не настроен или недоступен"
// @Router /monitoring [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.monitoring"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	snapshot, err := h.metrics.Fetch(r.Context())
	if err != nil {
		if errors.Is(err, monservice.ErrNotConfigured) {
			log.Error("analytics credentials missing")
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("monitoring is not configured"))
			return
		}
		var upstream *monservice.UpstreamError
		if errors.As(err, &upstream) {
			log.Error("analytics upstream error", slog.String("details", upstream.Details))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.ErrorWithDetails("failed to fetch monitoring data", upstream.Details))
			return
		}
		log.Error("failed to fetch monitoring data", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to fetch monitoring data"))
		return
	}

	render.JSON(w, r, response.OK("monitoring data retrieved", snapshot))
}
