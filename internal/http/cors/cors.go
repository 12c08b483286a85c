// Package cors реализует вычисление CORS-политики и middleware, применяющий её.
//
// Решение вычисляется на каждый запрос заново: точное совпадение с
// allow-list, затем подстроки dev-хостов, затем эхо исходного Origin.
// Последний шаг сознательно сохраняет поведение референсной реализации;
// решение зафиксировано в DESIGN.md.
package cors

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/asppibra-dao/core-api/internal/config"
)

const (
	allowMethods = "POST, GET, OPTIONS, PUT, DELETE"
	allowHeaders = "Content-Type, Authorization, X-Requested-With"
	exposeHeaders = "Content-Length"
)

// defaultAllowedOrigins — allow-list по умолчанию, если конфиг его не задаёт.
var defaultAllowedOrigins = []string{
	"http://localhost:8082",
	"http://localhost:3000",
	"http://127.0.0.1:8082",
	"https://asppibra.com",
	"https://www.asppibra.com",
	"https://api.asppibra.com",
}

// defaultDevHostPatterns — подстроки, по которым распознаются dev-окружения.
var defaultDevHostPatterns = []string{"localhost", "cloudworkstations.dev"}

// Policy хранит статическую CORS-политику. Неизменяема после старта процесса.
type Policy struct {
	allowedOrigins  []string
	devHostPatterns []string
	maxAge          time.Duration
}

// NewPolicy собирает политику из конфига, подставляя значения по умолчанию.
func NewPolicy(cfg config.CORSPolicy) *Policy {
	p := &Policy{
		allowedOrigins:  cfg.AllowedOrigins,
		devHostPatterns: cfg.DevHostPatterns,
		maxAge:          cfg.MaxAge,
	}
	if len(p.allowedOrigins) == 0 {
		p.allowedOrigins = defaultAllowedOrigins
	}
	if len(p.devHostPatterns) == 0 {
		p.devHostPatterns = defaultDevHostPatterns
	}
	if p.maxAge <= 0 {
		p.maxAge = 600 * time.Second
	}
	return p
}

// AllowOrigin возвращает значение для Access-Control-Allow-Origin.
// Пустой Origin означает отсутствие заголовка — CORS-заголовки не ставятся.
func (p *Policy) AllowOrigin(origin string) (string, bool) {
	if origin == "" {
		return "", false
	}
	if slices.Contains(p.allowedOrigins, origin) {
		return origin, true
	}
	for _, pattern := range p.devHostPatterns {
		if strings.Contains(origin, pattern) {
			return origin, true
		}
	}
	// Референсное поведение: неизвестный Origin эхо-подтверждается.
	return origin, true
}

// Middleware применяет политику к каждому запросу и замыкает preflight.
func Middleware(policy *Policy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin, ok := policy.AllowOrigin(r.Header.Get("Origin"))
			if ok {
				h := w.Header()
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Credentials", "true")
				h.Set("Access-Control-Expose-Headers", exposeHeaders)
				h.Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions {
				if ok {
					h := w.Header()
					h.Set("Access-Control-Allow-Methods", allowMethods)
					h.Set("Access-Control-Allow-Headers", allowHeaders)
					h.Set("Access-Control-Max-Age", strconv.Itoa(int(policy.maxAge.Seconds())))
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
