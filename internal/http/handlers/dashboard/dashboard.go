// Package dashboard отдаёт HTML-страницу статуса на корневом маршруте.
package dashboard

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/asppibra-dao/core-api/internal/lib/sl"
)

const statusPage = `<!DOCTYPE html>
<html lang="pt-BR">
<head>
  <meta charset="UTF-8">
  <title>{{.Name}} · Status</title>
  <style>
    body { font-family: sans-serif; margin: 2rem auto; max-width: 40rem; color: #222; }
    h1 { font-size: 1.4rem; }
    code { background: #f2f2f2; padding: 0.1rem 0.3rem; border-radius: 3px; }
    li { margin: 0.3rem 0; }
    .env { color: #666; font-size: 0.9rem; }
  </style>
</head>
<body>
  <h1>{{.Name}}</h1>
  <p class="env">env: {{.Env}}</p>
  <p>API online. Rotas disponíveis:</p>
  <ul>
    <li><code>POST /auth/sign-up</code></li>
    <li><code>POST /auth/sign-in</code></li>
    <li><code>GET /auth/me</code></li>
    <li><code>POST /users/register</code></li>
    <li><code>GET /post/list</code></li>
    <li><code>GET /post/{title}</code></li>
    <li><code>GET /health-db</code></li>
    <li><code>GET /monitoring</code></li>
  </ul>
  <p>Documentação: <a href="/docs/index.html">/docs</a></p>
</body>
</html>
`

var statusTemplate = template.Must(template.New("status").Parse(statusPage))

// Handler отдаёт страницу статуса.
type Handler struct {
	log  *slog.Logger
	name string
	env  string
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, name, env string) *Handler {
	return &Handler{
		log:  log,
		name: name,
		env:  env,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard"

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := struct {
		Name string
		Env  string
	}{Name: h.name, Env: h.env}

	if err := statusTemplate.Execute(w, data); err != nil {
		h.log.Error("failed to render status page",
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			sl.Err(err),
		)
	}
}
