// Package logout реализует HTTP-обработчик выхода: уничтожает серверную
// сессию и сбрасывает cookie.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/coffrefort/internal/http/middlewarectx"
	"github.com/magabrotheeeer/coffrefort/internal/http/response"
	"github.com/magabrotheeeer/coffrefort/internal/lib/sl"
	"github.com/magabrotheeeer/coffrefort/internal/session"
)

// Handler обрабатывает HTTP-запросы выхода.
type Handler struct {
	log      *slog.Logger
	sessions SessionStore
}

// SessionStore уничтожает серверную сессию.
type SessionStore interface {
	Destroy(ctx context.Context, id string) error
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, sessions SessionStore) *Handler {
	return &Handler{
		log:      log,
		sessions: sessions,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if id, ok := middlewarectx.SessionIDFromContext(r.Context()); ok {
		if err := h.sessions.Destroy(r.Context(), id); err != nil {
			log.Error("failed to destroy session", sl.Err(err))
		}
	}
	session.ClearCookie(w)

	log.Info("logout success")
	w.Header().Set("Location", "/login")
	w.WriteHeader(http.StatusSeeOther)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"logged_out": true,
	}))
}
