// Package search реализует HTTP-обработчик поиска по справочнику наборов.
//
// Страна берётся из query-параметра country; при его отсутствии
// подставляется страна из пользовательских предпочтений в сессии.
// Запрошенная страна запоминается в предпочтениях на следующий визит.
package search

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/coffrefort/internal/http/middlewarectx"
	"github.com/magabrotheeeer/coffrefort/internal/http/response"
	"github.com/magabrotheeeer/coffrefort/internal/lib/sl"
	"github.com/magabrotheeeer/coffrefort/internal/models"
	"github.com/magabrotheeeer/coffrefort/internal/session"
)

// Handler обрабатывает HTTP-запросы поиска по справочнику.
type Handler struct {
	log      *slog.Logger
	service  Service
	sessions SessionStore
}

// Service описывает интерфейс поиска по справочнику.
type Service interface {
	Search(ctx context.Context, country string) ([]*models.Admission, error)
}

// SessionStore сохраняет обновлённые предпочтения.
type SessionStore interface {
	Save(ctx context.Context, id string, sess *session.Session) error
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, sessions SessionStore) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		sessions: sessions,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.directory.search"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	country := strings.TrimSpace(r.URL.Query().Get("country"))
	sess, hasSess := middlewarectx.SessionFromContext(r.Context())

	if country == "" && hasSess {
		country = sess.Prefs["country"]
	}

	admissions, err := h.service.Search(r.Context(), country)
	if err != nil {
		log.Error("failed to search admissions", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to search admissions"))
		return
	}

	if country != "" && hasSess && sess.Prefs["country"] != country {
		if sess.Prefs == nil {
			sess.Prefs = make(map[string]string)
		}
		sess.Prefs["country"] = country
		if id, ok := middlewarectx.SessionIDFromContext(r.Context()); ok {
			if err := h.sessions.Save(r.Context(), id, sess); err != nil {
				log.Error("failed to save country preference", sl.Err(err))
			}
		}
	}

	log.Info("admissions found",
		slog.String("country", country),
		slog.Int("count", len(admissions)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"country":    country,
		"admissions": admissions,
	}))
}
