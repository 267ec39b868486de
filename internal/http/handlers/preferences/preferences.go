// Package preferences реализует HTTP-обработчики предпочтений пользователя.
//
// Предпочтения живут в серверной сессии: страна интереса, уровень обучения,
// направление, язык и флаг уведомлений. Они не переживают выход из системы.
package preferences

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/coffrefort/internal/http/middlewarectx"
	"github.com/magabrotheeeer/coffrefort/internal/http/response"
	"github.com/magabrotheeeer/coffrefort/internal/lib/sl"
	"github.com/magabrotheeeer/coffrefort/internal/session"
)

// Request — структура входных данных формы предпочтений.
type Request struct {
	Country       string `json:"country" validate:"max=100"`
	Level         string `json:"level" validate:"max=50"`
	Field         string `json:"field" validate:"max=100"`
	Language      string `json:"language" validate:"max=50"`
	Notifications string `json:"notifications" validate:"max=10"`
}

// Handler обрабатывает чтение и сохранение предпочтений.
type Handler struct {
	log      *slog.Logger
	sessions SessionStore
	validate *validator.Validate
}

// SessionStore сохраняет обновлённую сессию.
type SessionStore interface {
	Save(ctx context.Context, id string, sess *session.Session) error
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, sessions SessionStore) *Handler {
	return &Handler{
		log:      log,
		sessions: sessions,
		validate: validator.New(),
	}
}

// Show возвращает текущие предпочтения из сессии.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.preferences.show"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	sess, ok := middlewarectx.SessionFromContext(r.Context())
	if !ok {
		log.Error("no session in request context")
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"preferences": sess.Prefs,
	}))
}

// Save перезаписывает предпочтения в сессии значениями из формы.
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.preferences.save"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	sess, ok := middlewarectx.SessionFromContext(r.Context())
	if !ok {
		log.Error("no session in request context")
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}
	id, ok := middlewarectx.SessionIDFromContext(r.Context())
	if !ok {
		log.Error("no session id in request context")
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	sess.Prefs = map[string]string{
		"country":       req.Country,
		"level":         req.Level,
		"field":         req.Field,
		"language":      req.Language,
		"notifications": req.Notifications,
	}
	if err := h.sessions.Save(r.Context(), id, sess); err != nil {
		log.Error("failed to save preferences", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to save preferences"))
		return
	}

	log.Info("preferences saved")
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"preferences": sess.Prefs,
	}))
}
