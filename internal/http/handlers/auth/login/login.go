// Package login реализует HTTP-обработчик входа.
//
// Обработчик проверяет учётные данные, создаёт серверную сессию в Redis,
// выставляет cookie и возвращает стартовый маршрут, вычисленный по
// эффективному доступу на момент входа. Неизвестный аккаунт и неверный
// пароль разводятся по статусам 404 и 401.
package login

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/coffrefort/internal/entitlement"
	"github.com/magabrotheeeer/coffrefort/internal/http/response"
	"github.com/magabrotheeeer/coffrefort/internal/lib/sl"
	"github.com/magabrotheeeer/coffrefort/internal/models"
	"github.com/magabrotheeeer/coffrefort/internal/services/auth"
	"github.com/magabrotheeeer/coffrefort/internal/session"
	"github.com/magabrotheeeer/coffrefort/internal/storage/repository"
)

// Request — структура входных данных формы входа.
type Request struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Handler обрабатывает HTTP-запросы входа.
type Handler struct {
	log        *slog.Logger
	service    Service
	sessions   SessionStore
	sessionTTL time.Duration
	validate   *validator.Validate
}

// Service описывает интерфейс бизнес-логики входа.
type Service interface {
	Login(ctx context.Context, email, rawPassword string) (*models.User, entitlement.Access, string, error)
}

// SessionStore создаёт серверную сессию после успешного входа.
type SessionStore interface {
	Create(ctx context.Context, sess *session.Session) (string, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, sessions SessionStore, sessionTTL time.Duration) *Handler {
	return &Handler{
		log:        log,
		service:    service,
		sessions:   sessions,
		sessionTTL: sessionTTL,
		validate:   validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

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

	user, access, landing, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			log.Info("unknown account", slog.String("email", req.Email))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("account not found"))
			return
		}
		if errors.Is(err, auth.ErrInvalidCredentials) {
			log.Info("invalid credentials", slog.String("email", req.Email))
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("invalid credentials"))
			return
		}
		log.Error("login failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("login failed"))
		return
	}

	sess := &session.Session{
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		RoleAtLogin: user.Role,
	}
	// Бесплатное окно привязано к созданию сессии, не к регистрации.
	if access.Kind == entitlement.FreeTrial {
		start := time.Now().UTC()
		sess.TrialStart = &start
	}

	id, err := h.sessions.Create(r.Context(), sess)
	if err != nil {
		log.Error("failed to create session", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("login failed"))
		return
	}
	session.SetCookie(w, id, h.sessionTTL)

	log.Info("login success",
		slog.String("email", user.Email),
		slog.String("role", user.Role),
		slog.String("landing", landing))
	w.Header().Set("Location", landing)
	w.WriteHeader(http.StatusSeeOther)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"landing": landing,
		"role":    user.Role,
	}))
}
