// Package dashboard реализует HTTP-обработчик личного кабинета.
//
// Все данные уже собраны цепочкой middleware: учётная запись и эффективный
// доступ берутся из контекста запроса. Для бесплатного окна отдаётся остаток
// минут и признак показа предложения премиума.
package dashboard

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/coffrefort/internal/entitlement"
	"github.com/magabrotheeeer/coffrefort/internal/http/middlewarectx"
	"github.com/magabrotheeeer/coffrefort/internal/http/response"
)

// Handler обрабатывает HTTP-запросы личного кабинета.
type Handler struct {
	log *slog.Logger
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("no user in request context")
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}
	access, _ := middlewarectx.AccessFromContext(r.Context())

	data := map[string]any{
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"email":      user.Email,
		"role":       user.Role,
	}
	switch access.Kind {
	case entitlement.PremiumActive:
		data["expires_at"] = user.ExpiresAt
	case entitlement.FreeTrial:
		data["minutes_remaining"] = access.MinutesRemaining
		data["show_premium_offer"] = true
	}

	render.JSON(w, r, response.StatusOKWithData(data))
}
