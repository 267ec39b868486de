// Package premium реализует HTTP-обработчик страницы перехода на премиум.
//
// Сюда попадают сессии с исчерпанным бесплатным окном и премиум-аккаунты
// с истёкшим сроком. Страница доступна из любой живой сессии: оплата и есть
// выход из этого состояния.
package premium

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/coffrefort/internal/config"
	"github.com/magabrotheeeer/coffrefort/internal/entitlement"
	"github.com/magabrotheeeer/coffrefort/internal/http/middlewarectx"
	"github.com/magabrotheeeer/coffrefort/internal/http/response"
)

// Handler обрабатывает HTTP-запросы страницы премиума.
type Handler struct {
	log *slog.Logger
	cfg config.CinetPay
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, cfg config.CinetPay) *Handler {
	return &Handler{
		log: log,
		cfg: cfg,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.premium"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	access, ok := middlewarectx.AccessFromContext(r.Context())
	if !ok {
		log.Error("no access in request context")
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	data := map[string]any{
		"amount":      h.cfg.Amount,
		"currency":    h.cfg.Currency,
		"description": h.cfg.Description,
	}
	if access.Kind == entitlement.FreeTrial {
		data["trial_expired"] = access.Expired
		data["minutes_remaining"] = access.MinutesRemaining
	}

	render.JSON(w, r, response.StatusOKWithData(data))
}
