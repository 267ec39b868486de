// Package checkout реализует HTTP-обработчик инициализации оплаты премиума.
//
// Обработчик доступен любой аутентифицированной сессии, включая сессии с
// исчерпанным бесплатным окном: оплата и есть выход из этого состояния.
package checkout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/coffrefort/internal/http/middlewarectx"
	"github.com/magabrotheeeer/coffrefort/internal/http/response"
	"github.com/magabrotheeeer/coffrefort/internal/lib/sl"
	"github.com/magabrotheeeer/coffrefort/internal/models"
)

// Handler обрабатывает HTTP-запросы инициализации оплаты.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс инициализации платежа.
type Service interface {
	InitiateCheckout(ctx context.Context, user *models.User) (string, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.checkout"

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

	url, err := h.service.InitiateCheckout(r.Context(), user)
	if err != nil {
		log.Error("failed to initiate checkout", sl.Err(err))
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error("failed to initiate checkout"))
		return
	}

	log.Info("checkout initiated", slog.String("email", user.Email))
	w.Header().Set("Location", url)
	w.WriteHeader(http.StatusSeeOther)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"payment_url": url,
	}))
}
