// Package list реализует HTTP-обработчик полного списка справочника наборов
// для админ-панели.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/coffrefort/internal/http/response"
	"github.com/magabrotheeeer/coffrefort/internal/lib/sl"
	"github.com/magabrotheeeer/coffrefort/internal/models"
)

// Handler обрабатывает HTTP-запросы списка справочника.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс чтения справочника.
type Service interface {
	ListAll(ctx context.Context) ([]*models.Admission, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admission.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	admissions, err := h.service.ListAll(r.Context())
	if err != nil {
		log.Error("failed to list admissions", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list admissions"))
		return
	}

	log.Info("admissions listed", slog.Int("count", len(admissions)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"admissions": admissions,
	}))
}
