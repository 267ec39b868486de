// Package remove реализует HTTP-обработчик удаления записи справочника.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/coffrefort/internal/http/response"
	"github.com/magabrotheeeer/coffrefort/internal/lib/sl"
	"github.com/magabrotheeeer/coffrefort/internal/storage/repository"
)

// Handler обрабатывает HTTP-запросы удаления записи справочника.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс удаления записи.
type Service interface {
	Delete(ctx context.Context, id int64) error
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admission.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		log.Error("invalid id format", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrAdmissionNotFound) {
			log.Info("admission not found", slog.Int64("admission_id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("admission not found"))
			return
		}
		log.Error("failed to delete admission", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to delete admission"))
		return
	}

	log.Info("admission deleted", slog.Int64("admission_id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"admission_id": id,
	}))
}
