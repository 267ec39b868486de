// Package save реализует HTTP-обработчик создания и изменения записи
// справочника наборов. Нулевой ID означает создание, ненулевой — обновление.
package save

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/coffrefort/internal/http/response"
	"github.com/magabrotheeeer/coffrefort/internal/lib/sl"
	"github.com/magabrotheeeer/coffrefort/internal/models"
	"github.com/magabrotheeeer/coffrefort/internal/storage/repository"
)

// Request — структура входных данных записи справочника.
type Request struct {
	ID         int64  `json:"id"`
	University string `json:"university" validate:"required,min=2,max=200"`
	Country    string `json:"country" validate:"required,min=2,max=100"`
	City       string `json:"city" validate:"max=100"`
	Program    string `json:"program" validate:"max=200"`
	Website    string `json:"website" validate:"max=200"`
}

// Handler обрабатывает HTTP-запросы сохранения записи справочника.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс сохранения записи.
type Service interface {
	Save(ctx context.Context, a models.Admission) (int64, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admission.save"

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

	id, err := h.service.Save(r.Context(), models.Admission{
		ID:         req.ID,
		University: req.University,
		Country:    req.Country,
		City:       req.City,
		Program:    req.Program,
		Website:    req.Website,
	})
	if err != nil {
		if errors.Is(err, repository.ErrAdmissionNotFound) {
			log.Info("admission not found", slog.Int64("admission_id", req.ID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("admission not found"))
			return
		}
		log.Error("failed to save admission", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to save admission"))
		return
	}

	log.Info("admission saved", slog.Int64("admission_id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"admission_id": id,
	}))
}
