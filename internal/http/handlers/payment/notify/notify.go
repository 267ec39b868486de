// Package notify реализует server-to-server обработчик уведомлений платёжного
// провайдера.
//
// Контракт ответа текстовый: "OK" со статусом 200 подтверждает приём,
// "KO" со статусом 400 просит провайдера не повторять доставку. Повторное
// уведомление об уже подтверждённой транзакции принимается без повторного
// продления срока.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/coffrefort/internal/lib/sl"
	"github.com/magabrotheeeer/coffrefort/internal/services/payment"
	"github.com/magabrotheeeer/coffrefort/internal/storage/repository"
)

// Request — структура уведомления провайдера. Имена полей следуют формату
// CinetPay: статус приходит как cpm_result, email плательщика — как
// customer_email.
type Request struct {
	TransactionID string `json:"transaction_id"`
	Result        string `json:"cpm_result"`
	CustomerEmail string `json:"customer_email"`
	Amount        string `json:"cpm_amount"`
	Currency      string `json:"cpm_currency"`
}

// Handler обрабатывает уведомления провайдера.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс применения уведомления.
type Service interface {
	ConfirmNotification(ctx context.Context, n payment.Notification) (bool, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.notify"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode notification", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		if _, werr := w.Write([]byte("KO")); werr != nil {
			log.Error("failed to write response", sl.Err(werr))
		}
		return
	}

	_, err := h.service.ConfirmNotification(r.Context(), payment.Notification{
		TransactionID: req.TransactionID,
		Status:        req.Result,
		Email:         req.CustomerEmail,
		Amount:        req.Amount,
		Currency:      req.Currency,
	})
	if err != nil {
		if errors.Is(err, payment.ErrRejected) || errors.Is(err, repository.ErrUserNotFound) {
			log.Info("notification rejected", sl.Err(err),
				slog.String("transaction_id", req.TransactionID))
			w.WriteHeader(http.StatusBadRequest)
			if _, werr := w.Write([]byte("KO")); werr != nil {
				log.Error("failed to write response", sl.Err(werr))
			}
			return
		}
		log.Error("failed to apply notification", sl.Err(err),
			slog.String("transaction_id", req.TransactionID))
		w.WriteHeader(http.StatusInternalServerError)
		if _, werr := w.Write([]byte("KO")); werr != nil {
			log.Error("failed to write response", sl.Err(werr))
		}
		return
	}

	log.Info("notification accepted", slog.String("transaction_id", req.TransactionID))
	w.WriteHeader(http.StatusOK)
	if _, werr := w.Write([]byte("OK")); werr != nil {
		log.Error("failed to write response", sl.Err(werr))
	}
}
