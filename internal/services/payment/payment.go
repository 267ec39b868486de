// Package payment реализует инициализацию платежа у провайдера и обработку
// его server-to-server уведомлений.
package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/coffrefort/internal/config"
	"github.com/magabrotheeeer/coffrefort/internal/entitlement"
	"github.com/magabrotheeeer/coffrefort/internal/models"
	"github.com/magabrotheeeer/coffrefort/internal/paymentprovider"
)

// SuccessStatus — код cpm_result, которым провайдер подтверждает оплату.
const SuccessStatus = "00"

// ErrRejected возвращается для уведомления без email или с неуспешным
// статусом: запись пользователя не меняется, провайдер получает "KO".
var ErrRejected = errors.New("payment notification rejected")

// Notification — разобранное уведомление платёжного провайдера.
// Сумма и валюта идут только в журнал, решение принимается по статусу.
type Notification struct {
	TransactionID string
	Status        string
	Email         string
	Amount        string
	Currency      string
}

// PaymentRepository описывает контракт хранилища для платежей.
type PaymentRepository interface {
	CreatePendingPayment(ctx context.Context, transactionID, email, amount, currency string) (int64, error)
	ConfirmPayment(ctx context.Context, transactionID, email, amount, currency string, expiresAt time.Time) (bool, error)
	ListPayments(ctx context.Context) ([]*models.Payment, error)
}

// CheckoutClient описывает клиент платёжного провайдера.
type CheckoutClient interface {
	CreateCheckout(ctx context.Context, req paymentprovider.CheckoutRequest) (string, error)
}

// Service связывает хранилище платежей и клиент провайдера.
type Service struct {
	repo     PaymentRepository
	provider CheckoutClient
	cfg      config.CinetPay
	log      *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo PaymentRepository, provider CheckoutClient, cfg config.CinetPay, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		provider: provider,
		cfg:      cfg,
		log:      log,
	}
}

// InitiateCheckout создаёт платёж у провайдера и возвращает URL платёжной
// страницы. Сбой провайдера поднимается как ошибка запроса, а не считается
// успехом.
func (s *Service) InitiateCheckout(ctx context.Context, user *models.User) (string, error) {
	const op = "services.payment.InitiateCheckout"

	transactionID := uuid.NewString()
	if _, err := s.repo.CreatePendingPayment(ctx, transactionID, user.Email, s.cfg.Amount, s.cfg.Currency); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	url, err := s.provider.CreateCheckout(ctx, paymentprovider.CheckoutRequest{
		TransactionID:       transactionID,
		Amount:              s.cfg.Amount,
		Currency:            s.cfg.Currency,
		Description:         s.cfg.Description,
		ReturnURL:           s.cfg.ReturnURL,
		NotifyURL:           s.cfg.NotifyURL,
		Channels:            "ALL",
		CustomerName:        strings.TrimSpace(user.FirstName + " " + user.LastName),
		CustomerEmail:       user.Email,
		CustomerPhoneNumber: user.Phone,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("checkout created",
		slog.String("transaction_id", transactionID),
		slog.String("email", user.Email))
	return url, nil
}

// ConfirmNotification применяет уведомление провайдера: при успешном статусе
// пользователь становится премиумом на 30 дней от текущего момента.
// Срок всегда считается от "сейчас", а не от прежней даты истечения, поэтому
// конкурентная доставка одного уведомления детерминирована. Возвращает false,
// если транзакция уже была подтверждена: продление не применяется повторно.
func (s *Service) ConfirmNotification(ctx context.Context, n Notification) (bool, error) {
	const op = "services.payment.ConfirmNotification"

	if n.Status != SuccessStatus || n.Email == "" {
		return false, fmt.Errorf("%s: status %q: %w", op, n.Status, ErrRejected)
	}

	expiresAt := time.Now().UTC().Add(entitlement.PremiumTerm)
	applied, err := s.repo.ConfirmPayment(ctx, n.TransactionID, n.Email, n.Amount, n.Currency, expiresAt)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	if applied {
		s.log.Info("payment confirmed",
			slog.String("transaction_id", n.TransactionID),
			slog.String("email", n.Email),
			slog.String("amount", n.Amount),
			slog.String("currency", n.Currency))
	} else {
		s.log.Info("duplicate payment notification ignored",
			slog.String("transaction_id", n.TransactionID))
	}
	return applied, nil
}

// List возвращает журнал платежей для административной панели.
func (s *Service) List(ctx context.Context) ([]*models.Payment, error) {
	const op = "services.payment.List"

	payments, err := s.repo.ListPayments(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return payments, nil
}
