package models

import "time"

// Статусы платежа в таблице payments.
const (
	PaymentPending   = "pending"
	PaymentConfirmed = "confirmed"
	PaymentRejected  = "rejected"
)

// Payment хранит историю обращений к платёжному провайдеру и его уведомлений.
// Сумма и валюта из уведомления сохраняются только для журнала, на решение
// о продлении доступа они не влияют.
type Payment struct {
	ID            int64     `json:"id"`
	TransactionID string    `json:"transaction_id"`
	Email         string    `json:"email"`
	Amount        string    `json:"amount"`
	Currency      string    `json:"currency"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}
