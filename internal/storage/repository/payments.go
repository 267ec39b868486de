package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/coffrefort/internal/models"
)

// CreatePendingPayment фиксирует инициированный платёж до ухода
// пользователя на страницу провайдера.
func (s *Storage) CreatePendingPayment(ctx context.Context, transactionID, email, amount, currency string) (int64, error) {
	const op = "storage.CreatePendingPayment"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO payments (transaction_id, email, amount, currency, status)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var newID int64
	if err := s.DB.QueryRowContext(ctx, query,
		transactionID, email, amount, currency, models.PaymentPending).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ConfirmPayment в одной транзакции помечает платёж подтверждённым и
// переводит пользователя в премиум до expiresAt. Возвращает false без
// каких-либо изменений, если транзакция провайдера уже была подтверждена:
// повторная доставка уведомления не продлевает доступ ещё раз.
// Неизвестный transaction_id при успешном статусе тоже засчитывается —
// провайдер доверенный, строка создаётся на месте.
func (s *Storage) ConfirmPayment(ctx context.Context, transactionID, email, amount, currency string, expiresAt time.Time) (bool, error) {
	const op = "storage.ConfirmPayment"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var status string
	err = tx.QueryRowContext(ctx,
		`SELECT status FROM payments WHERE transaction_id = $1 FOR UPDATE`,
		transactionID).Scan(&status)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO payments (transaction_id, email, amount, currency, status)
			 VALUES ($1, $2, $3, $4, $5)`,
			transactionID, email, amount, currency, models.PaymentConfirmed); err != nil {
			return false, fmt.Errorf("%s: %w", op, err)
		}
	case err != nil:
		return false, fmt.Errorf("%s: %w", op, err)
	case status == models.PaymentConfirmed:
		if err = tx.Commit(); err != nil {
			return false, fmt.Errorf("%s: %w", op, err)
		}
		return false, nil
	default:
		if _, err = tx.ExecContext(ctx,
			`UPDATE payments SET status = $1, amount = $2, currency = $3
			 WHERE transaction_id = $4`,
			models.PaymentConfirmed, amount, currency, transactionID); err != nil {
			return false, fmt.Errorf("%s: %w", op, err)
		}
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE users SET role = $1, expires_at = $2 WHERE email = $3`,
		models.RolePremium, expiresAt, email)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return false, fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}

	if err = tx.Commit(); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}

// ListPayments возвращает журнал платежей, свежие первыми.
func (s *Storage) ListPayments(ctx context.Context) ([]*models.Payment, error) {
	const op = "storage.ListPayments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, transaction_id, email, amount, currency, status, created_at
			  FROM payments
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Payment
	for rows.Next() {
		var p models.Payment
		if err = rows.Scan(&p.ID, &p.TransactionID, &p.Email, &p.Amount,
			&p.Currency, &p.Status, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
