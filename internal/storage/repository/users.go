package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/magabrotheeeer/coffrefort/internal/models"
)

// uniqueViolation — код ошибки PostgreSQL для нарушения уникального индекса.
const uniqueViolation = "23505"

// CreateUser сохраняет нового пользователя и возвращает его ID.
// Конфликт по уникальному email транслируется в ErrEmailTaken.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (int64, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID int64
	query := `INSERT INTO users (first_name, last_name, email, phone, password_hash, role)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.FirstName, user.LastName, user.Email, user.Phone,
		user.PasswordHash, user.Role).Scan(&newID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return 0, fmt.Errorf("%s: %w", op, ErrEmailTaken)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetUserByEmail возвращает пользователя по его email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, first_name, last_name, email, phone, password_hash, role,
			      registered_at, expires_at
			  FROM users
			  WHERE email = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, email), op)
}

// GetUserByID возвращает пользователя по суррогатному ключу.
func (s *Storage) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	const op = "storage.GetUserByID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, first_name, last_name, email, phone, password_hash, role,
			      registered_at, expires_at
			  FROM users
			  WHERE id = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, id), op)
}

func (s *Storage) scanUser(row *sql.Row, op string) (*models.User, error) {
	u := &models.User{}
	var expiresAt sql.NullTime
	if err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Phone,
		&u.PasswordHash, &u.Role, &u.RegisteredAt, &expiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if expiresAt.Valid {
		u.ExpiresAt = &expiresAt.Time
	}
	return u, nil
}

// ListUsers возвращает всех пользователей, новые регистрации первыми.
func (s *Storage) ListUsers(ctx context.Context) ([]*models.User, error) {
	const op = "storage.ListUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, first_name, last_name, email, phone, password_hash, role,
			      registered_at, expires_at
			  FROM users
			  ORDER BY registered_at DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.User
	for rows.Next() {
		var u models.User
		var expiresAt sql.NullTime
		if err = rows.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Phone,
			&u.PasswordHash, &u.Role, &u.RegisteredAt, &expiresAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if expiresAt.Valid {
			u.ExpiresAt = &expiresAt.Time
		}
		result = append(result, &u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ActivatePremium переводит пользователя в премиум с заданной датой истечения.
// Дата всегда вычисляется вызывающей стороной от "сейчас", а не от прежнего
// значения, поэтому повторное применение детерминировано.
func (s *Storage) ActivatePremium(ctx context.Context, id int64, expiresAt time.Time) error {
	const op = "storage.ActivatePremium"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET role = $1, expires_at = $2
			  WHERE id = $3`
	res, err := s.DB.ExecContext(ctx, query, models.RolePremium, expiresAt, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return s.requireRow(res, op)
}

// Deactivate возвращает пользователя к роли user и очищает дату истечения.
func (s *Storage) Deactivate(ctx context.Context, id int64) error {
	const op = "storage.Deactivate"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET role = $1, expires_at = NULL
			  WHERE id = $2`
	res, err := s.DB.ExecContext(ctx, query, models.RoleUser, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return s.requireRow(res, op)
}

// DeleteUser удаляет учётную запись. Открытые сессии становятся
// недействительными при следующей проверке доступа.
func (s *Storage) DeleteUser(ctx context.Context, id int64) error {
	const op = "storage.DeleteUser"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return s.requireRow(res, op)
}

func (s *Storage) requireRow(res sql.Result, op string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	return nil
}
