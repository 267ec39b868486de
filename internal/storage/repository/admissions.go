package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/coffrefort/internal/models"
)

// admissionColumns — общий список колонок справочника для выборок.
const admissionColumns = `id, university, country, city, program, website`

// ListAdmissions возвращает записи справочника без фильтра,
// отсортированные по стране и университету, не более limit штук.
func (s *Storage) ListAdmissions(ctx context.Context, limit int) ([]*models.Admission, error) {
	const op = "storage.ListAdmissions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + admissionColumns + `
			  FROM admissions
			  ORDER BY country, university
			  LIMIT $1`
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return scanAdmissions(rows, op)
}

// SearchAdmissionsByCountry ищет записи по стране без учёта регистра
// и диакритики (SQL unaccent, параметр очищается на стороне приложения).
func (s *Storage) SearchAdmissionsByCountry(ctx context.Context, country string) ([]*models.Admission, error) {
	const op = "storage.SearchAdmissionsByCountry"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + admissionColumns + `
			  FROM admissions
			  WHERE LOWER(unaccent(country)) LIKE $1
			  ORDER BY university`
	pattern := "%" + strings.ToLower(country) + "%"
	rows, err := s.DB.QueryContext(ctx, query, pattern)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return scanAdmissions(rows, op)
}

// ListAllAdmissions возвращает полный справочник для админ-панели,
// последние добавленные первыми.
func (s *Storage) ListAllAdmissions(ctx context.Context) ([]*models.Admission, error) {
	const op = "storage.ListAllAdmissions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + admissionColumns + `
			  FROM admissions
			  ORDER BY id DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return scanAdmissions(rows, op)
}

// GetAdmission возвращает запись справочника по её ID.
func (s *Storage) GetAdmission(ctx context.Context, id int64) (*models.Admission, error) {
	const op = "storage.GetAdmission"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + admissionColumns + `
			  FROM admissions
			  WHERE id = $1`
	a := &models.Admission{}
	if err := s.DB.QueryRowContext(ctx, query, id).Scan(
		&a.ID, &a.University, &a.Country, &a.City, &a.Program, &a.Website); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrAdmissionNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}

// SaveAdmission создаёт запись при нулевом ID и обновляет существующую иначе.
// Возвращает ID сохранённой записи.
func (s *Storage) SaveAdmission(ctx context.Context, a models.Admission) (int64, error) {
	const op = "storage.SaveAdmission"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if a.ID == 0 {
		query := `INSERT INTO admissions (university, country, city, program, website)
				  VALUES ($1, $2, $3, $4, $5)
				  RETURNING id`
		var newID int64
		if err := s.DB.QueryRowContext(ctx, query,
			a.University, a.Country, a.City, a.Program, a.Website).Scan(&newID); err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
		return newID, nil
	}

	query := `UPDATE admissions
			  SET university = $1, country = $2, city = $3, program = $4, website = $5
			  WHERE id = $6`
	res, err := s.DB.ExecContext(ctx, query,
		a.University, a.Country, a.City, a.Program, a.Website, a.ID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return 0, fmt.Errorf("%s: %w", op, ErrAdmissionNotFound)
	}
	return a.ID, nil
}

// DeleteAdmission удаляет запись справочника.
func (s *Storage) DeleteAdmission(ctx context.Context, id int64) error {
	const op = "storage.DeleteAdmission"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM admissions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, ErrAdmissionNotFound)
	}
	return nil
}

func scanAdmissions(rows *sql.Rows, op string) ([]*models.Admission, error) {
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Admission
	for rows.Next() {
		var a models.Admission
		if err := rows.Scan(&a.ID, &a.University, &a.Country, &a.City,
			&a.Program, &a.Website); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
