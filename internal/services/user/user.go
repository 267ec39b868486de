// Package user реализует операции админ-панели над учётными записями:
// список, выдача и снятие премиума, удаление.
package user

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/coffrefort/internal/entitlement"
	"github.com/magabrotheeeer/coffrefort/internal/models"
)

// Repository описывает контракт хранилища для админ-операций.
type Repository interface {
	ListUsers(ctx context.Context) ([]*models.User, error)
	ActivatePremium(ctx context.Context, id int64, expiresAt time.Time) error
	Deactivate(ctx context.Context, id int64) error
	DeleteUser(ctx context.Context, id int64) error
}

// Service — бизнес-логика админ-панели пользователей.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// List возвращает всех пользователей, новые регистрации первыми.
func (s *Service) List(ctx context.Context) ([]*models.User, error) {
	return s.repo.ListUsers(ctx)
}

// Activate выдаёт пользователю премиум на стандартный срок от текущего момента.
func (s *Service) Activate(ctx context.Context, id int64) error {
	expiresAt := time.Now().UTC().Add(entitlement.PremiumTerm)
	if err := s.repo.ActivatePremium(ctx, id, expiresAt); err != nil {
		return err
	}
	s.log.Info("user activated", slog.Int64("user_id", id))
	return nil
}

// Deactivate возвращает пользователя к роли user и очищает дату истечения.
// Открытые сессии увидят понижение при следующей оценке доступа.
func (s *Service) Deactivate(ctx context.Context, id int64) error {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return err
	}
	s.log.Info("user deactivated", slog.Int64("user_id", id))
	return nil
}

// Delete удаляет учётную запись.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.log.Info("user deleted", slog.Int64("user_id", id))
	return nil
}
