// Package admission реализует работу со справочником университетских наборов:
// публичный поиск по стране и CRUD для админ-панели.
package admission

import (
	"context"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/coffrefort/internal/lib/unaccent"
	"github.com/magabrotheeeer/coffrefort/internal/models"
)

// defaultListLimit — потолок выдачи при поиске без фильтра.
const defaultListLimit = 100

// AdmissionRepository описывает контракт хранилища справочника.
type AdmissionRepository interface {
	ListAdmissions(ctx context.Context, limit int) ([]*models.Admission, error)
	SearchAdmissionsByCountry(ctx context.Context, country string) ([]*models.Admission, error)
	ListAllAdmissions(ctx context.Context) ([]*models.Admission, error)
	GetAdmission(ctx context.Context, id int64) (*models.Admission, error)
	SaveAdmission(ctx context.Context, a models.Admission) (int64, error)
	DeleteAdmission(ctx context.Context, id int64) error
}

// Service — бизнес-логика справочника.
type Service struct {
	repo AdmissionRepository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo AdmissionRepository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Search ищет записи по стране без учёта регистра и диакритики.
// Пустой фильтр даёт общий список, ограниченный потолком выдачи.
func (s *Service) Search(ctx context.Context, country string) ([]*models.Admission, error) {
	country = strings.ToLower(strings.TrimSpace(country))
	if country == "" {
		return s.repo.ListAdmissions(ctx, defaultListLimit)
	}
	return s.repo.SearchAdmissionsByCountry(ctx, unaccent.Strip(country))
}

// ListAll возвращает полный справочник для админ-панели.
func (s *Service) ListAll(ctx context.Context) ([]*models.Admission, error) {
	return s.repo.ListAllAdmissions(ctx)
}

// Get возвращает запись по ID.
func (s *Service) Get(ctx context.Context, id int64) (*models.Admission, error) {
	return s.repo.GetAdmission(ctx, id)
}

// Save создаёт или обновляет запись и возвращает её ID.
func (s *Service) Save(ctx context.Context, a models.Admission) (int64, error) {
	return s.repo.SaveAdmission(ctx, a)
}

// Delete удаляет запись справочника.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteAdmission(ctx, id)
}
