// Package auth содержит логику бизнес-уровня для регистрации и входа.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/coffrefort/internal/entitlement"
	"github.com/magabrotheeeer/coffrefort/internal/lib/password"
	"github.com/magabrotheeeer/coffrefort/internal/lib/sl"
	"github.com/magabrotheeeer/coffrefort/internal/models"
)

// ErrInvalidCredentials возвращается при неверном пароле. Отличается от
// repository.ErrUserNotFound: HTTP-контракт разводит эти случаи по статусам.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его ID.
	CreateUser(ctx context.Context, user models.User) (int64, error)

	// GetUserByEmail возвращает пользователя по email или ошибку, если не найден.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// WelcomePublisher отправляет приветственное уведомление в очередь.
type WelcomePublisher interface {
	PublishWelcome(notification models.WelcomeNotification) error
}

// AuthService отвечает за регистрацию и проверку учётных данных.
type AuthService struct {
	users     UserRepository
	publisher WelcomePublisher
	log       *slog.Logger
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, publisher WelcomePublisher, log *slog.Logger) *AuthService {
	return &AuthService{
		users:     users,
		publisher: publisher,
		log:       log,
	}
}

// Register создает нового пользователя с хэшированием пароля и ролью "user".
// Приветственное письмо ставится в очередь по принципу "лучших усилий":
// сбой публикации логируется и не откатывает регистрацию.
func (s *AuthService) Register(ctx context.Context, firstName, lastName, email, phone, rawPassword string) (int64, error) {
	const op = "services.auth.Register"

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	user := models.User{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		Phone:        phone,
		PasswordHash: hashed,
		Role:         models.RoleUser, // роль из формы не принимается
	}
	id, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return 0, err
	}

	if err := s.publisher.PublishWelcome(models.WelcomeNotification{
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
	}); err != nil {
		s.log.Error("failed to enqueue welcome notification", sl.Err(err),
			slog.String("email", email))
	}
	return id, nil
}

// Login проверяет пароль и один раз оценивает доступ для выбора стартового
// маршрута. Метка бесплатного окна здесь ещё не установлена, поэтому для
// не-премиум пользователей оценка соответствует свежему окну.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (*models.User, entitlement.Access, string, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, entitlement.Access{}, "", err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, entitlement.Access{}, "", ErrInvalidCredentials
	}

	access := entitlement.Evaluate(user.Role, user.ExpiresAt, nil, time.Now().UTC())
	return user, access, entitlement.LandingPath(user.Role, access), nil
}
