// Package session реализует серверное хранилище браузерных сессий на Redis.
//
// Сессия создаётся при входе, уничтожается при выходе или по TTL хранилища
// и держит единственное состояние, которое нельзя восстановить из учётной
// записи: метку начала бесплатного окна этой сессии. Остальные поля —
// кэш для отображения и снимок роли на момент входа, истина всегда в базе.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/magabrotheeeer/coffrefort/internal/config"
)

// CookieName — имя cookie с идентификатором сессии.
const CookieName = "coffrefort_session"

// keyPrefix — префикс ключей сессий в Redis.
const keyPrefix = "session:"

// ErrNotFound возвращается, когда сессии нет или она истекла по TTL.
var ErrNotFound = errors.New("session not found")

// Session — типизированное содержимое одной браузерной сессии.
// TrialStart выставляется один раз, только если эффективный доступ
// на момент входа был бесплатным окном.
type Session struct {
	Email       string            `json:"email"`
	FirstName   string            `json:"first_name"`
	LastName    string            `json:"last_name"`
	RoleAtLogin string            `json:"role_at_login"`
	TrialStart  *time.Time        `json:"trial_start,omitempty"`
	Prefs       map[string]string `json:"prefs,omitempty"`
}

// Store — хранилище сессий поверх Redis с TTL из конфига.
type Store struct {
	db  *redis.Client
	ttl time.Duration
}

// NewStore подключается к Redis и возвращает хранилище сессий.
func NewStore(ctx context.Context, cfg config.RedisConnection, ttl time.Duration) (*Store, error) {
	const op = "session.NewStore"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.AddressRedis,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.TimeoutRedis,
		WriteTimeout: cfg.TimeoutRedis,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Store{db: db, ttl: ttl}, nil
}

// Create сохраняет новую сессию и возвращает её идентификатор.
func (s *Store) Create(ctx context.Context, sess *Session) (string, error) {
	const op = "session.Create"
	id := uuid.NewString()
	if err := s.write(ctx, id, sess); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// Get возвращает сессию по идентификатору.
func (s *Store) Get(ctx context.Context, id string) (*Session, error) {
	const op = "session.Get"
	val, err := s.db.Get(ctx, keyPrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var sess Session
	if err = json.Unmarshal([]byte(val), &sess); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &sess, nil
}

// Save перезаписывает сессию, продлевая TTL.
func (s *Store) Save(ctx context.Context, id string, sess *Session) error {
	const op = "session.Save"
	if err := s.write(ctx, id, sess); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Destroy удаляет сессию. Отсутствующая сессия ошибкой не считается.
func (s *Store) Destroy(ctx context.Context, id string) error {
	const op = "session.Destroy"
	if err := s.db.Del(ctx, keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close закрывает соединение с Redis.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) write(ctx context.Context, id string, sess *Session) error {
	jsonData, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.db.Set(ctx, keyPrefix+id, jsonData, s.ttl).Err()
}

// SetCookie выставляет cookie сессии в ответе.
func SetCookie(w http.ResponseWriter, id string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie сбрасывает cookie сессии.
func ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// FromRequest извлекает идентификатор сессии из cookie запроса.
func FromRequest(r *http.Request) (string, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}
