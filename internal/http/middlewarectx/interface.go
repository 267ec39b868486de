package middlewarectx

import (
	"context"

	"github.com/magabrotheeeer/coffrefort/internal/models"
	"github.com/magabrotheeeer/coffrefort/internal/session"
)

// SessionStore описывает хранилище браузерных сессий.
type SessionStore interface {
	Get(ctx context.Context, id string) (*session.Session, error)
	Save(ctx context.Context, id string, sess *session.Session) error
	Destroy(ctx context.Context, id string) error
}

// UserProvider разрешает учётную запись по email сессии.
type UserProvider interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}
