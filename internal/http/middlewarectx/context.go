// Package middlewarectx содержит HTTP middleware цепочки доступа:
// загрузку сессии из cookie, оценку эффективного доступа на каждый запрос
// и проверки политики для защищённых групп маршрутов.
package middlewarectx

import (
	"context"

	"github.com/magabrotheeeer/coffrefort/internal/entitlement"
	"github.com/magabrotheeeer/coffrefort/internal/models"
	"github.com/magabrotheeeer/coffrefort/internal/session"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// SessionID — ключ идентификатора сессии в контексте
	SessionID Key = "session_id"
	// SessionData — ключ содержимого сессии в контексте
	SessionData Key = "session"
	// CurrentUser — ключ учётной записи, разрешённой по сессии
	CurrentUser Key = "user"
	// CurrentAccess — ключ эффективного доступа текущего запроса
	CurrentAccess Key = "access"
)

// SessionIDFromContext возвращает идентификатор сессии запроса.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(SessionID).(string)
	return id, ok
}

// SessionFromContext возвращает сессию запроса.
func SessionFromContext(ctx context.Context) (*session.Session, bool) {
	sess, ok := ctx.Value(SessionData).(*session.Session)
	return sess, ok
}

// UserFromContext возвращает учётную запись, разрешённую по сессии.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(CurrentUser).(*models.User)
	return user, ok
}

// AccessFromContext возвращает эффективный доступ текущего запроса.
func AccessFromContext(ctx context.Context) (entitlement.Access, bool) {
	access, ok := ctx.Value(CurrentAccess).(entitlement.Access)
	return access, ok
}
