package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/coffrefort/internal/entitlement"
	"github.com/magabrotheeeer/coffrefort/internal/lib/sl"
	"github.com/magabrotheeeer/coffrefort/internal/session"
	"github.com/magabrotheeeer/coffrefort/internal/storage/repository"
)

// EntitlementMiddleware поднимает аккаунт из базы, вычисляет права доступа
// на текущий момент и кладёт их в контекст. Для бесплатного аккаунта без
// отметки о старте пробного периода отметка ставится здесь и сохраняется
// в сессии. Сам отказ в доступе решают RequireEntitled и RequireAdmin.
func EntitlementMiddleware(users UserProvider, store SessionStore, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.EntitlementMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			sess, ok := SessionFromContext(r.Context())
			if !ok {
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}

			user, err := users.GetUserByEmail(r.Context(), sess.Email)
			if err != nil {
				if errors.Is(err, repository.ErrUserNotFound) {
					// Аккаунт удалён, пока сессия жила.
					if id, ok := SessionIDFromContext(r.Context()); ok {
						if derr := store.Destroy(r.Context(), id); derr != nil {
							log.Error("failed to destroy orphan session", sl.Err(derr))
						}
					}
					session.ClearCookie(w)
					http.Redirect(w, r, "/login", http.StatusFound)
					return
				}
				log.Error("failed to load account", sl.Err(err))
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}

			now := time.Now().UTC()
			access := entitlement.Evaluate(user.Role, user.ExpiresAt, sess.TrialStart, now)

			if access.Kind == entitlement.FreeTrial && sess.TrialStart == nil {
				start := now
				sess.TrialStart = &start
				if id, ok := SessionIDFromContext(r.Context()); ok {
					if serr := store.Save(r.Context(), id, sess); serr != nil {
						log.Error("failed to persist trial start", sl.Err(serr))
					}
				}
			}

			ctx := context.WithValue(r.Context(), SessionData, sess)
			ctx = context.WithValue(ctx, CurrentUser, user)
			ctx = context.WithValue(ctx, CurrentAccess, access)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
