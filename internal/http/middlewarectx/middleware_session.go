package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/coffrefort/internal/lib/sl"
	"github.com/magabrotheeeer/coffrefort/internal/session"
)

// SessionMiddleware загружает сессию по cookie и кладёт её в контекст.
// Запрос без валидной сессии уходит на страницу входа, протухшая cookie
// при этом сбрасывается.
func SessionMiddleware(store SessionStore, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.SessionMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			id, ok := session.FromRequest(r)
			if !ok {
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}

			sess, err := store.Get(r.Context(), id)
			if err != nil {
				if !errors.Is(err, session.ErrNotFound) {
					log.Error("failed to load session", sl.Err(err))
				}
				session.ClearCookie(w)
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}

			ctx := context.WithValue(r.Context(), SessionID, id)
			ctx = context.WithValue(ctx, SessionData, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
