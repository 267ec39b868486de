package middlewarectx

import (
	"net/http"

	"github.com/magabrotheeeer/coffrefort/internal/entitlement"
)

// RequireEntitled пускает дальше только запросы с действующим доступом.
// Исчерпанный пробный период отправляет на страницу премиума, где
// доступна оплата.
func RequireEntitled(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		access, ok := AccessFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		if !access.Allows() {
			http.Redirect(w, r, "/premium", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin пускает дальше только администраторов.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		access, ok := AccessFromContext(r.Context())
		if !ok || access.Kind != entitlement.Admin {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}
