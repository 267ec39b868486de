package coffrefort

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/magabrotheeeer/coffrefort/internal/config"
	admissionlist "github.com/magabrotheeeer/coffrefort/internal/http/handlers/admission/list"
	admissionremove "github.com/magabrotheeeer/coffrefort/internal/http/handlers/admission/remove"
	admissionsave "github.com/magabrotheeeer/coffrefort/internal/http/handlers/admission/save"
	"github.com/magabrotheeeer/coffrefort/internal/http/handlers/adminpanel/activate"
	"github.com/magabrotheeeer/coffrefort/internal/http/handlers/adminpanel/deactivate"
	adminlist "github.com/magabrotheeeer/coffrefort/internal/http/handlers/adminpanel/list"
	adminremove "github.com/magabrotheeeer/coffrefort/internal/http/handlers/adminpanel/remove"
	"github.com/magabrotheeeer/coffrefort/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/coffrefort/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/coffrefort/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/coffrefort/internal/http/handlers/dashboard"
	"github.com/magabrotheeeer/coffrefort/internal/http/handlers/directory/search"
	"github.com/magabrotheeeer/coffrefort/internal/http/handlers/health"
	"github.com/magabrotheeeer/coffrefort/internal/http/handlers/payment/checkout"
	paymentlist "github.com/magabrotheeeer/coffrefort/internal/http/handlers/payment/list"
	"github.com/magabrotheeeer/coffrefort/internal/http/handlers/payment/notify"
	"github.com/magabrotheeeer/coffrefort/internal/http/handlers/preferences"
	"github.com/magabrotheeeer/coffrefort/internal/http/handlers/premium"
	"github.com/magabrotheeeer/coffrefort/internal/http/middlewarectx"
	admissionservice "github.com/magabrotheeeer/coffrefort/internal/services/admission"
	authservice "github.com/magabrotheeeer/coffrefort/internal/services/auth"
	paymentservice "github.com/magabrotheeeer/coffrefort/internal/services/payment"
	userservice "github.com/magabrotheeeer/coffrefort/internal/services/user"
	"github.com/magabrotheeeer/coffrefort/internal/session"
	"github.com/magabrotheeeer/coffrefort/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
//
// Доступ раскладывается по группам: открытые точки, точки с живой сессией
// (оплата доступна и после исчерпания бесплатного окна), точки с действующим
// доступом и админ-панель.
func RegisterRoutes(
	r chi.Router,
	logger *slog.Logger,
	cfg *config.Config,
	db *repository.Storage,
	sessions *session.Store,
	authService *authservice.AuthService,
	paymentService *paymentservice.Service,
	admissionService *admissionservice.Service,
	userService *userservice.Service,
) {
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	// Открытые конечные точки
	r.Post("/register", register.New(logger, authService).ServeHTTP)
	r.Post("/login", login.New(logger, authService, sessions, cfg.SessionTTL).ServeHTTP)
	r.Post("/payments/notify", notify.New(logger, paymentService).ServeHTTP)
	r.Get("/health", health.New(logger, db).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())

	// Группа с живой сессией
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.SessionMiddleware(sessions, logger))
		r.Use(middlewarectx.EntitlementMiddleware(db, sessions, logger))
		r.Use(middlewarectx.RateLimitMiddleware(logger))

		r.Get("/logout", logout.New(logger, sessions).ServeHTTP)
		r.Get("/premium", premium.New(logger, cfg.CinetPay).ServeHTTP)
		r.Post("/payment", checkout.New(logger, paymentService).ServeHTTP)

		prefs := preferences.New(logger, sessions)
		r.Get("/preferences", prefs.Show)
		r.Post("/preferences", prefs.Save)

		// Группа с действующим доступом
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RequireEntitled)

			r.Get("/dashboard", dashboard.New(logger).ServeHTTP)
			r.Get("/universities", search.New(logger, admissionService, sessions).ServeHTTP)
		})

		// Админ-панель
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RequireAdmin)

			r.Get("/admin/users", adminlist.New(logger, userService).ServeHTTP)
			r.Post("/admin/users/{id}/activate", activate.New(logger, userService).ServeHTTP)
			r.Post("/admin/users/{id}/deactivate", deactivate.New(logger, userService).ServeHTTP)
			r.Post("/admin/users/{id}/delete", adminremove.New(logger, userService).ServeHTTP)

			r.Get("/admin/payments", paymentlist.New(logger, paymentService).ServeHTTP)

			r.Get("/admin/admissions", admissionlist.New(logger, admissionService).ServeHTTP)
			r.Post("/admin/admissions/save", admissionsave.New(logger, admissionService).ServeHTTP)
			r.Post("/admin/admissions/{id}/delete", admissionremove.New(logger, admissionService).ServeHTTP)
		})
	})
}
