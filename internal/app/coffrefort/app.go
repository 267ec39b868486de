// Package coffrefort собирает веб-сервис: хранилище, миграции, сессии,
// очередь уведомлений, платёжный клиент, сервисы и HTTP-сервер.
package coffrefort

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/coffrefort/internal/config"
	"github.com/magabrotheeeer/coffrefort/internal/migrations"
	"github.com/magabrotheeeer/coffrefort/internal/paymentprovider"
	"github.com/magabrotheeeer/coffrefort/internal/rabbitmq"
	admissionservice "github.com/magabrotheeeer/coffrefort/internal/services/admission"
	authservice "github.com/magabrotheeeer/coffrefort/internal/services/auth"
	paymentservice "github.com/magabrotheeeer/coffrefort/internal/services/payment"
	userservice "github.com/magabrotheeeer/coffrefort/internal/services/user"
	"github.com/magabrotheeeer/coffrefort/internal/session"
	"github.com/magabrotheeeer/coffrefort/internal/storage/repository"
)

// App держит запущенные ресурсы веб-сервиса.
type App struct {
	server   *http.Server
	logger   *slog.Logger
	db       *repository.Storage
	sessions *session.Store
	amqpConn *amqp.Connection
	amqpCh   *amqp.Channel
}

// New инициализирует все зависимости и собирает HTTP-сервер.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	sessions, err := session.NewStore(ctx, cfg.RedisConnection, cfg.SessionTTL)
	if err != nil {
		return nil, err
	}

	amqpConn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}
	amqpCh, err := rabbitmq.SetupChannel(amqpConn, rabbitmq.GetNotificationQueues())
	if err != nil {
		amqpConn.Close()
		return nil, err
	}

	providerClient := paymentprovider.NewClient(cfg.APIKey, cfg.SiteID, cfg.APIURL)

	authService := authservice.NewAuthService(db, rabbitmq.NewWelcomePublisher(amqpCh), logger)
	paymentService := paymentservice.New(db, providerClient, cfg.CinetPay, logger)
	admissionService := admissionservice.New(db, logger)
	userService := userservice.New(db, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, db, sessions, authService, paymentService, admissionService, userService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:   srv,
		logger:   logger,
		db:       db,
		sessions: sessions,
		amqpConn: amqpConn,
		amqpCh:   amqpCh,
	}, nil
}

// Run запускает сервер и останавливает его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if cerr := a.amqpCh.Close(); cerr != nil {
			a.logger.Error("failed to close RabbitMQ channel", slog.Any("err", cerr))
		}
		if cerr := a.amqpConn.Close(); cerr != nil {
			a.logger.Error("failed to close RabbitMQ connection", slog.Any("err", cerr))
		}
		if cerr := a.sessions.Close(); cerr != nil {
			a.logger.Error("failed to close session store", slog.Any("err", cerr))
		}
		a.db.DB.Close()
		return err
	}
}
