package rabbitmq

import (
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/coffrefort/internal/models"
)

// WelcomePublisher публикует приветственные уведомления в очередь.
type WelcomePublisher struct {
	ch *amqp.Channel
}

// NewWelcomePublisher создает новый экземпляр WelcomePublisher.
func NewWelcomePublisher(ch *amqp.Channel) *WelcomePublisher {
	return &WelcomePublisher{ch: ch}
}

// PublishWelcome отправляет уведомление в очередь приветственных писем.
func (p *WelcomePublisher) PublishWelcome(notification models.WelcomeNotification) error {
	return PublishMessage(p.ch, NotificationsExchange, WelcomeRoutingKey, notification)
}
