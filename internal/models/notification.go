package models

// WelcomeNotification — сообщение для очереди приветственных писем.
// Публикуется при регистрации и доставляется отдельным сервисом-отправителем.
type WelcomeNotification struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
