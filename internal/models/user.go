// Package models содержит доменную модель пользователя сервиса,
// включающую данные учётной записи, хэш пароля, роль и даты регистрации
// и истечения премиум-доступа. Структуры используются в бизнес‑логике
// и при работе с хранилищем.
package models

import "time"

// Роли пользователей. Набор закрытый: роль меняется только регистрацией,
// подтверждением оплаты и действиями администратора.
const (
	RoleUser    = "user"
	RolePremium = "premium"
	RoleAdmin   = "admin"
)

// User представляет зарегистрированного пользователя сервиса.
// ExpiresAt имеет смысл только при Role == "premium": премиум с истёкшей
// датой в хранилище не понижается, понижение вычисляется при оценке доступа.
type User struct {
	ID           int64      `json:"id"`            // Суррогатный ключ в базе данных
	FirstName    string     `json:"first_name"`    // Имя пользователя
	LastName     string     `json:"last_name"`     // Фамилия пользователя
	Email        string     `json:"email"`         // Электронная почта (уникальная)
	Phone        string     `json:"phone"`         // Контактный телефон
	PasswordHash string     `json:"-"`             // Хэш пароля, никогда не логируется и не возвращается
	Role         string     `json:"role"`          // Роль: user, premium или admin
	RegisteredAt time.Time  `json:"registered_at"` // Дата регистрации, выставляется один раз
	ExpiresAt    *time.Time `json:"expires_at"`    // Дата истечения премиум-доступа, nil для user и admin
}
