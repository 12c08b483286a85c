// Package models содержит доменные структуры шлюза: пользователи,
// публичные проекции, посты и аудит-события.
package models

import "time"

// User представляет запись пользователя в хранилище.
// Поле PasswordHash хранит только bcrypt-хэш и никогда не отдается наружу.
type User struct {
	ID            string     // UUID, назначается при создании и неизменяем
	FirstName     string     // Имя
	LastName      string     // Фамилия
	Email         string     // Email, уникален в хранилище
	PasswordHash  string     // bcrypt-хэш пароля
	WalletAddress *string    // Адрес кошелька (nil, если не привязан), уникален при наличии
	Role          string     // Роль, по умолчанию "citizen"
	CreatedAt     time.Time  // Дата создания
	UpdatedAt     time.Time  // Дата последнего обновления
}

// PublicUser — публичная проекция пользователя для ответов API.
// Хэш пароля в проекцию не попадает.
type PublicUser struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// Public возвращает публичную проекцию пользователя.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role,
	}
}
