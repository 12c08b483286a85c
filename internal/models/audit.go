package models

import "time"

// AuditEvent описывает событие аудита, публикуемое в очередь при
// значимых операциях (регистрация, вход). Потребляется внешним
// аудит-конвейером, шлюз только публикует.
type AuditEvent struct {
	ID         string    `json:"id"`          // UUID события
	Action     string    `json:"action"`      // Например "auth.sign_up"
	UserID     string    `json:"user_id"`     // UUID пользователя
	Email      string    `json:"email"`       // Email на момент события
	OccurredAt time.Time `json:"occurred_at"` // Время события (UTC)
}
