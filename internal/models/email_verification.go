package models

import "time"

// EmailVerification — код подтверждения регистрации.
// На email держим не больше одной "живой" записи: при повторной отправке
// старые строки заменяются новой (replace-on-reissue).
type EmailVerification struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Code      string    `json:"-"` // 4 цифры
	CreatedAt time.Time `json:"created_at"`
	Verified  bool      `json:"verified"`
}

// Expired — код протух относительно переданного момента.
func (v *EmailVerification) Expired(now time.Time, ttl time.Duration) bool {
	return now.After(v.CreatedAt.Add(ttl))
}
