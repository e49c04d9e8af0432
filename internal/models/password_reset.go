package models

import "time"

// PasswordResetToken хранит только sha256-хеш токена, сам токен уходит в письме.
type PasswordResetToken struct {
	UserID    int64     `json:"user_id"`
	TokenHash string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (t *PasswordResetToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
