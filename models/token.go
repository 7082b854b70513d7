package models

import "time"

// Token is a one-time confirmation or password-reset code. It is removed
// once consumed, so an existing row means the code is still usable.
type Token struct {
	ID        uint      `json:"id"`
	Code      string    `json:"-"`
	UserID    uint      `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
