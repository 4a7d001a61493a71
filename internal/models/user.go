package models

import "time"

type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Role         string `json:"role"` // admin | staff
	PasswordHash string `json:"-"`    // не отдаём наружу
	Active       bool   `json:"active"`

	// optional Telegram ping target
	TelegramChatID *int64 `json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

// Actor is the authenticated caller as carried in the JWT claims.
type Actor struct {
	ID   int64
	Role string
	Name string
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
