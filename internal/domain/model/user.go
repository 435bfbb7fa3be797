package model

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"` // bcrypt hash; legacy rows may hold plaintext
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
