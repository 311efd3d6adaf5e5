package domain

import "time"

type User struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	ResetToken   string     `json:"-"`
	ResetExpires *time.Time `json:"-"`
	CreatedAt    time.Time  `json:"date"`
}
