package auth

import "time"

// User is a local account. Passwords are compared in constant time
// but stored as entered, matching the single-user on-device model.
type User struct {
	ID        string `gorm:"primaryKey"`
	Username  string `gorm:"uniqueIndex;not null"`
	Password  string `gorm:"not null" json:"-"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Credentials is a login or registration request.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Token is an issued session token.
type Token struct {
	Value     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
