package models

import "time"

// User is reachable either by Google ID (OAuth login) or by
// username+password (local login). Both sets of fields may coexist.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	GoogleID     *string   `gorm:"size:64;uniqueIndex" json:"googleId,omitempty"`
	Username     string    `gorm:"size:100" json:"username,omitempty"`
	Email        string    `gorm:"size:255" json:"email,omitempty"`
	PasswordHash string    `gorm:"size:255" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
