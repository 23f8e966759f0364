package models

import "time"

// Submission is immutable once created. The unique index on GoogleID
// enforces at most one entry per Google identity.
type Submission struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	Email      string    `gorm:"size:255;not null" json:"email"`
	Phone      string    `gorm:"size:32;not null" json:"phone"`
	College    string    `gorm:"size:255;not null" json:"college"`
	PhotoURL   string    `gorm:"size:512;not null" json:"photoUrl"`
	GoogleID   string    `gorm:"size:64;uniqueIndex;not null" json:"googleId"`
	UniqueCode string    `gorm:"size:16;not null" json:"uniqueCode"`
	CreatedAt  time.Time `json:"created_at"`
}
