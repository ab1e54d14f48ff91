package models

import "time"

// User represents an account. Password holds the bcrypt hash and is never
// serialized. Locked/PasswordAttempts/UnlockedAt carry the progressive
// lockout state mutated by login attempts.
type User struct {
	ID               uint       `json:"id" gorm:"primaryKey"`
	Email            string     `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password         string     `json:"-" gorm:"type:varchar(255)" validate:"required,min=8"`
	Locked           bool       `json:"-"`
	PasswordAttempts int        `json:"-"`
	UnlockedAt       *time.Time `json:"-"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
