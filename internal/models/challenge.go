package models

import "time"

// Challenge types. A user has at most one active challenge per type.
const (
	ChallengeTypeEmail         = "email"
	ChallengeTypePasswordReset = "password-reset"
)

// Challenge is a time-bounded verification record gating an account
// capability. The email challenge must be disabled (verified) before a
// login can succeed.
type Challenge struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index"`
	Type      string    `json:"type" gorm:"type:varchar(30)"`
	Disabled  bool      `json:"disabled"`
	Token     string    `json:"-" gorm:"type:varchar(64)"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Expired reports whether the challenge token is past its expiry.
func (c *Challenge) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
