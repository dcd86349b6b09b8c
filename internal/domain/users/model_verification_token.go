package users

import "time"

const (
	PurposeEmailVerification = "email_verification"
	PurposePasswordReset     = "password_reset"
)

// VerificationToken is single use. Only one live token exists per email and
// purpose; issuing a new one deletes the previous rows.
type VerificationToken struct {
	ID        uint   `gorm:"primaryKey"`
	Email     string `gorm:"size:255;not null;index:idx_verification_email_purpose,priority:1"`
	Purpose   string `gorm:"size:30;not null;index:idx_verification_email_purpose,priority:2"`
	UserID    uint   `gorm:"not null;index"`
	User      *User  `gorm:"constraint:OnDelete:CASCADE"`
	Token     string `gorm:"size:255;not null;uniqueIndex"`
	ExpiresAt time.Time
	IsUsed    bool `gorm:"not null"`
	CreatedAt time.Time
}

func (t VerificationToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
