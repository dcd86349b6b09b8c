package users

import "time"

// RefreshToken stores only the sha256 of the opaque token handed to the client.
type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;index"`
	User      *User  `gorm:"constraint:OnDelete:CASCADE"`
	TokenHash string `gorm:"size:64;not null;uniqueIndex"`
	ExpiresAt time.Time
	Revoked   bool `gorm:"not null;index"`
	CreatedAt time.Time
}
