package users

import "time"

// RetiredSlug keeps a slug a user moved away from. Their stored files still
// live under it, so nobody else may claim it while the account exists.
type RetiredSlug struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;index"`
	User      *User  `gorm:"constraint:OnDelete:CASCADE"`
	Slug      string `gorm:"size:100;not null;uniqueIndex"`
	CreatedAt time.Time
}
