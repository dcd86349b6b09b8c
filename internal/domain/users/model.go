package users

import "time"

const (
	RoleArtist = "artist"
	RoleAdmin  = "admin"

	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

type User struct {
	ID           uint    `gorm:"primaryKey"`
	Email        string  `gorm:"size:255;not null;uniqueIndex:idx_users_email"`
	Password     *string `gorm:"size:255"`
	AuthProvider string  `gorm:"size:20;not null;default:'local'"`
	GoogleSub    *string `gorm:"size:255;uniqueIndex:idx_users_google_sub"`
	Name         string  `gorm:"size:100;not null"`
	Slug         string  `gorm:"size:100;not null;uniqueIndex:idx_users_slug"`
	Role         string  `gorm:"size:20;not null;default:'artist'"`

	ThumbnailURL string `gorm:"size:500"`
	Bio          string `gorm:"type:text"`
	CustomDomain *string

	// gallery
	IsPublicGallery       bool   `gorm:"not null"`
	GalleryTitle          string `gorm:"size:200"`
	GalleryDescription    string `gorm:"type:text"`
	ShowWorkInProgress    bool   `gorm:"not null"`
	DefaultArtworkPrivacy string `gorm:"size:20;not null;default:'public'"`

	// social
	InstagramUsername string `gorm:"size:100"`
	YoutubeChannelID  string `gorm:"size:100"`
	FacebookPageID    string `gorm:"size:100"`

	// counters, only ever changed with gorm.Expr increments
	TotalArtworks int `gorm:"not null;default:0"`
	TotalViews    int `gorm:"not null;default:0"`
	FollowerCount int `gorm:"not null;default:0"`

	EmailNotifications bool   `gorm:"not null"`
	MarketingEmails    bool   `gorm:"not null"`
	Timezone           string `gorm:"size:50;not null;default:'Asia/Seoul'"`
	Language           string `gorm:"size:10;not null;default:'ko'"`

	IsVerified bool `gorm:"not null;index"`
	IsActive   bool `gorm:"not null"`
	LastLogin  *time.Time

	// about section
	AboutText  string `gorm:"type:text"`
	AboutImage string `gorm:"size:500"`
	AboutVideo string `gorm:"size:500"`

	// studio section
	StudioDescription string `gorm:"type:text"`
	StudioImage       string `gorm:"size:500"`
	ProcessVideo      string `gorm:"size:500"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

func (u *User) HasPassword() bool {
	return u.Password != nil && *u.Password != ""
}
