package profile

import (
	"time"

	"gallery-api/internal/domain/users"
)

type ArtistStatement struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	UserID      uint        `gorm:"not null;uniqueIndex" json:"user_id"`
	User        *users.User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	StatementKo string      `gorm:"type:text" json:"statement_ko"`
	StatementEn string      `gorm:"type:text" json:"statement_en"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

type ArtistVideo struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	UserID        uint        `gorm:"not null;index" json:"user_id"`
	User          *users.User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	VideoURL      string      `gorm:"size:500;not null" json:"video_url"`
	VideoID       string      `gorm:"size:50" json:"video_id"`
	TitleKo       string      `gorm:"size:200" json:"title_ko"`
	TitleEn       string      `gorm:"size:200" json:"title_en"`
	DescriptionKo string      `gorm:"type:text" json:"description_ko"`
	DescriptionEn string      `gorm:"type:text" json:"description_en"`
	ThumbnailURL  string      `gorm:"size:500" json:"thumbnail_url"`
	Duration      *int        `json:"duration"`
	IsFeatured    bool        `gorm:"not null" json:"is_featured"`
	IsActive      bool        `gorm:"not null;index" json:"is_active"`
	OrderIndex    int         `gorm:"not null;default:0" json:"order_index"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

type ArtistQA struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	UserID     uint        `gorm:"not null;index" json:"user_id"`
	User       *users.User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	QuestionKo string      `gorm:"type:text;not null" json:"question_ko"`
	QuestionEn string      `gorm:"type:text" json:"question_en"`
	AnswerKo   string      `gorm:"type:text;not null" json:"answer_ko"`
	AnswerEn   string      `gorm:"type:text" json:"answer_en"`
	IsActive   bool        `gorm:"not null" json:"is_active"`
	OrderIndex int         `gorm:"not null;default:0" json:"order_index"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

func (ArtistQA) TableName() string { return "artist_qa" }

type Exhibition struct {
	ID             uint        `gorm:"primaryKey" json:"id"`
	UserID         uint        `gorm:"not null;index" json:"user_id"`
	User           *users.User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	TitleKo        string      `gorm:"size:200;not null" json:"title_ko"`
	TitleEn        string      `gorm:"size:200;not null" json:"title_en"`
	VenueKo        string      `gorm:"size:200" json:"venue_ko"`
	VenueEn        string      `gorm:"size:200" json:"venue_en"`
	Year           string      `gorm:"size:10;not null" json:"year"`
	ExhibitionType string      `gorm:"size:50;not null;default:'group'" json:"exhibition_type"`
	DescriptionKo  string      `gorm:"type:text" json:"description_ko"`
	DescriptionEn  string      `gorm:"type:text" json:"description_en"`
	ImageURL       string      `gorm:"size:500" json:"image_url"`
	VideoURL       string      `gorm:"size:500" json:"video_url"`
	IsFeatured     bool        `gorm:"not null" json:"is_featured"`
	IsActive       bool        `gorm:"not null;index" json:"is_active"`
	OrderIndex     int         `gorm:"not null;default:0" json:"order_index"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

type Award struct {
	ID             uint        `gorm:"primaryKey" json:"id"`
	UserID         uint        `gorm:"not null;index" json:"user_id"`
	User           *users.User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	TitleKo        string      `gorm:"size:200;not null" json:"title_ko"`
	TitleEn        string      `gorm:"size:200;not null" json:"title_en"`
	OrganizationKo string      `gorm:"size:200" json:"organization_ko"`
	OrganizationEn string      `gorm:"size:200" json:"organization_en"`
	Year           string      `gorm:"size:10;not null" json:"year"`
	AwardType      string      `gorm:"size:50;not null;default:'recognition'" json:"award_type"`
	DescriptionKo  string      `gorm:"type:text" json:"description_ko"`
	DescriptionEn  string      `gorm:"type:text" json:"description_en"`
	ImageURL       string      `gorm:"size:500" json:"image_url"`
	VideoURL       string      `gorm:"size:500" json:"video_url"`
	IsFeatured     bool        `gorm:"not null" json:"is_featured"`
	IsActive       bool        `gorm:"not null;index" json:"is_active"`
	OrderIndex     int         `gorm:"not null;default:0" json:"order_index"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// Models lists the tables owned by this package, in migration order.
func Models() []any {
	return []any{&ArtistStatement{}, &ArtistVideo{}, &ArtistQA{}, &Exhibition{}, &Award{}}
}
