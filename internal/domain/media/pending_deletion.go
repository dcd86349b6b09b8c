package media

import "time"

// PendingDeletion is a storage key whose delete failed after the owning row
// was already gone. The sweeper retries it until it succeeds or gives up.
type PendingDeletion struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"size:500;not null;uniqueIndex" json:"key"`
	Reason    string    `gorm:"size:100" json:"reason"`
	Attempts  int       `gorm:"not null;default:0" json:"attempts"`
	LastError string    `gorm:"type:text" json:"last_error"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
