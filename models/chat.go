package models

import (
	"time"

	"github.com/google/uuid"
)

// Chat is an uploaded chat log. The identifier doubles as the blob-store
// key; a chat referenced by any video cannot be deleted.
type Chat struct {
	ID   uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Date Date      `json:"date" gorm:"not null"`

	Videos []Video `json:"-" gorm:"foreignKey:ChatID"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Calculated fields (not stored in DB)
	FileURL string `json:"file_url,omitempty" gorm:"-"`
}

// Key returns the blob-store object key for the chat log file.
func (c *Chat) Key() string {
	return "chats/" + c.ID.String() + ".txt"
}

// URL returns the public address of the chat log file.
func (c *Chat) URL(cdnBase string) string {
	return cdnBase + "/" + c.Key()
}
