package models

import (
	"time"
)

// League groups tournaments and points at an externally hosted metadata
// document keyed by the league slug.
type League struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"not null"`
	Slug string `json:"slug" gorm:"uniqueIndex;not null"`

	// Last fetched copy of the external metadata document.
	Metadata         string     `json:"-" gorm:"type:text"`
	MetadataSyncedAt *time.Time `json:"metadata_synced_at,omitempty"`

	Tournaments []Tournament `json:"-" gorm:"foreignKey:LeagueID"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Calculated fields (not stored in DB)
	MetadataDocumentURL string `json:"metadata_url,omitempty" gorm:"-"`
}

// MetadataURL returns the address of the externally hosted metadata
// document for this league.
func (l *League) MetadataURL(base string) string {
	return base + "/" + l.Slug + ".json"
}
