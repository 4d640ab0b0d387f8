package models

import (
	"time"
)

// Tournament is the top-level grouping for archived videos. Videos hold a
// protected reference to it: a tournament with videos cannot be deleted.
type Tournament struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Name      string `json:"name" gorm:"not null"`
	Slug      string `json:"slug" gorm:"uniqueIndex;not null"`
	StartDate Date   `json:"start_date" gorm:"not null"`
	EndDate   Date   `json:"end_date" gorm:"not null"`

	// Public URL of the logo in the blob store (logos/{slug}{ext}).
	LogoURL string `json:"logo_url"`

	LeagueID *uint   `json:"league_id,omitempty"`
	League   *League `json:"league,omitempty" gorm:"foreignKey:LeagueID"`

	Videos []Video `json:"-" gorm:"foreignKey:TournamentID"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Calculated fields (not stored in DB)
	VideoCount      int64  `json:"video_count" gorm:"-"`
	VideoCountLabel string `json:"video_count_label,omitempty" gorm:"-"`
}
