package models

import (
	"net/url"
	"time"

	"github.com/google/uuid"
)

// VideoType tags how a video's matchups are rendered. SINGLE suppresses
// the "vs." separator between the matchup teams.
type VideoType string

const (
	VideoTypeNormal VideoType = "normal"
	VideoTypeSingle VideoType = "single"
)

// Video is one archived broadcast. Multiple videos on the same date
// within a tournament are disambiguated by Order (1-based).
type Video struct {
	ID           uint        `json:"id" gorm:"primaryKey"`
	TournamentID uint        `json:"tournament_id" gorm:"not null;uniqueIndex:idx_videos_tournament_date_order"`
	Tournament   *Tournament `json:"tournament,omitempty" gorm:"foreignKey:TournamentID"`

	Type  VideoType `json:"type" gorm:"type:varchar(16);not null;default:'normal'"`
	Date  Date      `json:"date" gorm:"not null;uniqueIndex:idx_videos_tournament_date_order"`
	Order int       `json:"order" gorm:"column:sort_order;not null;default:1;uniqueIndex:idx_videos_tournament_date_order"`

	// Either a filename resolved against the video base URL or an
	// absolute URL; URL wins when both are set.
	Filename string `json:"filename,omitempty"`
	URL      string `json:"url,omitempty"`
	IntroURL string `json:"intro_url,omitempty"`

	// Cached duration in seconds; derived, not authoritative.
	Duration *int64 `json:"duration,omitempty"`

	IsVisible bool `json:"is_visible" gorm:"not null"`

	ChatID *uuid.UUID `json:"chat_id,omitempty" gorm:"type:uuid"`
	Chat   *Chat      `json:"chat,omitempty" gorm:"foreignKey:ChatID"`

	// Start of the chat log in milliseconds since epoch. Derived once
	// per edit from the sync helper inputs when not set explicitly.
	ChatStart *int64 `json:"chat_start,omitempty"`

	Matchups  []Matchup       `json:"matchups,omitempty" gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE"`
	Bookmarks []VideoBookmark `json:"bookmarks,omitempty" gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Calculated fields (not stored in DB)
	Part      int    `json:"part,omitempty" gorm:"-"`
	PartCount int    `json:"part_count,omitempty" gorm:"-"`
	Link      string `json:"link,omitempty" gorm:"-"`
	ChatURL   string `json:"chat_url,omitempty" gorm:"-"`
	DateLabel string `json:"date_label,omitempty" gorm:"-"`
}

// ResolveLink returns the download link for the video. An absolute URL
// wins over a filename resolved against the base URL.
func (v *Video) ResolveLink(videoBase string) string {
	if v.URL != "" {
		return v.URL
	}
	if v.Filename == "" {
		return ""
	}
	base, err := url.Parse(videoBase)
	if err != nil {
		return v.Filename
	}
	ref, err := url.Parse(v.Filename)
	if err != nil {
		return v.Filename
	}
	return base.ResolveReference(ref).String()
}

// HasChat reports whether the video has a usable chat log. A chat
// referenced before sync data exists (chat_start absent, zero or
// negative) does not count.
func (v *Video) HasChat() bool {
	return v.ChatID != nil && v.ChatStart != nil && *v.ChatStart > 0
}
