package models

// VideoBookmark marks a named position within a video. Positions keep
// sub-second precision and bookmarks are always listed ascending.
type VideoBookmark struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	VideoID uint   `json:"video_id" gorm:"not null;index"`
	Name    string `json:"name" gorm:"not null"`

	// Offset from the start of the video in milliseconds.
	Position int64 `json:"position_ms" gorm:"not null"`
}

// Seconds returns the bookmark position as seconds, the unit used by the
// legacy bookmark feed.
func (b *VideoBookmark) Seconds() float64 {
	return float64(b.Position) / 1000
}
