package models

// Matchup links a video to a home and an away team. A video has at most
// one matchup per ordinal slot and never the same pairing twice.
type Matchup struct {
	ID      uint `json:"id" gorm:"primaryKey"`
	VideoID uint `json:"video_id" gorm:"not null;uniqueIndex:idx_matchups_video_home_away;uniqueIndex:idx_matchups_video_order"`
	HomeID  uint `json:"home_id" gorm:"not null;uniqueIndex:idx_matchups_video_home_away"`
	AwayID  uint `json:"away_id" gorm:"not null;uniqueIndex:idx_matchups_video_home_away"`
	Order   int  `json:"order" gorm:"column:sort_order;not null;default:1;uniqueIndex:idx_matchups_video_order"`

	Home *Team `json:"home,omitempty" gorm:"foreignKey:HomeID"`
	Away *Team `json:"away,omitempty" gorm:"foreignKey:AwayID"`
}
