package models

import (
	"fmt"
	"time"
)

// Team is a participant referenced by matchups. Colors are stored as
// integers and presented as "#RRGGBB" strings.
type Team struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	Name           string `json:"name" gorm:"not null"`
	Slug           string `json:"slug" gorm:"uniqueIndex;not null"`
	MainColor      Color  `json:"main_color"`
	SecondaryColor Color  `json:"secondary_color"`
	LongName       bool   `json:"long_name" gorm:"not null"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Calculated fields (not stored in DB)
	MatchupCount int64  `json:"matchup_count,omitempty" gorm:"-"`
	CSSStyle     string `json:"style,omitempty" gorm:"-"`
}

// Style returns the team colors as a CSS style string.
func (t *Team) Style() string {
	return fmt.Sprintf("background-color: %s; color: %s;", t.MainColor, t.SecondaryColor)
}
