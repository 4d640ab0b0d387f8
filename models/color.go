package models

import (
	"database/sql/driver"
	"fmt"
	"regexp"
)

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Color is a 24-bit RGB value stored as an integer and presented as a
// "#RRGGBB" string everywhere outside the database.
type Color uint32

// ParseColor validates and parses a "#RRGGBB" string.
func ParseColor(value string) (Color, error) {
	if !colorPattern.MatchString(value) {
		return 0, fmt.Errorf("invalid color %q (expected #RRGGBB)", value)
	}
	var c Color
	if _, err := fmt.Sscanf(value, "#%06x", &c); err != nil {
		return 0, err
	}
	return c, nil
}

func (c Color) String() string {
	return fmt.Sprintf("#%06x", uint32(c))
}

func (c Color) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

func (c *Color) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid color literal %s", s)
	}
	parsed, err := ParseColor(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Color) Value() (driver.Value, error) {
	return int64(c), nil
}

func (c *Color) Scan(value interface{}) error {
	switch v := value.(type) {
	case int64:
		*c = Color(v)
		return nil
	case int32:
		*c = Color(v)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Color", value)
	}
}

// GormDataType stores colors as plain integers.
func (Color) GormDataType() string {
	return "integer"
}
