package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseTimestamp parses a video timestamp of the form "HH:MM:SS.fff",
// "MM:SS" or plain seconds. The fraction is optional and kept exact
// down to nanoseconds so no precision is lost before the millisecond
// arithmetic downstream.
func ParseTimestamp(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}

	parts := strings.Split(value, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}

	var hours, minutes int64
	var err error
	if len(parts) == 3 {
		if hours, err = strconv.ParseInt(parts[0], 10, 64); err != nil || hours < 0 {
			return 0, fmt.Errorf("invalid hours in timestamp %q", value)
		}
		parts = parts[1:]
	}
	if len(parts) == 2 {
		if minutes, err = strconv.ParseInt(parts[0], 10, 64); err != nil || minutes < 0 || minutes > 59 {
			return 0, fmt.Errorf("invalid minutes in timestamp %q", value)
		}
		parts = parts[1:]
	}

	secStr, fracStr, _ := strings.Cut(parts[0], ".")
	seconds, err := strconv.ParseInt(secStr, 10, 64)
	if err != nil || seconds < 0 || seconds > 59 {
		return 0, fmt.Errorf("invalid seconds in timestamp %q", value)
	}

	var nanos int64
	if fracStr != "" {
		if len(fracStr) > 9 {
			fracStr = fracStr[:9]
		}
		padded := fracStr + strings.Repeat("0", 9-len(fracStr))
		if nanos, err = strconv.ParseInt(padded, 10, 64); err != nil {
			return 0, fmt.Errorf("invalid fraction in timestamp %q", value)
		}
	}

	return time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(nanos), nil
}

// ParseLocalizedInt parses an integer that may carry locale group
// separators (comma, space, non-breaking space), as pasted from
// browser developer tools into the chat sync helper field.
func ParseLocalizedInt(value string) (int64, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ',', ' ', ' ', ' ':
			return -1
		}
		return r
	}, value)
	if cleaned == "" {
		return 0, fmt.Errorf("empty integer")
	}
	n, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", value)
	}
	return n, nil
}
