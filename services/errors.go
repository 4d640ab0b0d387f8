package services

import (
	"strings"
)

// isUniqueViolation reports whether an error came from a unique index at
// the storage boundary. Both the Postgres and the SQLite (tests) driver
// surface these only as message text.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "constraint failed")
}
