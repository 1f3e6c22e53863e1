package utils

import (
	"time"
)

// DateTimeFormat is the local datetime representation MySQL expects for
// DATETIME binds on the raw write path.
const DateTimeFormat = "2006-01-02 15:04:05"

func NewTrue() *bool {
	b := true
	return &b
}

func NewFalse() *bool {
	b := false
	return &b
}

// FormatDateTime renders t in the store's local "YYYY-MM-DD HH:MM:SS" form.
func FormatDateTime(t time.Time) string {
	return t.Format(DateTimeFormat)
}

func BoolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
