package handlers

import (
	"time"
)

// parseLocalDate reads YYYY-MM-DD as local midnight in the salon zone.
func parseLocalDate(dateStr string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", dateStr, loc)
}

// parseInstant reads an ISO8601/RFC3339 timestamp.
func parseInstant(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}
