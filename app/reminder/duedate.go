package reminder

import (
	"strings"
	"time"
)

var dueDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"01/02/2006",
	"January 2, 2006",
}

// ParseDueDate parses a stored due date; ok is false when no known layout matches.
func ParseDueDate(value string) (t time.Time, ok bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// DueInMonth reports whether the due date falls in the UTC month of now.
func DueInMonth(dueDate string, now time.Time) bool {
	t, ok := ParseDueDate(dueDate)
	if !ok {
		return false
	}
	now = now.UTC()
	return t.Year() == now.Year() && t.Month() == now.Month()
}

// ReminderID is the identifier of the reminder for a payment in a given month.
func ReminderID(paymentID string, now time.Time) string {
	return paymentID + "-" + now.UTC().Format("2006-01")
}
