// Package expiry classifies license and course expiration dates relative to
// the current day.
package expiry

import (
	"strings"
	"time"
)

// DateLayout is the stored layout of expiry dates.
const DateLayout = "2006-01-02"

// DefaultWarnWindowDays is the lookahead in which a date counts as expiring.
const DefaultWarnWindowDays = 30

// Status is the classification of an expiry date.
type Status string

const (
	None     Status = "none"
	OK       Status = "ok"
	Expiring Status = "expiring"
	Expired  Status = "expired"
)

// Classify returns None when date is empty or unparseable, Expired when it is
// before today, Expiring when it falls within warnWindowDays of today
// (inclusive on both ends) and OK otherwise.
// Only the calendar day of today is used.
func Classify(date string, today time.Time, warnWindowDays int) Status {
	date = strings.TrimSpace(date)
	if date == "" {
		return None
	}
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return None
	}
	y, m, dd := today.Date()
	t := time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)
	switch {
	case d.Before(t):
		return Expired
	case !d.After(t.AddDate(0, 0, warnWindowDays)):
		return Expiring
	}
	return OK
}
