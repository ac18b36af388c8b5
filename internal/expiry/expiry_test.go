package expiry_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/esturismo/motoristas/internal/expiry"
)

func TestClassify(t *testing.T) {
	today := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)
	day := func(offset int) string {
		return today.AddDate(0, 0, offset).Format(expiry.DateLayout)
	}

	tests := []struct {
		name string
		date string
		want expiry.Status
	}{
		{"yesterday", day(-1), expiry.Expired},
		{"long ago", "2001-01-01", expiry.Expired},
		{"today", day(0), expiry.Expiring},
		{"window edge", day(30), expiry.Expiring},
		{"past window", day(31), expiry.OK},
		{"absent", "", expiry.None},
		{"blank", "   ", expiry.None},
		{"unparseable", "10/03/2025", expiry.None},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, expiry.Classify(tt.date, today, expiry.DefaultWarnWindowDays))
		})
	}
}

// The time of day and location of today must not shift the boundary.
func TestClassify_IgnoresTimeOfDay(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	lateEvening := time.Date(2025, 3, 10, 23, 59, 0, 0, loc)

	assert.Equal(t, expiry.Expiring, expiry.Classify("2025-03-10", lateEvening, 30))
	assert.Equal(t, expiry.Expired, expiry.Classify("2025-03-09", lateEvening, 30))
}

func TestClassify_CustomWindow(t *testing.T) {
	today := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, expiry.OK, expiry.Classify("2025-03-18", today, 7))
	assert.Equal(t, expiry.Expiring, expiry.Classify("2025-03-17", today, 7))
}
