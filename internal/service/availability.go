package service

import (
	"fmt"
	"time"

	"github.com/Phenoo/bookkeep-server/internal/models"
)

const dateLayout = "2006-01-02"

// Availability is the outcome of a conflict check. Conflict is the first
// colliding booking found, nil when the interval is free.
type Availability struct {
	Available bool
	Conflict  *models.Booking
}

// ParseDate parses an ISO-8601 date string. Plain dates ("2026-09-01") and
// full RFC 3339 timestamps are accepted; timestamps are truncated to their
// calendar date in UTC. Callers must stick to one timezone convention.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return t.UTC().Truncate(24 * time.Hour), nil
}

// overlaps reports whether [aStart, aEnd) intersects [bStart, bEnd).
// Intervals sharing only an endpoint do not overlap: a checkout day can be
// another booking's checkin day.
func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// findConflict scans existing bookings for the first one whose interval
// intersects [start, end), skipping excludeID so a booking under edit never
// conflicts with itself. excludeID zero means no exclusion.
func findConflict(existing []models.Booking, start, end time.Time, excludeID uint) *models.Booking {
	for i := range existing {
		b := &existing[i]
		if excludeID != 0 && b.ID == excludeID {
			continue
		}
		if overlaps(start, end, b.StartDate, b.EndDate) {
			return b
		}
	}
	return nil
}
