package paycycle

import (
	"fmt"
	"strings"
	"time"
)

// Cadence is how often a guest pays.
type Cadence string

const (
	Daily   Cadence = "daily"
	Weekly  Cadence = "weekly"
	Monthly Cadence = "monthly"
)

// ParseCadence validates a cadence string coming from the API boundary.
func ParseCadence(s string) (Cadence, error) {
	switch Cadence(strings.ToLower(strings.TrimSpace(s))) {
	case Daily:
		return Daily, nil
	case Weekly:
		return Weekly, nil
	case Monthly:
		return Monthly, nil
	}
	return "", fmt.Errorf("invalid cadence %q (want daily, weekly or monthly)", s)
}

// Valid reports whether c is one of the three known cadences.
func (c Cadence) Valid() bool {
	return c == Daily || c == Weekly || c == Monthly
}

// Advance adds periods cadence units to d. periods <= 0 returns d unchanged.
// Monthly addition uses same-day-next-month semantics with end-of-month
// clamping (Jan 31 + 1 month = Feb 28/29), not time.AddDate normalization.
func Advance(d time.Time, c Cadence, periods int) time.Time {
	if periods <= 0 {
		return d
	}
	switch c {
	case Daily:
		return d.AddDate(0, 0, periods)
	case Weekly:
		return d.AddDate(0, 0, 7*periods)
	default:
		return addMonthsClamped(d, periods)
	}
}

// InitialDueDate computes the first due date at registration:
// one cadence unit past the join date plus any periods paid in advance.
// A negative advanceCount is treated as 0.
func InitialDueDate(joinDate time.Time, c Cadence, advanceCount int) time.Time {
	if advanceCount < 0 {
		advanceCount = 0
	}
	return Advance(joinDate, c, 1+advanceCount)
}

// NextDueDate is the due date after recording a payment: one cadence unit
// from the payment moment, regardless of the previous due date. Recording a
// late payment restarts the clock from now; arrears are handled by the
// operator through the payment amount and notes.
func NextDueDate(now time.Time, c Cadence) time.Time {
	return Advance(now, c, 1)
}

// addMonthsClamped adds months keeping the day of month, clamping to the
// last day when the target month is shorter.
func addMonthsClamped(d time.Time, months int) time.Time {
	y, m, day := d.Date()
	first := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, d.Location())
	if last := daysIn(first.Year(), first.Month()); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day,
		d.Hour(), d.Minute(), d.Second(), d.Nanosecond(), d.Location())
}

// daysIn returns the number of days in a month: first of the next month
// minus one day.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1).Day()
}
