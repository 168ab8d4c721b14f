package paycycle

import "time"

// Reconcile converts a guest's due date when their cadence changes
// mid-cycle, so time already paid for is not lost on the switch.
//
// The conversion is an approximation by design: remaining days map to the
// new unit by dividing by 7 (weekly) or 30 (monthly), rounding up, with a
// floor of one unit. If the old due date is today or already past, a fresh
// cycle starts from today instead.
func Reconcile(today, oldDueDate time.Time, newCadence Cadence) time.Time {
	daysRemaining := daysBetween(today, oldDueDate)
	if daysRemaining <= 0 {
		return Advance(today, newCadence, 1)
	}
	switch newCadence {
	case Daily:
		return Advance(today, Daily, maxInt(1, daysRemaining))
	case Weekly:
		return Advance(today, Weekly, maxInt(1, ceilDiv(daysRemaining, 7)))
	default:
		return Advance(today, Monthly, maxInt(1, ceilDiv(daysRemaining, 30)))
	}
}

// daysBetween returns whole days from a to b, truncating partial days.
// Negative when b is before a.
func daysBetween(a, b time.Time) int {
	d := b.Sub(a)
	if d < 0 {
		return -int(-d / (24 * time.Hour))
	}
	return int(d / (24 * time.Hour))
}

func ceilDiv(n, unit int) int {
	return (n + unit - 1) / unit
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
