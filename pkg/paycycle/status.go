package paycycle

import "time"

// IsOverdue reports whether a due date has passed. The comparison is strict:
// a guest is not overdue at the exact due instant.
func IsOverdue(dueDate, now time.Time) bool {
	return dueDate.Before(now)
}

// DaysOverdue returns the number of whole days past the due date, or 0 when
// the guest is not overdue. 2.5 days late counts as 2.
func DaysOverdue(dueDate, now time.Time) int {
	if !IsOverdue(dueDate, now) {
		return 0
	}
	return int(now.Sub(dueDate) / (24 * time.Hour))
}
