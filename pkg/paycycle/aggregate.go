package paycycle

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment status values fed into collection sums.
const (
	StatusPaid    = "paid"
	StatusPending = "pending"
	StatusPartial = "partial"
)

// UpcomingWindowDays is how far ahead a due date counts as "upcoming".
const UpcomingWindowDays = 3

// GuestDue is the slice of a guest record the engine needs for
// classification: the storage layer materializes these.
type GuestDue struct {
	DueDate time.Time
	Amount  decimal.Decimal
	Active  bool
}

// PaymentRecord is the slice of a payment the engine needs for aggregation.
type PaymentRecord struct {
	Amount decimal.Decimal
	Date   time.Time
	Status string
}

// OverdueGuests returns the active guests whose due date is strictly past.
func OverdueGuests(guests []GuestDue, now time.Time) []GuestDue {
	var out []GuestDue
	for _, g := range guests {
		if g.Active && IsOverdue(g.DueDate, now) {
			out = append(out, g)
		}
	}
	return out
}

// UpcomingGuests returns the active guests due within the next
// UpcomingWindowDays days (inclusive on both ends, not yet overdue).
func UpcomingGuests(guests []GuestDue, now time.Time) []GuestDue {
	limit := now.AddDate(0, 0, UpcomingWindowDays)
	var out []GuestDue
	for _, g := range guests {
		if !g.Active {
			continue
		}
		if !g.DueDate.Before(now) && !g.DueDate.After(limit) {
			out = append(out, g)
		}
	}
	return out
}

// TotalPending sums the standard cadence amount over all overdue active
// guests. It is the guest's regular amount, not accumulated arrears; missed
// cycles are settled manually by the operator.
func TotalPending(guests []GuestDue, now time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, g := range OverdueGuests(guests, now) {
		total = total.Add(g.Amount)
	}
	return total
}

// CollectionBetween sums paid payments dated within [start, end].
func CollectionBetween(payments []PaymentRecord, start, end time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		if p.Status != StatusPaid {
			continue
		}
		if p.Date.Before(start) || p.Date.After(end) {
			continue
		}
		total = total.Add(p.Amount)
	}
	return total
}

// DayRange bounds the calendar day containing now.
func DayRange(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// WeekRange bounds the week containing now. Weeks start on Sunday.
func WeekRange(now time.Time) (time.Time, time.Time) {
	start, _ := DayRange(now)
	start = start.AddDate(0, 0, -int(start.Weekday()))
	return start, start.AddDate(0, 0, 7).Add(-time.Nanosecond)
}

// MonthRange bounds the calendar month containing now.
func MonthRange(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 1, 0).Add(-time.Nanosecond)
}
