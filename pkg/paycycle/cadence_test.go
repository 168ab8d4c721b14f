package paycycle

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAdvanceZeroPeriodsIsIdentity(t *testing.T) {
	d := date(2024, time.March, 15)
	for _, c := range []Cadence{Daily, Weekly, Monthly} {
		if got := Advance(d, c, 0); !got.Equal(d) {
			t.Fatalf("Advance(%s, 0) = %v, want unchanged %v", c, got, d)
		}
	}
}

func TestAdvanceDailyExact(t *testing.T) {
	d := date(2024, time.February, 27)
	for n := 0; n <= 40; n++ {
		want := d.AddDate(0, 0, n)
		if got := Advance(d, Daily, n); !got.Equal(want) {
			t.Fatalf("Advance(daily, %d) = %v, want %v", n, got, want)
		}
	}
}

func TestAdvanceWeekly(t *testing.T) {
	d := date(2024, time.March, 1)
	if got := Advance(d, Weekly, 2); !got.Equal(date(2024, time.March, 15)) {
		t.Fatalf("Advance(weekly, 2) = %v", got)
	}
}

func TestAdvanceMonthlyClampsMonthEnd(t *testing.T) {
	// Leap year: Jan 31 + 1 month lands on Feb 29.
	if got := Advance(date(2024, time.January, 31), Monthly, 1); !got.Equal(date(2024, time.February, 29)) {
		t.Fatalf("leap year clamp: got %v, want 2024-02-29", got)
	}
	// Non-leap year clamps to Feb 28.
	if got := Advance(date(2023, time.January, 31), Monthly, 1); !got.Equal(date(2023, time.February, 28)) {
		t.Fatalf("non-leap clamp: got %v, want 2023-02-28", got)
	}
	// Day preserved when the target month is long enough.
	if got := Advance(date(2024, time.February, 29), Monthly, 1); !got.Equal(date(2024, time.March, 29)) {
		t.Fatalf("day preservation: got %v, want 2024-03-29", got)
	}
	// Multiple months cross the clamped month without drifting.
	if got := Advance(date(2024, time.January, 31), Monthly, 2); !got.Equal(date(2024, time.March, 31)) {
		t.Fatalf("two months: got %v, want 2024-03-31", got)
	}
}

func TestAdvancePreservesClock(t *testing.T) {
	d := time.Date(2024, time.January, 31, 9, 30, 0, 0, time.UTC)
	got := Advance(d, Monthly, 1)
	if got.Hour() != 9 || got.Minute() != 30 {
		t.Fatalf("clock not preserved: got %v", got)
	}
}

func TestInitialDueDate(t *testing.T) {
	join := date(2024, time.March, 1)
	if got := InitialDueDate(join, Monthly, 0); !got.Equal(date(2024, time.April, 1)) {
		t.Fatalf("monthly, no advance: got %v, want 2024-04-01", got)
	}
	// Two periods paid in advance: 1 current + 2 = 3 months out.
	if got := InitialDueDate(join, Monthly, 2); !got.Equal(date(2024, time.June, 1)) {
		t.Fatalf("monthly, 2 advance: got %v, want 2024-06-01", got)
	}
	if got := InitialDueDate(join, Weekly, 1); !got.Equal(date(2024, time.March, 15)) {
		t.Fatalf("weekly, 1 advance: got %v, want 2024-03-15", got)
	}
	// Negative advance counts coerce to 0.
	if got := InitialDueDate(join, Daily, -5); !got.Equal(date(2024, time.March, 2)) {
		t.Fatalf("negative advance: got %v, want 2024-03-02", got)
	}
}

func TestNextDueDateFromPaymentMoment(t *testing.T) {
	// Joined 2024-03-01 monthly, pays on the due date 2024-04-01:
	// the new due date is one month from the payment moment.
	paidAt := date(2024, time.April, 1)
	if got := NextDueDate(paidAt, Monthly); !got.Equal(date(2024, time.May, 1)) {
		t.Fatalf("got %v, want 2024-05-01", got)
	}
	// A late payment on 2024-04-10 restarts the clock from the 10th,
	// independent of the missed due date.
	late := date(2024, time.April, 10)
	if got := NextDueDate(late, Monthly); !got.Equal(date(2024, time.May, 10)) {
		t.Fatalf("late payment: got %v, want 2024-05-10", got)
	}
}

func TestParseCadence(t *testing.T) {
	c, err := ParseCadence(" Weekly ")
	if err != nil || c != Weekly {
		t.Fatalf("expected weekly, got %q err=%v", c, err)
	}
	if _, err := ParseCadence("fortnightly"); err == nil {
		t.Fatalf("expected error for unknown cadence")
	}
	if _, err := ParseCadence(""); err == nil {
		t.Fatalf("expected error for empty cadence")
	}
}
