package paycycle

import (
	"testing"
	"time"
)

func TestReconcileOverdueStartsFreshCycle(t *testing.T) {
	today := date(2024, time.June, 10)
	// Already overdue: result is one fresh unit of the new cadence,
	// whatever the old cadence was.
	past := date(2024, time.June, 1)
	for _, c := range []Cadence{Daily, Weekly, Monthly} {
		if got, want := Reconcile(today, past, c), Advance(today, c, 1); !got.Equal(want) {
			t.Fatalf("overdue -> %s: got %v, want %v", c, got, want)
		}
	}
	// Due exactly today counts as <= 0 remaining: fresh cycle too.
	if got := Reconcile(today, today, Weekly); !got.Equal(date(2024, time.June, 17)) {
		t.Fatalf("due today: got %v, want 2024-06-17", got)
	}
}

func TestReconcileMonthlyToWeekly(t *testing.T) {
	today := date(2024, time.June, 10)
	// 10 days remaining converts to ceil(10/7) = 2 weeks.
	oldDue := date(2024, time.June, 20)
	if got := Reconcile(today, oldDue, Weekly); !got.Equal(date(2024, time.June, 24)) {
		t.Fatalf("10 days -> weekly: got %v, want 2024-06-24", got)
	}
	// 3 days remaining still buys a full week (floor of one unit).
	if got := Reconcile(today, date(2024, time.June, 13), Weekly); !got.Equal(date(2024, time.June, 17)) {
		t.Fatalf("3 days -> weekly: got %v, want 2024-06-17", got)
	}
}

func TestReconcileToDailyKeepsDays(t *testing.T) {
	today := date(2024, time.June, 10)
	oldDue := date(2024, time.June, 25)
	if got := Reconcile(today, oldDue, Daily); !got.Equal(oldDue) {
		t.Fatalf("daily keeps remaining days: got %v, want %v", got, oldDue)
	}
}

func TestReconcileToMonthly(t *testing.T) {
	today := date(2024, time.June, 10)
	// 45 days remaining: ceil(45/30) = 2 months.
	if got := Reconcile(today, date(2024, time.July, 25), Monthly); !got.Equal(date(2024, time.August, 10)) {
		t.Fatalf("45 days -> monthly: got %v, want 2024-08-10", got)
	}
	// 5 days remaining rounds up to a full month.
	if got := Reconcile(today, date(2024, time.June, 15), Monthly); !got.Equal(date(2024, time.July, 10)) {
		t.Fatalf("5 days -> monthly: got %v, want 2024-07-10", got)
	}
}

func TestDaysBetween(t *testing.T) {
	a := date(2024, time.June, 10)
	if d := daysBetween(a, date(2024, time.June, 20)); d != 10 {
		t.Fatalf("forward: got %d, want 10", d)
	}
	if d := daysBetween(a, date(2024, time.June, 5)); d != -5 {
		t.Fatalf("backward: got %d, want -5", d)
	}
	// Partial days truncate toward zero.
	if d := daysBetween(a, a.Add(36*time.Hour)); d != 1 {
		t.Fatalf("partial: got %d, want 1", d)
	}
}
