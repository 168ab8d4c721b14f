package paycycle

import (
	"testing"
	"time"
)

func TestIsOverdueStrict(t *testing.T) {
	due := date(2024, time.May, 1)
	if IsOverdue(due, due) {
		t.Fatalf("not overdue at the exact due instant")
	}
	if !IsOverdue(due, due.Add(time.Second)) {
		t.Fatalf("overdue one second past due")
	}
	if IsOverdue(due, due.Add(-time.Second)) {
		t.Fatalf("not overdue before due")
	}
}

func TestDaysOverdueFloors(t *testing.T) {
	due := date(2024, time.May, 1)
	if d := DaysOverdue(due, due); d != 0 {
		t.Fatalf("at due: got %d, want 0", d)
	}
	if d := DaysOverdue(due, due.Add(12*time.Hour)); d != 0 {
		t.Fatalf("half day: got %d, want 0", d)
	}
	// 2.5 days overdue floors to 2.
	if d := DaysOverdue(due, due.Add(60*time.Hour)); d != 2 {
		t.Fatalf("2.5 days: got %d, want 2", d)
	}
	if d := DaysOverdue(due, due.AddDate(0, 0, 7)); d != 7 {
		t.Fatalf("7 days: got %d, want 7", d)
	}
}
