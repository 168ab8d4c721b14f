package main

import (
	"fmt"
	"os"
	"time"

	"pgmanager/models"
	"pgmanager/pkg/paycycle"

	"github.com/robfig/cron/v3"
)

// reminderContent builds the title/message pair for a guest's current
// payment state. Wording follows what operators already see in the app.
func reminderContent(guest *models.Guest, now time.Time) (string, string) {
	amount := guest.PaymentAmount.StringFixed(2)
	if paycycle.IsOverdue(guest.PaymentDueDate, now) {
		days := paycycle.DaysOverdue(guest.PaymentDueDate, now)
		return "Payment Overdue",
			fmt.Sprintf("%s's payment of ₹%s is %d days overdue. Please collect at the earliest.",
				guest.FullName(), amount, days)
	}
	return "Payment Reminder",
		fmt.Sprintf("%s's payment of ₹%s is due on %s.",
			guest.FullName(), amount, guest.PaymentDueDate.Format("02 Jan 2006"))
}

// logReminder writes a reminder entry for the guest. Delivery to an actual
// device is an external concern; the log is the system of record.
func logReminder(guest *models.Guest, now time.Time) (*models.NotificationLog, error) {
	title, message := reminderContent(guest, now)
	entry := models.NotificationLog{
		GuestID: guest.ID,
		Title:   title,
		Message: message,
		SentAt:  now,
	}
	if err := db.Create(&entry).Error; err != nil {
		return nil, err
	}
	logg.WithFields(map[string]interface{}{"guest_id": guest.ID, "title": title}).Debug("reminder logged")
	return &entry, nil
}

// startReminderScheduler runs the daily reminder sweep on a cron spec taken
// from CRON_SPEC_REMINDERS (default 9:00 every morning).
func startReminderScheduler() *cron.Cron {
	spec := os.Getenv("CRON_SPEC_REMINDERS")
	if spec == "" {
		spec = "0 9 * * *"
	}
	engine := cron.New(cron.WithLocation(time.Local))
	if _, err := engine.AddFunc(spec, runReminderSweep); err != nil {
		logg.Fatalf("could not add reminder cron job: %v", err)
	}
	engine.Start()
	logg.Infof("reminder scheduler started (spec %q)", spec)
	return engine
}

// runReminderSweep logs a reminder for every active guest who is overdue or
// due within the upcoming window. At most one entry per guest per day.
func runReminderSweep() {
	now := time.Now()
	var guests []models.Guest
	if err := db.Where("is_active = ?", true).Find(&guests).Error; err != nil {
		logg.Errorf("reminder sweep query failed: %v", err)
		return
	}

	dayStart, _ := paycycle.DayRange(now)
	limit := now.AddDate(0, 0, paycycle.UpcomingWindowDays)
	logged := 0
	for i := range guests {
		g := &guests[i]
		due := paycycle.IsOverdue(g.PaymentDueDate, now) ||
			(!g.PaymentDueDate.Before(now) && !g.PaymentDueDate.After(limit))
		if !due {
			continue
		}
		var cnt int64
		db.Model(&models.NotificationLog{}).
			Where("guest_id = ? AND sent_at >= ?", g.ID, dayStart).
			Count(&cnt)
		if cnt > 0 {
			continue
		}
		if _, err := logReminder(g, now); err != nil {
			logg.Errorf("reminder for guest %d failed: %v", g.ID, err)
			continue
		}
		logged++
	}
	logg.Infof("reminder sweep done: %d guests notified of %d active", logged, len(guests))
}
