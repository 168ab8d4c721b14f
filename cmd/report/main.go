package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"pgmanager/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func mustDBFromEnv() *gorm.DB {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN not set in env")
	}
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	return gdb
}

// Prints a month-bounded collection report (month in YYYY-MM) and optionally
// lists the matching payment rows.
func main() {
	month := flag.String("month", time.Now().Format("2006-01"), "month to report, YYYY-MM")
	list := flag.Bool("list", false, "list individual payments")
	flag.Parse()

	gdb := mustDBFromEnv()

	t, err := time.Parse("2006-01", *month)
	if err != nil {
		log.Fatalf("invalid month format, expected YYYY-MM: %v", err)
	}
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	var total sql.NullFloat64
	var cnt int64
	if err := gdb.Raw(`SELECT COALESCE(SUM(amount),0) AS total, COUNT(*) AS cnt FROM payments WHERE deleted_at IS NULL AND status = 'paid' AND payment_date >= ? AND payment_date < ?`, start, end).Row().Scan(&total, &cnt); err != nil {
		log.Fatalf("query failed: %v", err)
	}

	fmt.Printf("Collection report for month=%s (UTC):\n", *month)
	fmt.Printf("  payments=%d total_collected=%.2f\n", cnt, total.Float64)

	if *list {
		var rows []models.Payment
		if err := gdb.Where("status = ? AND payment_date >= ? AND payment_date < ?", "paid", start, end).Order("id").Find(&rows).Error; err != nil {
			log.Fatalf("fetch rows failed: %v", err)
		}
		for _, r := range rows {
			fmt.Printf("%d|%d|%s|%s|%s|%s\n", r.ID, r.GuestID, r.ReceiptNumber, r.Amount.StringFixed(2), r.PaymentMethod, r.PaymentDate.Format(time.RFC3339))
		}
	}
}
