package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"pgmanager/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const backupVersion = "1.0"

// backupEnvelope is the JSON backup format. Version gates imports so a
// future schema change can refuse old files explicitly.
type backupEnvelope struct {
	Version    string            `json:"version"`
	ExportDate time.Time         `json:"export_date"`
	AppName    string            `json:"app_name"`
	Guests     []models.Guest    `json:"guests"`
	Guardians  []models.Guardian `json:"guardians"`
	Payments   []models.Payment  `json:"payments"`
}

func loadBackupData() (*backupEnvelope, error) {
	env := &backupEnvelope{Version: backupVersion, ExportDate: time.Now(), AppName: "PG Manager"}
	if err := db.Find(&env.Guests).Error; err != nil {
		return nil, err
	}
	if err := db.Find(&env.Guardians).Error; err != nil {
		return nil, err
	}
	// Unscoped so soft-deleted payments survive a backup/restore round trip.
	if err := db.Unscoped().Find(&env.Payments).Error; err != nil {
		return nil, err
	}
	return env, nil
}

// exportJSONHandler streams a full JSON backup.
func exportJSONHandler(c *gin.Context) {
	env, err := loadBackupData()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}
	if user, ok := getUserFromContext(c); ok {
		logg.WithField("username", user.Username).Info("JSON backup exported")
	}
	c.Header("Content-Disposition", "attachment; filename="+backupFileName("json"))
	c.JSON(http.StatusOK, env)
}

// exportCSVHandler writes guests, payments and guardians as one CSV file
// with section markers, the layout the mobile app's export used.
func exportCSVHandler(c *gin.Context) {
	env, err := loadBackupData()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	fmt.Fprintln(buf, "=== GUESTS DATA ===")
	w.Write([]string{"ID", "First Name", "Last Name", "Age", "Gender", "Mobile", "Email",
		"ID Number", "Room", "Bed", "Payment Type", "Payment Amount", "Due Date", "Join Date", "Active"})
	for _, g := range env.Guests {
		active := "No"
		if g.IsActive {
			active = "Yes"
		}
		w.Write([]string{
			strconv.FormatUint(uint64(g.ID), 10),
			g.FirstName, g.LastName,
			strconv.Itoa(g.Age), g.Gender, g.MobileNumber, g.Email,
			g.IDNumber, g.RoomNumber, g.BedNumber,
			g.PaymentType, g.PaymentAmount.String(),
			g.PaymentDueDate.Format("2006-01-02"),
			g.JoinDate.Format("2006-01-02"),
			active,
		})
	}
	w.Flush()

	fmt.Fprintln(buf, "\n=== PAYMENTS DATA ===")
	w.Write([]string{"ID", "Guest ID", "Amount", "Payment Date", "Payment Type", "Method",
		"Receipt Number", "Notes", "Period Start", "Period End", "Status"})
	for _, p := range env.Payments {
		w.Write([]string{
			strconv.FormatUint(uint64(p.ID), 10),
			strconv.FormatUint(uint64(p.GuestID), 10),
			p.Amount.String(),
			p.PaymentDate.Format("2006-01-02 15:04:05"),
			p.PaymentType, p.PaymentMethod, p.ReceiptNumber, p.Notes,
			p.PeriodStart.Format("2006-01-02"),
			p.PeriodEnd.Format("2006-01-02"),
			p.Status,
		})
	}
	w.Flush()

	fmt.Fprintln(buf, "\n=== GUARDIANS DATA ===")
	w.Write([]string{"ID", "Guest ID", "Name", "Relationship", "Mobile", "Address"})
	for _, g := range env.Guardians {
		w.Write([]string{
			strconv.FormatUint(uint64(g.ID), 10),
			strconv.FormatUint(uint64(g.GuestID), 10),
			g.Name, g.Relationship, g.MobileNumber, g.Address,
		})
	}
	w.Flush()

	if err := w.Error(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+backupFileName("csv"))
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

func backupFileName(ext string) string {
	return "PGManager_Export_" + time.Now().Format("20060102_150405") + "." + ext
}

// importJSONHandler restores a JSON backup, replacing all guest, guardian,
// payment and notification data in a single transaction. Existing operator
// accounts are untouched.
func importJSONHandler(c *gin.Context) {
	var env backupEnvelope
	if err := c.ShouldBindJSON(&env); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if env.Version == "" || env.Guests == nil || env.Payments == nil || env.Guardians == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file format, expected a PG Manager backup"})
		return
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		// Children first so guest rows never dangle mid-restore.
		for _, table := range []string{"notification_logs", "payments", "guardians", "guests"} {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return err
			}
		}
		for i := range env.Guests {
			if err := tx.Create(&env.Guests[i]).Error; err != nil {
				return err
			}
		}
		for i := range env.Guardians {
			if err := tx.Create(&env.Guardians[i]).Error; err != nil {
				return err
			}
		}
		for i := range env.Payments {
			if err := tx.Create(&env.Payments[i]).Error; err != nil {
				return err
			}
		}
		// Restored rows carry explicit ids; bump the sequences past them.
		for _, table := range []string{"guests", "guardians", "payments"} {
			q := fmt.Sprintf("SELECT setval(pg_get_serial_sequence('%s','id'), COALESCE(MAX(id),1)) FROM %s", table, table)
			if err := tx.Exec(q).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logg.Errorf("import failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "import failed"})
		return
	}
	if user, ok := getUserFromContext(c); ok {
		logg.WithField("username", user.Username).Info("JSON backup imported")
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Successfully imported %d guests, %d payments, and %d guardians.",
			len(env.Guests), len(env.Payments), len(env.Guardians)),
	})
}
