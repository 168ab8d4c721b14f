package main

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"pgmanager/models"
	"pgmanager/pkg/paycycle"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	mobileRE   = regexp.MustCompile(`^[0-9]{10}$`)
	idNumberRE = regexp.MustCompile(`^[0-9]{12}$`)
)

func setupRoutes(r *gin.Engine) {
	r.POST("/register", registerHandler)
	r.POST("/login", loginHandler)
	r.POST("/refresh", refreshHandler)
	r.POST("/revoke_refresh", revokeRefreshHandler)
	authGroup := r.Group("")
	authGroup.Use(jwtAuthMiddleware())
	authGroup.GET("/me", meHandler)
	authGroup.POST("/guests", createGuestHandler)
	authGroup.GET("/guests", listGuestsHandler)
	authGroup.GET("/guests/:id", getGuestHandler)
	authGroup.PUT("/guests/:id", updateGuestHandler)
	authGroup.DELETE("/guests/:id", deactivateGuestHandler)
	authGroup.POST("/guests/:id/payments", recordPaymentHandler)
	authGroup.POST("/guests/:id/remind", remindGuestHandler)
	authGroup.GET("/payments", listPaymentsHandler)
	authGroup.GET("/payments/pending", pendingPaymentsHandler)
	authGroup.GET("/payments/:id", getPaymentHandler)
	authGroup.DELETE("/payments/:id", deletePaymentHandler)
	authGroup.GET("/dashboard", dashboardHandler)
	authGroup.GET("/reports/collections", collectionsReportHandler)
	authGroup.GET("/notifications", listNotificationsHandler)
	authGroup.GET("/export/json", exportJSONHandler)
	authGroup.GET("/export/csv", exportCSVHandler)
	authGroup.POST("/import/json", importJSONHandler)
}

func jwtAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || len(authHeader) < 8 || authHeader[:7] != "Bearer " {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid Authorization header"})
			c.Abort()
			return
		}
		tokenString := authHeader[7:]
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrInvalidKeyType
			}
			return jwtSecret, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			c.Abort()
			return
		}
		username, _ := claims["username"].(string)
		role, _ := claims["role"].(string)
		c.Set("username", username)
		if role != "" {
			c.Set("role", role)
		}
		c.Next()
	}
}

func meHandler(c *gin.Context) {
	usernameVal, _ := c.Get("username")
	if usernameVal == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "context missing username"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": usernameVal.(string)})
}

// getUserFromContext fetches the currently authenticated operator using the username set by jwtAuthMiddleware
func getUserFromContext(c *gin.Context) (*models.User, bool) {
	unameVal, _ := c.Get("username")
	if unameVal == nil {
		return nil, false
	}
	var user models.User
	if err := db.Where("username = ?", unameVal.(string)).First(&user).Error; err != nil {
		return nil, false
	}
	return &user, true
}

// guardianInput is the embedded guardian payload on guest create/update.
type guardianInput struct {
	Name         string `json:"name" binding:"required"`
	Relationship string `json:"relationship"`
	MobileNumber string `json:"mobile_number"`
	Address      string `json:"address"`
}

// validateGuestFields applies the registration rules shared by create and
// update: well-formed contact numbers, sane age, positive amount.
func validateGuestFields(firstName, lastName string, age int, mobile, idNumber string, amount decimal.Decimal) error {
	if len(strings.TrimSpace(firstName)) < 2 || len(strings.TrimSpace(lastName)) < 2 {
		return fmt.Errorf("first and last name must be at least 2 characters")
	}
	if age < 1 || age > 150 {
		return fmt.Errorf("age must be between 1 and 150")
	}
	if !mobileRE.MatchString(mobile) {
		return fmt.Errorf("mobile number must be 10 digits")
	}
	if !idNumberRE.MatchString(idNumber) {
		return fmt.Errorf("id number must be 12 digits")
	}
	if !amount.IsPositive() {
		return fmt.Errorf("payment amount must be positive")
	}
	return nil
}

// createGuestHandler registers a guest. The initial due date is one cadence
// unit past the join date plus any periods paid in advance, unless the
// operator supplies an explicit due date.
func createGuestHandler(c *gin.Context) {
	var req struct {
		FirstName           string          `json:"first_name" binding:"required"`
		LastName            string          `json:"last_name" binding:"required"`
		Age                 int             `json:"age" binding:"required"`
		Gender              string          `json:"gender"`
		MobileNumber        string          `json:"mobile_number" binding:"required"`
		Email               string          `json:"email"`
		IDNumber            string          `json:"id_number" binding:"required"`
		PhotoPath           string          `json:"photo_path"`
		RoomNumber          string          `json:"room_number" binding:"required"`
		BedNumber           string          `json:"bed_number"`
		PaymentType         string          `json:"payment_type" binding:"required"`
		PaymentAmount       decimal.Decimal `json:"payment_amount"`
		AdvancePaymentCount int             `json:"advance_payment_count"`
		JoinDate            string          `json:"join_date"` // RFC3339, defaults to now
		DueDate             string          `json:"due_date"`  // RFC3339, overrides the computed date
		Guardian            *guardianInput  `json:"guardian"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cadence, err := paycycle.ParseCadence(req.PaymentType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validateGuestFields(req.FirstName, req.LastName, req.Age, req.MobileNumber, req.IDNumber, req.PaymentAmount); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	joinDate := time.Now()
	if req.JoinDate != "" {
		t, err := time.Parse(time.RFC3339, req.JoinDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid join_date, expected RFC3339"})
			return
		}
		joinDate = t
	}
	dueDate := paycycle.InitialDueDate(joinDate, cadence, req.AdvancePaymentCount)
	if req.DueDate != "" {
		t, err := time.Parse(time.RFC3339, req.DueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid due_date, expected RFC3339"})
			return
		}
		dueDate = t
	}

	guest := models.Guest{
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       strings.TrimSpace(req.LastName),
		Age:            req.Age,
		Gender:         req.Gender,
		MobileNumber:   req.MobileNumber,
		Email:          req.Email,
		IDNumber:       req.IDNumber,
		PhotoPath:      req.PhotoPath,
		RoomNumber:     req.RoomNumber,
		BedNumber:      req.BedNumber,
		PaymentType:    string(cadence),
		PaymentAmount:  req.PaymentAmount,
		PaymentDueDate: dueDate,
		JoinDate:       joinDate,
		IsActive:       true,
	}
	if req.Guardian != nil {
		guest.Guardians = []models.Guardian{{
			Name:         req.Guardian.Name,
			Relationship: req.Guardian.Relationship,
			MobileNumber: req.Guardian.MobileNumber,
			Address:      req.Guardian.Address,
		}}
	}
	if err := db.Create(&guest).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": guest.ID, "payment_due_date": guest.PaymentDueDate})
}

// listGuestsHandler lists guests, newest first. ?active=true limits to
// active guests, ?q= searches name, mobile and room.
func listGuestsHandler(c *gin.Context) {
	q := db.Model(&models.Guest{})
	if c.Query("active") == "true" {
		q = q.Where("is_active = ?", true)
	}
	if search := strings.TrimSpace(c.Query("q")); search != "" {
		like := "%" + search + "%"
		q = q.Where("first_name ILIKE ? OR last_name ILIKE ? OR mobile_number LIKE ? OR room_number LIKE ?", like, like, like, like)
	}
	var guests []models.Guest
	if err := q.Order("id desc").Limit(200).Find(&guests).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, guests)
}

func getGuestHandler(c *gin.Context) {
	var guest models.Guest
	if err := db.Preload("Guardians").First(&guest, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "guest not found"})
		return
	}
	var payments []models.Payment
	db.Where("guest_id = ?", guest.ID).Order("payment_date desc").Limit(20).Find(&payments)
	now := time.Now()
	c.JSON(http.StatusOK, gin.H{
		"guest":        guest,
		"payments":     payments,
		"is_overdue":   paycycle.IsOverdue(guest.PaymentDueDate, now),
		"days_overdue": paycycle.DaysOverdue(guest.PaymentDueDate, now),
	})
}

// updateGuestHandler edits a guest. Changing the payment cadence converts
// the current due date into the new cadence's units instead of resetting it,
// so time the guest has already paid for is not lost.
func updateGuestHandler(c *gin.Context) {
	var guest models.Guest
	if err := db.First(&guest, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "guest not found"})
		return
	}
	var req struct {
		FirstName     *string          `json:"first_name"`
		LastName      *string          `json:"last_name"`
		Age           *int             `json:"age"`
		Gender        *string          `json:"gender"`
		MobileNumber  *string          `json:"mobile_number"`
		Email         *string          `json:"email"`
		IDNumber      *string          `json:"id_number"`
		PhotoPath     *string          `json:"photo_path"`
		RoomNumber    *string          `json:"room_number"`
		BedNumber     *string          `json:"bed_number"`
		PaymentType   *string          `json:"payment_type"`
		PaymentAmount *decimal.Decimal `json:"payment_amount"`
		DueDate       *string          `json:"due_date"` // explicit override wins over reconciliation
		JoinDate      *string          `json:"join_date"`
		IsActive      *bool            `json:"is_active"`
		Guardian      *guardianInput   `json:"guardian"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.FirstName != nil {
		guest.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		guest.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Age != nil {
		guest.Age = *req.Age
	}
	if req.Gender != nil {
		guest.Gender = *req.Gender
	}
	if req.MobileNumber != nil {
		guest.MobileNumber = *req.MobileNumber
	}
	if req.Email != nil {
		guest.Email = *req.Email
	}
	if req.IDNumber != nil {
		guest.IDNumber = *req.IDNumber
	}
	if req.PhotoPath != nil {
		guest.PhotoPath = *req.PhotoPath
	}
	if req.RoomNumber != nil {
		guest.RoomNumber = *req.RoomNumber
	}
	if req.BedNumber != nil {
		guest.BedNumber = *req.BedNumber
	}
	if req.PaymentAmount != nil {
		guest.PaymentAmount = *req.PaymentAmount
	}
	if req.IsActive != nil {
		guest.IsActive = *req.IsActive
	}
	if req.JoinDate != nil {
		t, err := time.Parse(time.RFC3339, *req.JoinDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid join_date, expected RFC3339"})
			return
		}
		guest.JoinDate = t
	}

	cadenceChanged := false
	if req.PaymentType != nil && *req.PaymentType != guest.PaymentType {
		cadence, err := paycycle.ParseCadence(*req.PaymentType)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		guest.PaymentDueDate = paycycle.Reconcile(time.Now(), guest.PaymentDueDate, cadence)
		guest.PaymentType = string(cadence)
		cadenceChanged = true
	}
	if req.DueDate != nil {
		t, err := time.Parse(time.RFC3339, *req.DueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid due_date, expected RFC3339"})
			return
		}
		guest.PaymentDueDate = t
	}

	if err := validateGuestFields(guest.FirstName, guest.LastName, guest.Age, guest.MobileNumber, guest.IDNumber, guest.PaymentAmount); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&guest).Error; err != nil {
			return err
		}
		if req.Guardian != nil {
			if err := tx.Where("guest_id = ?", guest.ID).Delete(&models.Guardian{}).Error; err != nil {
				return err
			}
			g := models.Guardian{
				GuestID:      guest.ID,
				Name:         req.Guardian.Name,
				Relationship: req.Guardian.Relationship,
				MobileNumber: req.Guardian.MobileNumber,
				Address:      req.Guardian.Address,
			}
			if err := tx.Create(&g).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":               guest.ID,
		"payment_due_date": guest.PaymentDueDate,
		"cadence_changed":  cadenceChanged,
	})
}

// deactivateGuestHandler soft-deletes a guest by marking it inactive.
// History (payments, notification logs) is kept.
func deactivateGuestHandler(c *gin.Context) {
	var guest models.Guest
	if err := db.First(&guest, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "guest not found"})
		return
	}
	if err := db.Model(&guest).Update("is_active", false).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": guest.ID, "is_active": false})
}

// recordPaymentHandler records a payment and advances the guest's due date
// by one cadence unit from the payment moment. Both writes happen in one
// transaction. A late payment restarts the cycle from now; missed-cycle
// arrears are the operator's to settle via amount and notes.
func recordPaymentHandler(c *gin.Context) {
	var guest models.Guest
	if err := db.First(&guest, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "guest not found"})
		return
	}
	var req struct {
		Amount        decimal.Decimal `json:"amount"`
		PaymentMethod string          `json:"payment_method" binding:"required"`
		Status        string          `json:"status"`
		ReceiptNumber string          `json:"receipt_number"`
		Notes         string          `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Amount.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "payment amount must be positive"})
		return
	}
	status := req.Status
	if status == "" {
		status = paycycle.StatusPaid
	}
	if status != paycycle.StatusPaid && status != paycycle.StatusPending && status != paycycle.StatusPartial {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be paid, pending or partial"})
		return
	}
	cadence, err := paycycle.ParseCadence(guest.PaymentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "guest has invalid payment type"})
		return
	}

	now := time.Now()
	nextDue := paycycle.NextDueDate(now, cadence)
	receipt := req.ReceiptNumber
	if receipt == "" {
		receipt = generateReceiptNumber()
	}

	payment := models.Payment{
		GuestID:       guest.ID,
		Amount:        req.Amount,
		PaymentDate:   now,
		PaymentType:   guest.PaymentType,
		PaymentMethod: req.PaymentMethod,
		ReceiptNumber: receipt,
		Notes:         strings.TrimSpace(req.Notes),
		PeriodStart:   now,
		PeriodEnd:     nextDue,
		Status:        status,
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		return tx.Model(&guest).Update("payment_due_date", nextDue).Error
	})
	if err != nil {
		if isUniqueConstraintError(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "receipt number already used"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "record payment failed"})
		return
	}
	logg.WithFields(map[string]interface{}{
		"guest_id": guest.ID,
		"amount":   payment.Amount.String(),
		"next_due": nextDue.Format("2006-01-02"),
	}).Info("payment recorded")
	c.JSON(http.StatusOK, gin.H{
		"id":               payment.ID,
		"receipt_number":   payment.ReceiptNumber,
		"payment_due_date": nextDue,
	})
}

// generateReceiptNumber builds a short unique receipt id.
func generateReceiptNumber() string {
	return "RCP-" + strings.ToUpper(uuid.NewString()[:8])
}

// listPaymentsHandler lists payment history, optionally filtered by guest,
// status and date range.
func listPaymentsHandler(c *gin.Context) {
	q := db.Model(&models.Payment{})
	if gid := c.Query("guest_id"); gid != "" {
		q = q.Where("guest_id = ?", gid)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			q = q.Where("payment_date >= ?", t)
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			q = q.Where("payment_date <= ?", t)
		}
	}
	var payments []models.Payment
	if err := q.Order("payment_date desc").Limit(200).Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, payments)
}

func getPaymentHandler(c *gin.Context) {
	var payment models.Payment
	if err := db.First(&payment, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "payment not found"})
		return
	}
	c.JSON(http.StatusOK, payment)
}

// deletePaymentHandler soft-deletes a payment record. The guest's due date
// is not rolled back; the operator corrects it through guest edit if needed.
func deletePaymentHandler(c *gin.Context) {
	var payment models.Payment
	if err := db.First(&payment, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "payment not found"})
		return
	}
	if err := db.Delete(&payment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": payment.ID, "deleted": true})
}

// pendingGuestView is a list entry for the pending payments view.
type pendingGuestView struct {
	ID             uint            `json:"id"`
	FullName       string          `json:"full_name"`
	RoomNumber     string          `json:"room_number"`
	MobileNumber   string          `json:"mobile_number"`
	PaymentType    string          `json:"payment_type"`
	PaymentAmount  decimal.Decimal `json:"payment_amount"`
	PaymentDueDate time.Time       `json:"payment_due_date"`
	DaysOverdue    int             `json:"days_overdue"`
}

// pendingPaymentsHandler splits active guests into overdue and upcoming
// (due within the next 3 days) sets.
func pendingPaymentsHandler(c *gin.Context) {
	var guests []models.Guest
	if err := db.Where("is_active = ?", true).Find(&guests).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	now := time.Now()
	limit := now.AddDate(0, 0, paycycle.UpcomingWindowDays)
	overdue := []pendingGuestView{}
	upcoming := []pendingGuestView{}
	for _, g := range guests {
		view := pendingGuestView{
			ID:             g.ID,
			FullName:       g.FullName(),
			RoomNumber:     g.RoomNumber,
			MobileNumber:   g.MobileNumber,
			PaymentType:    g.PaymentType,
			PaymentAmount:  g.PaymentAmount,
			PaymentDueDate: g.PaymentDueDate,
			DaysOverdue:    paycycle.DaysOverdue(g.PaymentDueDate, now),
		}
		switch {
		case paycycle.IsOverdue(g.PaymentDueDate, now):
			overdue = append(overdue, view)
		case !g.PaymentDueDate.After(limit):
			upcoming = append(upcoming, view)
		}
	}
	c.JSON(http.StatusOK, gin.H{"overdue": overdue, "upcoming": upcoming})
}

// dashboardHandler computes the headline stats over the full guest and
// payment sets, recomputed on every read.
func dashboardHandler(c *gin.Context) {
	guests, payments, err := loadAggregationInputs()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	now := time.Now()
	var totalGuests, activeGuests int
	dues := make([]paycycle.GuestDue, 0, len(guests))
	for _, g := range guests {
		totalGuests++
		if g.IsActive {
			activeGuests++
		}
		dues = append(dues, paycycle.GuestDue{DueDate: g.PaymentDueDate, Amount: g.PaymentAmount, Active: g.IsActive})
	}
	records := paymentRecords(payments)

	dayStart, dayEnd := paycycle.DayRange(now)
	monthStart, monthEnd := paycycle.MonthRange(now)
	c.JSON(http.StatusOK, gin.H{
		"total_guests":       totalGuests,
		"active_guests":      activeGuests,
		"overdue_payments":   len(paycycle.OverdueGuests(dues, now)),
		"today_collection":   paycycle.CollectionBetween(records, dayStart, dayEnd),
		"monthly_collection": paycycle.CollectionBetween(records, monthStart, monthEnd),
		"total_pending":      paycycle.TotalPending(dues, now),
	})
}

// collectionsReportHandler sums paid payments over today, this week and
// this month.
func collectionsReportHandler(c *gin.Context) {
	var payments []models.Payment
	if err := db.Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	records := paymentRecords(payments)
	now := time.Now()
	dayStart, dayEnd := paycycle.DayRange(now)
	weekStart, weekEnd := paycycle.WeekRange(now)
	monthStart, monthEnd := paycycle.MonthRange(now)
	c.JSON(http.StatusOK, gin.H{
		"today_collection":   paycycle.CollectionBetween(records, dayStart, dayEnd),
		"weekly_collection":  paycycle.CollectionBetween(records, weekStart, weekEnd),
		"monthly_collection": paycycle.CollectionBetween(records, monthStart, monthEnd),
	})
}

func loadAggregationInputs() ([]models.Guest, []models.Payment, error) {
	var guests []models.Guest
	if err := db.Find(&guests).Error; err != nil {
		return nil, nil, err
	}
	var payments []models.Payment
	if err := db.Find(&payments).Error; err != nil {
		return nil, nil, err
	}
	return guests, payments, nil
}

func paymentRecords(payments []models.Payment) []paycycle.PaymentRecord {
	records := make([]paycycle.PaymentRecord, 0, len(payments))
	for _, p := range payments {
		records = append(records, paycycle.PaymentRecord{Amount: p.Amount, Date: p.PaymentDate, Status: p.Status})
	}
	return records
}

// remindGuestHandler writes an immediate reminder into the notification log.
func remindGuestHandler(c *gin.Context) {
	var guest models.Guest
	if err := db.First(&guest, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "guest not found"})
		return
	}
	if !guest.IsActive {
		c.JSON(http.StatusBadRequest, gin.H{"error": "guest is not active"})
		return
	}
	entry, err := logReminder(&guest, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reminder failed"})
		return
	}
	c.JSON(http.StatusOK, entry)
}

// listNotificationsHandler lists reminder log entries, newest first.
func listNotificationsHandler(c *gin.Context) {
	q := db.Model(&models.NotificationLog{})
	if gid := c.Query("guest_id"); gid != "" {
		q = q.Where("guest_id = ?", gid)
	}
	var logs []models.NotificationLog
	if err := q.Order("sent_at desc").Limit(200).Find(&logs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, logs)
}

func registerHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := RegisterUser(req.Username, req.Password); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user registered successfully"})
}

func loginHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := Authenticate(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	token, err := signAccessToken(&user, 24*time.Hour)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	refreshToken, err := createAndStoreRefreshToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create refresh token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "login successful", "token": token, "refresh_token": refreshToken})
}

// signAccessToken issues an HS256 JWT with the user's role name resolved
// from RoleID.
func signAccessToken(user *models.User, ttl time.Duration) (string, error) {
	roleName := ""
	if user.RoleID != nil {
		var r models.Role
		if err := db.First(&r, *user.RoleID).Error; err == nil {
			roleName = r.Name
		}
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": user.Username,
		"role":     roleName,
		"exp":      time.Now().Add(ttl).Unix(),
	})
	return token.SignedString(jwtSecret)
}

// createAndStoreRefreshToken generates a random refresh token, stores its hash with expiry and returns the raw token string
func createAndStoreRefreshToken(userID uint) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	token := hex.EncodeToString(b)
	h := sha256.Sum256([]byte(token))
	th := hex.EncodeToString(h[:])
	rt := models.RefreshToken{UserID: userID, TokenHash: th, ExpiresAt: time.Now().Add(30 * 24 * time.Hour)}
	if err := db.Create(&rt).Error; err != nil {
		return "", err
	}
	return token, nil
}

// findRefreshTokenByRaw looks a refresh token record up by its raw string.
func findRefreshTokenByRaw(token string) (*models.RefreshToken, error) {
	h := sha256.Sum256([]byte(token))
	th := hex.EncodeToString(h[:])
	var rt models.RefreshToken
	if err := db.Where("token_hash = ?", th).First(&rt).Error; err != nil {
		return nil, err
	}
	return &rt, nil
}

// refreshHandler exchanges a refresh token for a new access token and rotates the refresh token
func refreshHandler(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rt, err := findRefreshTokenByRaw(req.RefreshToken)
	if err != nil || rt.Revoked || time.Now().After(rt.ExpiresAt) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired refresh token"})
		return
	}
	var user models.User
	if err := db.First(&user, rt.UserID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	token, err := signAccessToken(&user, 15*time.Minute)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	// rotate refresh token: revoke existing and create new one
	db.Model(&models.RefreshToken{}).Where("id = ?", rt.ID).Update("revoked", true)
	newRT, err := createAndStoreRefreshToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to rotate refresh token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "refresh_token": newRT})
}

// revokeRefreshHandler revokes a given refresh token (useful on logout)
func revokeRefreshHandler(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rt, err := findRefreshTokenByRaw(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "refresh token not found"})
		return
	}
	rt.Revoked = true
	if err := db.Save(rt).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to revoke token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "refresh token revoked"})
}
