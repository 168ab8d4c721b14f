package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

// helper to perform requests with auth token
func performRequest(r http.Handler, method, path string, body io.Reader, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func setupTestServer(t *testing.T) *gin.Engine {
	// integration tests are opt-in. Set DB_DSN_TEST=1 and DB_DSN to run them.
	if os.Getenv("DB_DSN_TEST") != "1" {
		t.Skip("integration tests are disabled; set DB_DSN_TEST=1 to enable")
	}
	gin.SetMode(gin.TestMode)
	initLogger()
	jwtSecret = []byte("test-secret")
	initDB()
	r := gin.Default()
	setupRoutes(r)
	return r
}

func TestFullFlow(t *testing.T) {
	r := setupTestServer(t)

	// 1. Register operator
	regBody, _ := json.Marshal(map[string]string{"username": "op1", "password": "pass123"})
	resp := performRequest(r, http.MethodPost, "/register", bytes.NewBuffer(regBody), "")
	if resp.Code != 200 && resp.Code != 409 {
		t.Fatalf("register failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	// 2. Login
	loginBody, _ := json.Marshal(map[string]string{"username": "op1", "password": "pass123"})
	resp = performRequest(r, http.MethodPost, "/login", bytes.NewBuffer(loginBody), "")
	if resp.Code != 200 {
		t.Fatalf("login failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	var loginResp map[string]any
	_ = json.Unmarshal(resp.Body.Bytes(), &loginResp)
	token, _ := loginResp["token"].(string)
	if token == "" {
		t.Fatalf("empty token in login response: %+v", loginResp)
	}

	// 3. Register a monthly guest joining today; due date should land one
	// month out.
	mobile := fmt.Sprintf("9%09d", time.Now().UnixNano()%1000000000)
	guestBody, _ := json.Marshal(map[string]any{
		"first_name":     "Asha",
		"last_name":      "Verma",
		"age":            24,
		"gender":         "Female",
		"mobile_number":  mobile,
		"id_number":      "123412341234",
		"room_number":    "A-101",
		"payment_type":   "monthly",
		"payment_amount": "5500.00",
		"guardian":       map[string]string{"name": "Ram Verma", "relationship": "Father", "mobile_number": "9876543210"},
	})
	resp = performRequest(r, http.MethodPost, "/guests", bytes.NewBuffer(guestBody), token)
	if resp.Code != 200 {
		t.Fatalf("create guest failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	var created struct {
		ID             uint      `json:"id"`
		PaymentDueDate time.Time `json:"payment_due_date"`
	}
	_ = json.Unmarshal(resp.Body.Bytes(), &created)
	if created.ID == 0 {
		t.Fatalf("missing guest id in response: %s", resp.Body.String())
	}
	wantDue := time.Now().AddDate(0, 1, 0)
	if diff := created.PaymentDueDate.Sub(wantDue); diff > time.Minute || diff < -time.Minute {
		t.Fatalf("initial due date %v not about one month out", created.PaymentDueDate)
	}

	// 4. Record a payment; due date advances one month from now.
	payBody, _ := json.Marshal(map[string]any{"amount": "5500.00", "payment_method": "upi"})
	resp = performRequest(r, http.MethodPost, fmt.Sprintf("/guests/%d/payments", created.ID), bytes.NewBuffer(payBody), token)
	if resp.Code != 200 {
		t.Fatalf("record payment failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	var payResp struct {
		ReceiptNumber  string    `json:"receipt_number"`
		PaymentDueDate time.Time `json:"payment_due_date"`
	}
	_ = json.Unmarshal(resp.Body.Bytes(), &payResp)
	if payResp.ReceiptNumber == "" {
		t.Fatalf("expected generated receipt number, body=%s", resp.Body.String())
	}

	// 5. Cadence change monthly -> weekly reconciles the due date.
	editBody, _ := json.Marshal(map[string]any{"payment_type": "weekly"})
	resp = performRequest(r, http.MethodPut, fmt.Sprintf("/guests/%d", created.ID), bytes.NewBuffer(editBody), token)
	if resp.Code != 200 {
		t.Fatalf("update guest failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	var editResp struct {
		CadenceChanged bool `json:"cadence_changed"`
	}
	_ = json.Unmarshal(resp.Body.Bytes(), &editResp)
	if !editResp.CadenceChanged {
		t.Fatalf("expected cadence_changed=true, body=%s", resp.Body.String())
	}

	// 6. Dashboard and reports respond.
	for _, path := range []string{"/dashboard", "/reports/collections", "/payments/pending", "/payments", "/notifications"} {
		resp = performRequest(r, http.MethodGet, path, nil, token)
		if resp.Code != 200 {
			t.Fatalf("GET %s failed status=%d body=%s", path, resp.Code, resp.Body.String())
		}
	}

	// 7. Manual reminder writes a notification log entry.
	resp = performRequest(r, http.MethodPost, fmt.Sprintf("/guests/%d/remind", created.ID), nil, token)
	if resp.Code != 200 {
		t.Fatalf("remind failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	// 8. Exports respond.
	resp = performRequest(r, http.MethodGet, "/export/json", nil, token)
	if resp.Code != 200 {
		t.Fatalf("export json failed status=%d", resp.Code)
	}
	resp = performRequest(r, http.MethodGet, "/export/csv", nil, token)
	if resp.Code != 200 {
		t.Fatalf("export csv failed status=%d", resp.Code)
	}

	// 9. Deactivation removes the guest from the active set.
	resp = performRequest(r, http.MethodDelete, fmt.Sprintf("/guests/%d", created.ID), nil, token)
	if resp.Code != 200 {
		t.Fatalf("deactivate failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	// 10. Unauthorized access to protected endpoint should be 401
	unauth := performRequest(r, http.MethodGet, "/guests", nil, "")
	if unauth.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unauthorized list guests got %d", unauth.Code)
	}
}

func TestMigrateCommand(t *testing.T) {
	if os.Getenv("DB_DSN_TEST") != "1" {
		t.Skip("integration tests are disabled; set DB_DSN_TEST=1 to enable")
	}
	initLogger()
	initDB()
}
