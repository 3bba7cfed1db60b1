package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequirePINDisabled(t *testing.T) {
	handler := RequirePIN("")(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/generate-schedules", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 when no PIN configured", rec.Code)
	}
}

func TestRequirePIN(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("4821"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash pin: %v", err)
	}
	handler := RequirePIN(string(hash))(okHandler())

	// Missing header
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/schedules", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("missing pin: status = %d, want 401", rec.Code)
	}

	// Wrong PIN
	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/schedules", nil)
	req.Header.Set(pinHeader, "0000")
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong pin: status = %d, want 401", rec.Code)
	}

	// Correct PIN
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/api/schedules", nil)
	req.Header.Set(pinHeader, "4821")
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("correct pin: status = %d, want 200", rec.Code)
	}
}
