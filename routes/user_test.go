package routes

import (
	"net/http"
	"strings"
	"testing"

	"github.com/atharva1010/awaswala/models"
	"github.com/atharva1010/awaswala/storage"
)

func TestRegisterConflictMessages(t *testing.T) {
	app := buildTestApp(t)

	existing := models.User{Name: "Existing", Email: "taken@example.com", Mobile: "9876543210"}
	if err := storage.DB.Create(&existing).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	// Same email -> the email-specific conflict message.
	body, contentType := multipartForm(t, map[string]string{
		"name": "New User", "mobile": "9000000001",
		"email": "taken@example.com", "password": "secret123",
	})
	resp := doBodyRequest(app, http.MethodPost, "/api/user/register", "", contentType, body)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), "Email already registered") {
		t.Fatalf("expected email conflict message, got %s", resp.Body.String())
	}

	// Same mobile, different email -> the generic conflict message.
	body, contentType = multipartForm(t, map[string]string{
		"name": "New User", "mobile": "9876543210",
		"email": "new@example.com", "password": "secret123",
	})
	resp = doBodyRequest(app, http.MethodPost, "/api/user/register", "", contentType, body)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate mobile, got %d: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), "User already exists") {
		t.Fatalf("expected generic conflict message, got %s", resp.Body.String())
	}

	var count int64
	storage.DB.Model(&models.User{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected no new user rows, got %d", count)
	}
}
