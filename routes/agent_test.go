package routes

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"testing"

	"github.com/atharva1010/awaswala/models"
	"github.com/atharva1010/awaswala/storage"
	"github.com/atharva1010/awaswala/utils"
)

func multipartForm(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			t.Fatalf("write field %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func createApprovedAgent(t *testing.T, email, phone, aadhar string) *models.Agent {
	t.Helper()
	agent := createPendingAgent(t, email, phone, aadhar)
	err := storage.DB.Model(agent).
		Updates(map[string]interface{}{"status": models.AgentStatusApproved, "is_verified": true}).Error
	if err != nil {
		t.Fatalf("approve agent: %v", err)
	}
	return agent
}

func TestAgentVerifyRoomMissingDocuments(t *testing.T) {
	app := buildTestApp(t)
	agent := createApprovedAgent(t, "agent@example.com", "9876543210", "123456789012")
	token := signTestToken(t, agent.ID, utils.RoleAgent)

	owner := models.User{Name: "Owner", Email: "owner@example.com", Mobile: "9000000000"}
	if err := storage.DB.Create(&owner).Error; err != nil {
		t.Fatalf("create owner: %v", err)
	}
	room := models.Room{RoomID: "RA202600001", Title: "2BHK", Rent: 12000, OwnerID: owner.ID, Status: models.RoomStatusPending}
	if err := storage.DB.Create(&room).Error; err != nil {
		t.Fatalf("create room: %v", err)
	}

	body, contentType := multipartForm(t, map[string]string{"roomId": strconv.FormatUint(uint64(room.ID), 10)})
	resp := doBodyRequest(app, http.MethodPost, "/api/agent/verify-room", token, contentType, body)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing documents, got %d: %s", resp.Code, resp.Body.String())
	}
	for _, doc := range []string{"aadhar", "electricityBill", "ownerPhoto", "roomPhotos"} {
		if !strings.Contains(resp.Body.String(), doc) {
			t.Fatalf("expected response to name missing document %q, got %s", doc, resp.Body.String())
		}
	}

	var reloaded models.Room
	if err := storage.DB.First(&reloaded, room.ID).Error; err != nil {
		t.Fatalf("reload room: %v", err)
	}
	if reloaded.Status != models.RoomStatusPending {
		t.Fatalf("expected room still pending, got %q", reloaded.Status)
	}
}

func TestAgentVerifyRoomUnknownRoom(t *testing.T) {
	app := buildTestApp(t)
	agent := createApprovedAgent(t, "agent@example.com", "9876543210", "123456789012")
	token := signTestToken(t, agent.ID, utils.RoleAgent)

	body, contentType := multipartForm(t, map[string]string{"roomId": "9999"})
	resp := doBodyRequest(app, http.MethodPost, "/api/agent/verify-room", token, contentType, body)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown room, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestAgentVerifyRoomRequiresRoomID(t *testing.T) {
	app := buildTestApp(t)
	agent := createApprovedAgent(t, "agent@example.com", "9876543210", "123456789012")
	token := signTestToken(t, agent.ID, utils.RoleAgent)

	body, contentType := multipartForm(t, map[string]string{})
	resp := doBodyRequest(app, http.MethodPost, "/api/agent/verify-room", token, contentType, body)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without roomId, got %d", resp.Code)
	}
}
