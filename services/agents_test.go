package services

import (
	"testing"
	"time"

	"github.com/atharva1010/awaswala/models"
	"github.com/atharva1010/awaswala/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// The invariant checked throughout: isVerified is true exactly when the
// status is approved.
func assertStatusInvariant(t *testing.T, agentID uint) {
	t.Helper()
	var agent models.Agent
	require.NoError(t, storage.DB.First(&agent, agentID).Error)
	assert.Equal(t, agent.Status == models.AgentStatusApproved, agent.IsVerified,
		"isVerified must equal (status == approved), got status=%q isVerified=%v", agent.Status, agent.IsVerified)
}

func TestApplyAgentCreatesPendingApplication(t *testing.T) {
	setupTestDB(t)

	agent := applyTestAgent(t, "ravi@example.com", "9876543210", "123456789012")

	assert.Equal(t, models.AgentStatusPending, agent.Status)
	assert.False(t, agent.IsVerified)
	assert.True(t, agent.IsActive)
	assert.False(t, agent.AppliedAt.IsZero())
	assert.NotEqual(t, "secret123", agent.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(agent.Password), []byte("secret123")))
	assertStatusInvariant(t, agent.ID)
}

func TestApplyAgentValidation(t *testing.T) {
	setupTestDB(t)

	cases := []struct {
		name  string
		input ApplyAgentInput
	}{
		{"missing fields", ApplyAgentInput{Email: "a@b.com"}},
		{"bad email", ApplyAgentInput{Name: "A", Email: "not-an-email", Password: "x", Phone: "9876543210", AadharNumber: "123456789012", Zone: "Z"}},
		{"short phone", ApplyAgentInput{Name: "A", Email: "a@b.com", Password: "x", Phone: "12345", AadharNumber: "123456789012", Zone: "Z"}},
		{"alpha phone", ApplyAgentInput{Name: "A", Email: "a@b.com", Password: "x", Phone: "987654321x", AadharNumber: "123456789012", Zone: "Z"}},
		{"short aadhar", ApplyAgentInput{Name: "A", Email: "a@b.com", Password: "x", Phone: "9876543210", AadharNumber: "1234", Zone: "Z"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ApplyAgent(tc.input)
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
		})
	}

	var count int64
	storage.DB.Model(&models.Agent{}).Count(&count)
	assert.Zero(t, count, "no agent record may exist after failed applications")
}

func TestApplyAgentConflictNamesField(t *testing.T) {
	setupTestDB(t)
	applyTestAgent(t, "taken@example.com", "9876543210", "123456789012")

	cases := []struct {
		name      string
		email     string
		phone     string
		aadhar    string
		wantField string
	}{
		{"email conflict", "taken@example.com", "9000000001", "222222222222", "email"},
		{"aadhar conflict", "new1@example.com", "9000000002", "123456789012", "aadharNumber"},
		{"phone conflict", "new2@example.com", "9876543210", "333333333333", "phone"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ApplyAgent(ApplyAgentInput{
				Name:         "Other",
				Email:        tc.email,
				Password:     "secret123",
				Phone:        tc.phone,
				AadharNumber: tc.aadhar,
				Zone:         "South",
			})
			var conflictErr *ConflictError
			require.ErrorAs(t, err, &conflictErr)
			assert.Equal(t, tc.wantField, conflictErr.Field)
		})
	}
}

func TestApplyAgentUploadFailureLeavesNoRecord(t *testing.T) {
	blob := setupTestDB(t)
	blob.fail = true

	_, err := ApplyAgent(ApplyAgentInput{
		Name:         "Ravi",
		Email:        "ravi@example.com",
		Password:     "secret123",
		Phone:        "9876543210",
		AadharNumber: "123456789012",
		Zone:         "North",
		ProfilePic:   []byte("img"),
	})
	var upstreamErr *UpstreamError
	require.ErrorAs(t, err, &upstreamErr)

	var count int64
	storage.DB.Model(&models.Agent{}).Count(&count)
	assert.Zero(t, count)
}

func TestLoginAgentMergedCredentialErrors(t *testing.T) {
	setupTestDB(t)
	applyTestAgent(t, "ravi@example.com", "9876543210", "123456789012")

	_, unknownErr := LoginAgent("nobody@example.com", "secret123")
	_, wrongPassErr := LoginAgent("ravi@example.com", "wrong")

	var authErr1, authErr2 *AuthError
	require.ErrorAs(t, unknownErr, &authErr1)
	require.ErrorAs(t, wrongPassErr, &authErr2)
	assert.Equal(t, authErr1.Message, authErr2.Message,
		"unknown email and bad password must be indistinguishable")
	assert.Empty(t, authErr1.Status)
}

func TestLoginAgentRefusedUnlessApproved(t *testing.T) {
	setupTestDB(t)
	agent := applyTestAgent(t, "ravi@example.com", "9876543210", "123456789012")

	// Pending: correct password is not enough.
	_, err := LoginAgent("ravi@example.com", "secret123")
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, models.AgentStatusPending, authErr.Status)

	// Rejected: reason is carried back.
	_, err = RejectAgent(agent.ID, "blurry documents")
	require.NoError(t, err)
	_, err = LoginAgent("ravi@example.com", "secret123")
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, models.AgentStatusRejected, authErr.Status)
	assert.Equal(t, "blurry documents", authErr.RejectionReason)
	assertStatusInvariant(t, agent.ID)
}

func TestLoginAgentApproved(t *testing.T) {
	setupTestDB(t)
	agent := approvedTestAgent(t, "ravi@example.com", "9876543210", "123456789012")

	got, err := LoginAgent("ravi@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, agent.ID, got.ID)
	assert.True(t, got.IsVerified)
}

func TestApproveAgentIdempotent(t *testing.T) {
	setupTestDB(t)
	agent := applyTestAgent(t, "ravi@example.com", "9876543210", "123456789012")

	setClock(t, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	first, err := ApproveAgent(agent.ID)
	require.NoError(t, err)
	require.NotNil(t, first.ApprovedAt)
	assertStatusInvariant(t, agent.ID)

	setClock(t, time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC))
	second, err := ApproveAgent(agent.ID)
	require.NoError(t, err)
	require.NotNil(t, second.ApprovedAt)
	assert.True(t, first.ApprovedAt.Equal(*second.ApprovedAt),
		"re-approval must not move approvedAt: %v vs %v", first.ApprovedAt, second.ApprovedAt)
}

func TestApproveAgentInvalidFromTerminalStates(t *testing.T) {
	setupTestDB(t)
	agent := applyTestAgent(t, "ravi@example.com", "9876543210", "123456789012")

	_, err := RejectAgent(agent.ID, "incomplete")
	require.NoError(t, err)

	_, err = ApproveAgent(agent.ID)
	var transitionErr *InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assertStatusInvariant(t, agent.ID)
}

func TestRejectAgentIdempotent(t *testing.T) {
	setupTestDB(t)
	agent := applyTestAgent(t, "ravi@example.com", "9876543210", "123456789012")

	first, err := RejectAgent(agent.ID, "first reason")
	require.NoError(t, err)
	assert.Equal(t, "first reason", first.RejectionReason)

	second, err := RejectAgent(agent.ID, "second reason")
	require.NoError(t, err)
	assert.Equal(t, "first reason", second.RejectionReason)
	assertStatusInvariant(t, agent.ID)
}

func TestSuspendAgentOnlyFromApproved(t *testing.T) {
	setupTestDB(t)
	pending := applyTestAgent(t, "pending@example.com", "9000000001", "111111111111")

	_, err := SuspendAgent(pending.ID)
	var transitionErr *InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)

	approved := approvedTestAgent(t, "approved@example.com", "9000000002", "222222222222")
	suspended, err := SuspendAgent(approved.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AgentStatusSuspended, suspended.Status)
	assert.False(t, suspended.IsActive)
	assertStatusInvariant(t, approved.ID)

	// Suspended is terminal for this operation too.
	_, err = SuspendAgent(approved.ID)
	require.ErrorAs(t, err, &transitionErr)
}

func TestCheckAgentStatus(t *testing.T) {
	setupTestDB(t)
	agent := applyTestAgent(t, "ravi@example.com", "9876543210", "123456789012")
	_, err := RejectAgent(agent.ID, "zone full")
	require.NoError(t, err)

	app, err := CheckAgentStatus("Ravi@Example.com")
	require.NoError(t, err)
	assert.Equal(t, models.AgentStatusRejected, app.Status)
	assert.Equal(t, "zone full", app.RejectionReason)
	assert.Contains(t, app.Message, "rejected")

	_, err = CheckAgentStatus("nobody@example.com")
	var notFoundErr *NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
}
