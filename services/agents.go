package services

import (
	"errors"
	"strings"
	"time"

	"github.com/atharva1010/awaswala/models"
	"github.com/atharva1010/awaswala/storage"
	"github.com/atharva1010/awaswala/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// timeNow is swapped out by tests that need deterministic clocks.
var timeNow = time.Now

type ApplyAgentInput struct {
	Name         string
	Email        string
	Password     string
	Phone        string
	AadharNumber string
	Zone         string
	ProfilePic   []byte
}

// ApplyAgent creates a new agent application in pending state. The profile
// picture, when present, is uploaded before the record is created so a blob
// store failure cannot leave an orphan agent behind.
func ApplyAgent(in ApplyAgentInput) (*models.Agent, error) {
	var missing []string
	if strings.TrimSpace(in.Name) == "" {
		missing = append(missing, "name")
	}
	if in.Email == "" {
		missing = append(missing, "email")
	}
	if in.Password == "" {
		missing = append(missing, "password")
	}
	if in.Phone == "" {
		missing = append(missing, "phone")
	}
	if in.AadharNumber == "" {
		missing = append(missing, "aadharNumber")
	}
	if in.Zone == "" {
		missing = append(missing, "zone")
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Message: "All fields are required", Missing: missing}
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if !utils.ValidateEmail(email) {
		return nil, &ValidationError{Message: "Please provide a valid email address"}
	}
	if !utils.ValidatePhoneNumber(in.Phone) {
		return nil, &ValidationError{Message: "Phone number must be exactly 10 digits"}
	}
	if !utils.ValidateAadharNumber(in.AadharNumber) {
		return nil, &ValidationError{Message: "Aadhar number must be exactly 12 digits"}
	}

	var existing models.Agent
	err := storage.DB.
		Where("email = ? OR aadhar_number = ? OR phone = ?", email, in.AadharNumber, in.Phone).
		First(&existing).Error
	if err == nil {
		switch {
		case existing.Email == email:
			return nil, &ConflictError{Field: "email"}
		case existing.AadharNumber == in.AadharNumber:
			return nil, &ConflictError{Field: "aadharNumber"}
		default:
			return nil, &ConflictError{Field: "phone"}
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	profilePicURL := ""
	if len(in.ProfilePic) > 0 {
		url, upErr := storage.Blob.Upload(in.ProfilePic, "awaswala/agents")
		if upErr != nil {
			return nil, &UpstreamError{Op: "upload profile picture", Err: upErr}
		}
		profilePicURL = url
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), 12)
	if err != nil {
		return nil, err
	}

	agent := models.Agent{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		Password:     string(hashed),
		Phone:        in.Phone,
		AadharNumber: in.AadharNumber,
		Zone:         in.Zone,
		ProfilePic:   profilePicURL,
		IsVerified:   false,
		IsActive:     true,
		Status:       models.AgentStatusPending,
		AppliedAt:    timeNow(),
	}
	if err := storage.DB.Create(&agent).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a race with a concurrent signup; identify the field.
			return nil, agentConflictField(email, in.AadharNumber, in.Phone)
		}
		return nil, err
	}
	return &agent, nil
}

func agentConflictField(email, aadhar, phone string) error {
	var existing models.Agent
	err := storage.DB.
		Where("email = ? OR aadhar_number = ? OR phone = ?", email, aadhar, phone).
		First(&existing).Error
	if err != nil {
		return &ConflictError{Field: "email"}
	}
	switch {
	case existing.Email == email:
		return &ConflictError{Field: "email"}
	case existing.AadharNumber == aadhar:
		return &ConflictError{Field: "aadharNumber"}
	default:
		return &ConflictError{Field: "phone"}
	}
}

// LoginAgent authenticates an agent by email and password. The credentials
// error is identical whether the email is unknown or the password is wrong.
// No session is established on any failure path; callers only mint a token
// when this returns a non-nil agent.
func LoginAgent(email, password string) (*models.Agent, error) {
	invalid := &AuthError{Message: "Invalid email or password"}

	var agent models.Agent
	err := storage.DB.Where("email = ?", strings.ToLower(email)).First(&agent).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalid
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(agent.Password), []byte(password)) != nil {
		return nil, invalid
	}

	if agent.Status != models.AgentStatusApproved {
		return nil, &AuthError{
			Message:         AgentStatusMessage(agent.Status, agent.RejectionReason),
			Status:          agent.Status,
			RejectionReason: agent.RejectionReason,
		}
	}
	if !agent.IsVerified {
		return nil, &AuthError{
			Message: "Your account is not verified yet. Please contact admin.",
			Status:  agent.Status,
		}
	}
	return &agent, nil
}

// ApproveAgent moves a pending application to approved. Re-approving an
// already approved agent is a no-op that preserves the original approvedAt.
func ApproveAgent(id uint) (*models.Agent, error) {
	var agent models.Agent
	if err := storage.DB.First(&agent, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "Agent"}
		}
		return nil, err
	}

	switch agent.Status {
	case models.AgentStatusApproved:
		return &agent, nil
	case models.AgentStatusPending:
		now := timeNow()
		agent.Status = models.AgentStatusApproved
		agent.IsVerified = true
		agent.ApprovedAt = &now
		if err := storage.DB.Save(&agent).Error; err != nil {
			return nil, err
		}
		return &agent, nil
	default:
		return nil, &InvalidTransitionError{From: agent.Status, To: models.AgentStatusApproved}
	}
}

// RejectAgent marks an application rejected and records the reason.
// Re-rejection is a no-op.
func RejectAgent(id uint, reason string) (*models.Agent, error) {
	var agent models.Agent
	if err := storage.DB.First(&agent, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "Agent"}
		}
		return nil, err
	}

	if agent.Status == models.AgentStatusRejected {
		return &agent, nil
	}

	agent.Status = models.AgentStatusRejected
	agent.IsVerified = false
	agent.RejectionReason = reason
	if err := storage.DB.Save(&agent).Error; err != nil {
		return nil, err
	}
	return &agent, nil
}

// SuspendAgent is only valid for approved agents.
func SuspendAgent(id uint) (*models.Agent, error) {
	var agent models.Agent
	if err := storage.DB.First(&agent, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "Agent"}
		}
		return nil, err
	}

	if agent.Status != models.AgentStatusApproved {
		return nil, &InvalidTransitionError{From: agent.Status, To: models.AgentStatusSuspended}
	}

	agent.Status = models.AgentStatusSuspended
	agent.IsVerified = false
	agent.IsActive = false
	if err := storage.DB.Save(&agent).Error; err != nil {
		return nil, err
	}
	return &agent, nil
}

// AgentApplication is the self-service status projection. It never carries
// the password hash.
type AgentApplication struct {
	ID              uint       `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Status          string     `json:"status"`
	IsVerified      bool       `json:"isVerified"`
	RejectionReason string     `json:"rejectionReason,omitempty"`
	AppliedAt       time.Time  `json:"appliedAt"`
	ApprovedAt      *time.Time `json:"approvedAt,omitempty"`
	Message         string     `json:"message"`
}

func CheckAgentStatus(email string) (*AgentApplication, error) {
	var agent models.Agent
	err := storage.DB.Where("email = ?", strings.ToLower(email)).First(&agent).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "Application"}
		}
		return nil, err
	}

	return &AgentApplication{
		ID:              agent.ID,
		Name:            agent.Name,
		Email:           agent.Email,
		Status:          agent.Status,
		IsVerified:      agent.IsVerified,
		RejectionReason: agent.RejectionReason,
		AppliedAt:       agent.AppliedAt,
		ApprovedAt:      agent.ApprovedAt,
		Message:         AgentStatusMessage(agent.Status, agent.RejectionReason),
	}, nil
}

func AgentStatusMessage(status, rejectionReason string) string {
	switch status {
	case models.AgentStatusPending:
		return "Your account is pending admin approval. Please wait for approval before logging in."
	case models.AgentStatusApproved:
		return "Your application has been approved! You can now login to your account."
	case models.AgentStatusRejected:
		msg := "Your application has been rejected."
		if rejectionReason != "" {
			msg += " Reason: " + rejectionReason
		}
		return msg
	case models.AgentStatusSuspended:
		return "Your account has been suspended. Please contact admin for more information."
	default:
		return "Your account is not approved for login."
	}
}
