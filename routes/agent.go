package routes

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/atharva1010/awaswala/models"
	"github.com/atharva1010/awaswala/services"
	"github.com/atharva1010/awaswala/storage"
	"github.com/atharva1010/awaswala/utils"
	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

// AgentSignup submits a new agent application (multipart, optional
// profilePic). The account stays pending until an admin approves it.
func AgentSignup(ctx iris.Context) {
	profilePic, err := readFormFile(ctx, "profilePic")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Could not read profile picture.", ctx)
		return
	}

	agent, err := services.ApplyAgent(services.ApplyAgentInput{
		Name:         ctx.FormValue("name"),
		Email:        ctx.FormValue("email"),
		Password:     ctx.FormValue("password"),
		Phone:        ctx.FormValue("phone"),
		AadharNumber: ctx.FormValue("aadharNumber"),
		Zone:         ctx.FormValue("zone"),
		ProfilePic:   profilePic,
	})
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	// No token here: login only opens up after admin approval.
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{
		"success": true,
		"message": "Application submitted successfully! Your account will be activated after admin approval.",
		"agent": iris.Map{
			"id":         agent.ID,
			"name":       agent.Name,
			"email":      agent.Email,
			"phone":      agent.Phone,
			"zone":       agent.Zone,
			"profilePic": agent.ProfilePic,
			"status":     agent.Status,
			"appliedAt":  agent.AppliedAt,
		},
	})
}

type AgentLoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func AgentLogin(ctx iris.Context) {
	var input AgentLoginInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	agent, err := services.LoginAgent(input.Email, input.Password)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	token, tokenErr := utils.CreateAccessToken(agent.ID, utils.RoleAgent, 7*24*time.Hour)
	if tokenErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"success": true,
		"message": "Login successful",
		"token":   token,
		"agent": iris.Map{
			"id":             agent.ID,
			"name":           agent.Name,
			"email":          agent.Email,
			"phone":          agent.Phone,
			"zone":           agent.Zone,
			"profilePic":     agent.ProfilePic,
			"commissionRate": agent.CommissionRate,
			"totalEarnings":  agent.TotalEarnings,
			"isVerified":     agent.IsVerified,
			"status":         agent.Status,
			"approvedAt":     agent.ApprovedAt,
		},
	})
}

// AgentApplicationStatus is the public self-service status check.
func AgentApplicationStatus(ctx iris.Context) {
	email := ctx.Params().Get("email")

	application, err := services.CheckAgentStatus(email)
	if err != nil {
		var notFound *services.NotFoundError
		if errors.As(err, &notFound) {
			utils.CreateError(iris.StatusNotFound, "Not Found", "No application found with this email", ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"success": true, "application": application})
}

// AgentCheckEmail tells the signup form whether an email is taken.
func AgentCheckEmail(ctx iris.Context) {
	email := strings.ToLower(ctx.Params().Get("email"))

	var agent models.Agent
	err := storage.DB.Select("email, status").Where("email = ?", email).First(&agent).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(iris.Map{"exists": false, "message": "Email is available"})
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	message := "Agent with this email already exists (pending approval)"
	if agent.Status == models.AgentStatusApproved {
		message = "Agent with this email already exists and is approved"
	}
	ctx.JSON(iris.Map{"exists": true, "email": agent.Email, "status": agent.Status, "message": message})
}

// AgentMe returns the authenticated agent's profile.
func AgentMe(ctx iris.Context) {
	agent := utils.AgentFromContext(ctx)
	if agent == nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"success": true,
		"agent": iris.Map{
			"id":             agent.ID,
			"name":           agent.Name,
			"email":          agent.Email,
			"phone":          agent.Phone,
			"zone":           agent.Zone,
			"profilePic":     agent.ProfilePic,
			"commissionRate": agent.CommissionRate,
			"totalEarnings":  agent.TotalEarnings,
			"pendingPayout":  agent.PendingPayout,
			"isVerified":     agent.IsVerified,
		},
	})
}

// AgentListRooms lists rooms for the agent dashboard, optionally filtered
// by ?status=.
func AgentListRooms(ctx iris.Context) {
	status := ctx.URLParam("status")

	query := storage.DB.Preload("Owner").Order("created_at DESC")
	if status != "" && status != "all" {
		query = query.Where("status = ?", status)
	}

	var rooms []models.Room
	if err := query.Find(&rooms).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"success": true, "rooms": rooms, "count": len(rooms)})
}

// AgentVerifyRoom accepts the verification document submission (multipart:
// aadhar, electricityBill, ownerPhoto, roomPhotos[]).
func AgentVerifyRoom(ctx iris.Context) {
	agent := utils.AgentFromContext(ctx)
	if agent == nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	roomID64, err := strconv.ParseUint(ctx.FormValue("roomId"), 10, 32)
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Room ID is required", ctx)
		return
	}
	roomID := uint(roomID64)

	aadhar, aadharErr := readFormFile(ctx, "aadhar")
	electricityBill, billErr := readFormFile(ctx, "electricityBill")
	ownerPhoto, ownerErr := readFormFile(ctx, "ownerPhoto")
	if aadharErr != nil || billErr != nil || ownerErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Could not read uploaded documents.", ctx)
		return
	}
	roomPhotos, photosErr := readFormFiles(ctx, "roomPhotos")
	if photosErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Could not read room photos.", ctx)
		return
	}

	verification, err := services.SubmitVerification(roomID, agent, services.VerificationDocs{
		Aadhar:          aadhar,
		ElectricityBill: electricityBill,
		OwnerPhoto:      ownerPhoto,
		RoomPhotos:      roomPhotos,
	})
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	ctx.JSON(iris.Map{
		"success":        true,
		"message":        "Room verification submitted successfully",
		"verificationId": verification.ID,
		"roomStatus":     models.RoomStatusProcessed,
	})
}

type UpdateRoomStatusInput struct {
	Status string `json:"status" validate:"required"`
}

// AgentUpdateRoomStatus moves a room within the agent allow-list of
// statuses.
func AgentUpdateRoomStatus(ctx iris.Context) {
	agent := utils.AgentFromContext(ctx)
	if agent == nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	roomID, paramErr := ctx.Params().GetUint("roomId")
	if paramErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid room ID", ctx)
		return
	}

	var input UpdateRoomStatusInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	room, err := services.SetRoomStatus(roomID, agent, input.Status)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	ctx.JSON(iris.Map{
		"success": true,
		"message": "Room status updated to " + room.Status,
		"room": iris.Map{
			"id":               room.ID,
			"title":            room.Title,
			"status":           room.Status,
			"verifiedBy":       room.VerifiedByID,
			"verificationDate": room.VerificationDate,
			"cancelledAt":      room.CancelledAt,
		},
	})
}

// AgentListVerifications lists the agent's own submissions.
func AgentListVerifications(ctx iris.Context) {
	agent := utils.AgentFromContext(ctx)
	if agent == nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var verifications []models.Verification
	if err := storage.DB.Where("agent_id = ?", agent.ID).Order("submitted_at DESC").Find(&verifications).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"success": true, "verifications": verifications, "count": len(verifications)})
}

// AgentStats returns the room counters for the agent dashboard.
func AgentStats(ctx iris.Context) {
	var pending, verified, cancelled int64
	storage.DB.Model(&models.Room{}).Where("status = ?", models.RoomStatusPending).Count(&pending)
	storage.DB.Model(&models.Room{}).Where("status = ?", models.RoomStatusVerified).Count(&verified)
	storage.DB.Model(&models.Room{}).Where("status = ?", models.RoomStatusCancelled).Count(&cancelled)

	ctx.JSON(iris.Map{
		"success": true,
		"stats": iris.Map{
			"pending":   pending,
			"verified":  verified,
			"cancelled": cancelled,
		},
	})
}
