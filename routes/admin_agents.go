package routes

import (
	"errors"

	"github.com/atharva1010/awaswala/models"
	"github.com/atharva1010/awaswala/services"
	"github.com/atharva1010/awaswala/storage"
	"github.com/atharva1010/awaswala/utils"
	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

func AdminListAgents(ctx iris.Context) {
	status := ctx.URLParam("status")

	query := storage.DB.Order("created_at DESC")
	if status != "" && status != "all" {
		query = query.Where("status = ?", status)
	}

	var agents []models.Agent
	if err := query.Find(&agents).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"success": true, "agents": agents, "count": len(agents)})
}

func AdminApproveAgent(ctx iris.Context) {
	id, paramErr := ctx.Params().GetUint("id")
	if paramErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid agent ID", ctx)
		return
	}

	agent, err := services.ApproveAgent(id)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	utils.Audit(ctx, "agent.approve", "agent", agent.ID, nil, agent)
	ctx.JSON(iris.Map{
		"success": true,
		"message": "Agent approved successfully",
		"agent": iris.Map{
			"id":         agent.ID,
			"name":       agent.Name,
			"email":      agent.Email,
			"status":     agent.Status,
			"approvedAt": agent.ApprovedAt,
		},
	})
}

// AdminVerifyAgent is the legacy verify action. It shares approval
// semantics so a verified agent is always an approved one; there is no
// path that flips isVerified without moving the status.
func AdminVerifyAgent(ctx iris.Context) {
	id, paramErr := ctx.Params().GetUint("id")
	if paramErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid agent ID", ctx)
		return
	}

	agent, err := services.ApproveAgent(id)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	utils.Audit(ctx, "agent.verify", "agent", agent.ID, nil, agent)
	ctx.JSON(iris.Map{
		"success": true,
		"message": "Agent verified successfully",
		"agent": iris.Map{
			"id":         agent.ID,
			"name":       agent.Name,
			"email":      agent.Email,
			"status":     agent.Status,
			"isVerified": agent.IsVerified,
			"approvedAt": agent.ApprovedAt,
		},
	})
}

type RejectAgentInput struct {
	Reason string `json:"reason"`
}

func AdminRejectAgent(ctx iris.Context) {
	id, paramErr := ctx.Params().GetUint("id")
	if paramErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid agent ID", ctx)
		return
	}

	// The body is optional: rejecting without a stated reason is allowed.
	// A malformed body is refused rather than read as an empty reason.
	var input RejectAgentInput
	if err := ctx.ReadJSON(&input); err != nil && ctx.GetContentLength() > 0 {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	agent, err := services.RejectAgent(id, input.Reason)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	utils.Audit(ctx, "agent.reject", "agent", agent.ID, nil, agent)
	ctx.JSON(iris.Map{
		"success": true,
		"message": "Agent application rejected",
		"agent": iris.Map{
			"id":     agent.ID,
			"name":   agent.Name,
			"email":  agent.Email,
			"status": agent.Status,
		},
	})
}

func AdminSuspendAgent(ctx iris.Context) {
	id, paramErr := ctx.Params().GetUint("id")
	if paramErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid agent ID", ctx)
		return
	}

	agent, err := services.SuspendAgent(id)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	utils.Audit(ctx, "agent.suspend", "agent", agent.ID, nil, agent)
	ctx.JSON(iris.Map{"success": true, "message": "Agent suspended successfully"})
}

func AdminDeleteAgent(ctx iris.Context) {
	id, paramErr := ctx.Params().GetUint("id")
	if paramErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid agent ID", ctx)
		return
	}

	var agent models.Agent
	if err := storage.DB.First(&agent, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.CreateError(iris.StatusNotFound, "Not Found", "Agent not found", ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	if err := storage.DB.Unscoped().Delete(&agent).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "agent.delete", "agent", agent.ID, agent, nil)
	ctx.JSON(iris.Map{"success": true, "message": "Agent deleted successfully"})
}
