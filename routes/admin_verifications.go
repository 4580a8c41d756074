package routes

import (
	"errors"
	"strings"

	"github.com/atharva1010/awaswala/models"
	"github.com/atharva1010/awaswala/services"
	"github.com/atharva1010/awaswala/storage"
	"github.com/atharva1010/awaswala/utils"
	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

func AdminListVerifications(ctx iris.Context) {
	status := ctx.URLParam("status")

	query := storage.DB.Order("submitted_at DESC")
	if status != "" && status != "all" {
		query = query.Where("status = ?", status)
	}

	var verifications []models.Verification
	if err := query.Find(&verifications).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"success": true, "verifications": verifications, "count": len(verifications)})
}

func AdminGetVerification(ctx iris.Context) {
	id, paramErr := ctx.Params().GetUint("id")
	if paramErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid verification ID", ctx)
		return
	}

	var verification models.Verification
	if err := storage.DB.First(&verification, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.CreateError(iris.StatusNotFound, "Not Found", "Verification record not found", ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"success": true, "verification": verification})
}

type ResolveVerificationInput struct {
	Status      string `json:"status" validate:"required"`
	ReviewNotes string `json:"reviewNotes"`
}

// AdminUpdateVerificationStatus resolves a verification and cascades the
// decision to the room.
func AdminUpdateVerificationStatus(ctx iris.Context) {
	id, paramErr := ctx.Params().GetUint("id")
	if paramErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid verification ID", ctx)
		return
	}

	var input ResolveVerificationInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	verification, room, err := services.ResolveVerification(id, input.Status, input.ReviewNotes)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	utils.Audit(ctx, "verification.resolve", "verification", verification.ID, nil, verification)

	resp := iris.Map{
		"success":      true,
		"message":      "Verification " + strings.ToLower(verification.Status) + " successfully",
		"verification": verification,
	}
	if room != nil {
		resp["roomStatus"] = room.Status
	}
	ctx.JSON(resp)
}
