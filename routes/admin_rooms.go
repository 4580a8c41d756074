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

func AdminListRooms(ctx iris.Context) {
	status := ctx.URLParam("status")

	query := storage.DB.Preload("Owner").Preload("VerifiedBy").Order("created_at DESC")
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

// AdminUpdateRoomStatus is the unrestricted override: no allow-list, no
// side-effect stamping. Deliberately looser than the agent path.
func AdminUpdateRoomStatus(ctx iris.Context) {
	id, paramErr := ctx.Params().GetUint("id")
	if paramErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid room ID", ctx)
		return
	}

	var input UpdateRoomStatusInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	// The audit row must carry the pre-update snapshot; a missing room is
	// left to the service, which reports the 404.
	var before models.Room
	if err := storage.DB.First(&before, id).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.CreateInternalServerError(ctx)
		return
	}

	room, err := services.AdminSetRoomStatus(id, input.Status)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	utils.Audit(ctx, "room.status", "room", room.ID, before, room)
	ctx.JSON(iris.Map{"success": true, "message": "Room status updated successfully", "room": room})
}
