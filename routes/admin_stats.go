package routes

import (
	"github.com/atharva1010/awaswala/models"
	"github.com/atharva1010/awaswala/storage"
	"github.com/atharva1010/awaswala/utils"
	"github.com/kataras/iris/v12"
)

func AdminListUsers(ctx iris.Context) {
	var users []models.User
	if err := storage.DB.Order("created_at DESC").Find(&users).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"success": true, "users": users, "count": len(users)})
}

// AdminStats powers the dashboard counters.
func AdminStats(ctx iris.Context) {
	var totalAgents, pendingAgents, totalLandlords, pendingVerifications, totalRooms, verifiedRooms int64

	storage.DB.Model(&models.Agent{}).Count(&totalAgents)
	storage.DB.Model(&models.Agent{}).Where("status = ?", models.AgentStatusPending).Count(&pendingAgents)
	storage.DB.Model(&models.User{}).Count(&totalLandlords)
	storage.DB.Model(&models.Verification{}).Where("status = ?", models.VerificationStatusSubmitted).Count(&pendingVerifications)
	storage.DB.Model(&models.Room{}).Count(&totalRooms)
	storage.DB.Model(&models.Room{}).Where("status = ?", models.RoomStatusVerified).Count(&verifiedRooms)

	ctx.JSON(iris.Map{
		"success": true,
		"stats": iris.Map{
			"totalAgents":          totalAgents,
			"pendingAgents":        pendingAgents,
			"totalLandlords":       totalLandlords,
			"pendingVerifications": pendingVerifications,
			"totalRooms":           totalRooms,
			"verifiedRooms":        verifiedRooms,
		},
	})
}
