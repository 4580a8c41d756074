package routes

import (
	"strconv"
	"strings"

	"github.com/atharva1010/awaswala/models"
	"github.com/atharva1010/awaswala/services"
	"github.com/atharva1010/awaswala/storage"
	"github.com/atharva1010/awaswala/utils"
	"github.com/kataras/iris/v12"
)

// CreateRoom handles the landlord listing upload (multipart, images[]).
func CreateRoom(ctx iris.Context) {
	rent, _ := strconv.ParseFloat(ctx.FormValue("rent"), 64)

	images, err := readFormFiles(ctx, "images")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Could not read uploaded images.", ctx)
		return
	}

	room, err := services.CreateRoom(services.CreateRoomInput{
		Title:       ctx.FormValue("title"),
		Rent:        rent,
		Address:     ctx.FormValue("address"),
		City:        ctx.FormValue("city"),
		State:       ctx.FormValue("state"),
		Pin:         ctx.FormValue("pin"),
		Description: ctx.FormValue("description"),
		OwnerEmail:  ctx.FormValue("ownerEmail"),
		Images:      images,
	})
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	ctx.JSON(iris.Map{
		"success": true,
		"message": "Room uploaded successfully",
		"roomId":  room.RoomID,
		"room":    room,
	})
}

// ListRooms returns all rooms, optionally filtered by ?status=.
func ListRooms(ctx iris.Context) {
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

func GetRoom(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid room ID", ctx)
		return
	}

	var room models.Room
	if dbErr := storage.DB.Preload("Owner").First(&room, id).Error; dbErr != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Room not found", ctx)
		return
	}
	ctx.JSON(iris.Map{"success": true, "room": room})
}

// GetMyRooms lists a landlord's rooms. The key may be a numeric user id or
// an email address.
func GetMyRooms(ctx iris.Context) {
	userKey := ctx.Params().Get("userKey")
	if userKey == "" {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "User ID/Email is required", ctx)
		return
	}

	var ownerID uint
	if id, convErr := strconv.ParseUint(userKey, 10, 32); convErr == nil {
		ownerID = uint(id)
	} else {
		var user models.User
		if dbErr := storage.DB.Where("email = ?", strings.ToLower(userKey)).First(&user).Error; dbErr != nil {
			utils.CreateError(iris.StatusNotFound, "Not Found", "User not found", ctx)
			return
		}
		ownerID = user.ID
	}

	var rooms []models.Room
	if err := storage.DB.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&rooms).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"success": true, "rooms": rooms})
}
