package routes

import (
	"os"
	"time"

	"github.com/atharva1010/awaswala/utils"
	"github.com/kataras/iris/v12"
)

type AdminLoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AdminLogin checks the operator credential pair from the environment.
// The defaults match the legacy deployment; set ADMIN_USERNAME and
// ADMIN_PASSWORD in any real environment.
func AdminLogin(ctx iris.Context) {
	var input AdminLoginInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "awaswalaadminroot"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "password@123"
	}

	if input.Username != username || input.Password != password {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", "Invalid admin credentials", ctx)
		return
	}

	// Admin sessions are shorter than user/agent sessions.
	token, err := utils.CreateAccessToken(0, utils.RoleAdmin, 8*time.Hour)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"success": true,
		"message": "Admin login successful",
		"token":   token,
		"admin": iris.Map{
			"username":  username,
			"role":      utils.RoleAdmin,
			"loginTime": time.Now().UTC().Format(time.RFC3339),
		},
	})
}
