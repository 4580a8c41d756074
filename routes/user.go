package routes

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/atharva1010/awaswala/models"
	"github.com/atharva1010/awaswala/services"
	"github.com/atharva1010/awaswala/storage"
	"github.com/atharva1010/awaswala/utils"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Register creates a landlord/tenant account. Multipart so the optional
// profile picture can ride along; a failed upload aborts the signup.
func Register(ctx iris.Context) {
	name := ctx.FormValue("name")
	mobile := utils.NormalizeMobile(ctx.FormValue("mobile"))
	email := strings.ToLower(strings.TrimSpace(ctx.FormValue("email")))
	password := ctx.FormValue("password")

	if name == "" || mobile == "" || email == "" || password == "" {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "All required fields must be filled", ctx)
		return
	}

	var existing models.User
	err := storage.DB.Where("mobile = ? OR email = ?", mobile, email).First(&existing).Error
	if err == nil {
		if existing.Email == email {
			utils.CreateEmailAlreadyRegistered(ctx)
			return
		}
		utils.CreateError(iris.StatusConflict, "Conflict", "User already exists", ctx)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.CreateInternalServerError(ctx)
		return
	}

	profilePicURL := ""
	if pic, readErr := readFormFile(ctx, "profilePic"); readErr == nil && len(pic) > 0 {
		url, upErr := storage.Blob.Upload(pic, "awaswala/profile")
		if upErr != nil {
			utils.CreateError(iris.StatusInternalServerError, "Upstream Error", "Error uploading profile picture. Please try again.", ctx)
			return
		}
		profilePicURL = url
	}

	hashed, hashErr := bcrypt.GenerateFromPassword([]byte(password), 10)
	if hashErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	newUser := models.User{
		Name:       name,
		Mobile:     mobile,
		Email:      email,
		Password:   string(hashed),
		ProfilePic: profilePicURL,
		Address:    ctx.FormValue("address"),
		City:       ctx.FormValue("city"),
		State:      ctx.FormValue("state"),
		Pincode:    ctx.FormValue("pincode"),
	}
	if err := storage.DB.Create(&newUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.CreateError(iris.StatusConflict, "Conflict", "User already exists", ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	tokenPair, tokenErr := utils.CreateTokenPair(newUser.ID)
	if tokenErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"success":      true,
		"message":      "Signup successful!",
		"accessToken":  string(tokenPair.AccessToken),
		"refreshToken": string(tokenPair.RefreshToken),
		"user":         newUser,
	})
}

type LoginUserInput struct {
	MobileOrEmail string `json:"mobileOrEmail" validate:"required"`
	Password      string `json:"password" validate:"required"`
}

// Login accepts either an email address or a mobile number. The failure
// message is the same whichever part was wrong.
func Login(ctx iris.Context) {
	var userInput LoginUserInput
	if err := ctx.ReadJSON(&userInput); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	key := strings.TrimSpace(userInput.MobileOrEmail)
	errorMsg := "Invalid email or password."

	var existingUser models.User
	var err error
	if strings.Contains(key, "@") {
		err = storage.DB.Where("email = ?", strings.ToLower(key)).First(&existingUser).Error
	} else {
		err = storage.DB.Where("mobile = ?", utils.NormalizeMobile(key)).First(&existingUser).Error
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.CreateError(iris.StatusUnauthorized, "Credentials Error", errorMsg, ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(existingUser.Password), []byte(userInput.Password)) != nil {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", errorMsg, ctx)
		return
	}

	tokenPair, tokenErr := utils.CreateTokenPair(existingUser.ID)
	if tokenErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"success":      true,
		"message":      "Login successful",
		"accessToken":  string(tokenPair.AccessToken),
		"refreshToken": string(tokenPair.RefreshToken),
		"user":         existingUser,
	})
}

func GetUser(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var user models.User
	if err := storage.DB.First(&user, claims.ID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	ctx.JSON(iris.Map{"success": true, "user": user})
}

func UpdateUserProfile(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var user models.User
	if err := storage.DB.First(&user, claims.ID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if v := ctx.FormValue("name"); v != "" {
		user.Name = v
	}
	if v := ctx.FormValue("email"); v != "" {
		user.Email = strings.ToLower(v)
	}
	if v := ctx.FormValue("phone"); v != "" {
		user.Mobile = utils.NormalizeMobile(v)
	}
	if v := ctx.FormValue("address"); v != "" {
		user.Address = v
	}
	if v := ctx.FormValue("city"); v != "" {
		user.City = v
	}
	if v := ctx.FormValue("state"); v != "" {
		user.State = v
	}
	if v := ctx.FormValue("pincode"); v != "" {
		user.Pincode = v
	}

	if pic, readErr := readFormFile(ctx, "profilePic"); readErr == nil && len(pic) > 0 {
		url, upErr := storage.Blob.Upload(pic, "awaswala/profile")
		if upErr != nil {
			utils.CreateError(iris.StatusInternalServerError, "Upstream Error", "Error uploading profile picture. Please try again.", ctx)
			return
		}
		user.ProfilePic = url
	}

	if err := storage.DB.Save(&user).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"success": true, "message": "Profile updated successfully", "user": user})
}

type RequestOTPInput struct {
	Mobile string `json:"mobile" validate:"required"`
}

func ForgotPasswordRequestOTP(ctx iris.Context) {
	var input RequestOTPInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	mobile := utils.NormalizeMobile(input.Mobile)
	var user models.User
	if err := storage.DB.Where("mobile = ?", mobile).First(&user).Error; err != nil {
		utils.CreateError(iris.StatusBadRequest, "Not Found", "User not found", ctx)
		return
	}

	otp, err := generateOTP()
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if err := storage.SetOTP(mobile, otp); err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if err := sendOTP(mobile, otp); err != nil {
		storage.DeleteOTP(mobile)
		utils.CreateError(iris.StatusInternalServerError, "Upstream Error", "Could not send OTP. Please try again.", ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "message": "OTP sent to your mobile"})
}

type VerifyOTPInput struct {
	Mobile string `json:"mobile" validate:"required"`
	OTP    string `json:"otp" validate:"required"`
}

func ForgotPasswordVerifyOTP(ctx iris.Context) {
	var input VerifyOTPInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	mobile := utils.NormalizeMobile(input.Mobile)
	stored, err := storage.GetOTP(mobile)
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "OTP Error", "OTP expired or not found", ctx)
		return
	}
	if stored != input.OTP {
		utils.CreateError(iris.StatusBadRequest, "OTP Error", "Invalid OTP", ctx)
		return
	}

	storage.DeleteOTP(mobile)
	ctx.JSON(iris.Map{"success": true, "message": "OTP verified"})
}

type ResetPasswordInput struct {
	Mobile      string `json:"mobile" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

func ForgotPasswordReset(ctx iris.Context) {
	var input ResetPasswordInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	mobile := utils.NormalizeMobile(input.Mobile)
	var user models.User
	if err := storage.DB.Where("mobile = ?", mobile).First(&user).Error; err != nil {
		utils.CreateError(iris.StatusBadRequest, "Not Found", "User not found", ctx)
		return
	}

	hashed, hashErr := bcrypt.GenerateFromPassword([]byte(input.NewPassword), 10)
	if hashErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	user.Password = string(hashed)
	if err := storage.DB.Save(&user).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "message": "Password updated successfully"})
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func sendOTP(mobile, otp string) error {
	return services.SMS.SendSMS(mobile, "Your AwasWala OTP is "+otp)
}
