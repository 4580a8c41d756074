package main

import (
	"fmt"
	"log"
	"os"

	"github.com/atharva1010/awaswala/routes"
	"github.com/atharva1010/awaswala/storage"
	"github.com/atharva1010/awaswala/utils"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

func main() {
	// Only load .env in development
	if os.Getenv("RENDER") == "" {
		godotenv.Load()
	}

	// Initialize services
	storage.InitializeDB()
	storage.InitializeCloudinary()
	storage.InitializeRedis()

	app := iris.New()
	app.Validator = validator.New()

	// CORS configuration
	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	// JWT verifiers
	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("REFRESH_TOKEN_SECRET")))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})

	refreshTokenVerifier.Extractors = append(refreshTokenVerifier.Extractors, func(ctx iris.Context) string {
		var tokenInput utils.RefreshTokenInput
		err := ctx.ReadJSON(&tokenInput)
		if err != nil {
			return ""
		}
		return tokenInput.RefreshToken
	})

	// Health check endpoint
	app.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"status": "ok"})
	})

	// Routes
	user := app.Party("/api/user")
	{
		user.Post("/register", routes.Register)
		user.Post("/login", routes.Login)
		user.Get("/me", accessTokenVerifierMiddleware, routes.GetUser)
		user.Put("/profile", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.UpdateUserProfile)
	}

	forgetPassword := app.Party("/api/forget-password")
	{
		forgetPassword.Post("/request-otp", routes.ForgotPasswordRequestOTP)
		forgetPassword.Post("/verify-otp", routes.ForgotPasswordVerifyOTP)
		forgetPassword.Post("/reset", routes.ForgotPasswordReset)
	}

	rooms := app.Party("/api/rooms")
	{
		rooms.Post("/", routes.CreateRoom)
		rooms.Get("/", routes.ListRooms)
	}
	app.Get("/api/room/{id:uint}", routes.GetRoom)
	app.Get("/api/my-rooms/{userKey}", routes.GetMyRooms)

	agent := app.Party("/api/agent")
	{
		agent.Post("/auth/signup", routes.AgentSignup)
		agent.Post("/auth/login", routes.AgentLogin)
		agent.Get("/application-status/{email}", routes.AgentApplicationStatus)
		agent.Get("/check-email/{email}", routes.AgentCheckEmail)

		agent.Get("/auth/me", accessTokenVerifierMiddleware, utils.AgentOnlyMiddleware, routes.AgentMe)
		agent.Get("/rooms", accessTokenVerifierMiddleware, utils.AgentOnlyMiddleware, routes.AgentListRooms)
		agent.Post("/verify-room", accessTokenVerifierMiddleware, utils.AgentOnlyMiddleware, routes.AgentVerifyRoom)
		agent.Put("/rooms/{roomId:uint}/status", accessTokenVerifierMiddleware, utils.AgentOnlyMiddleware, routes.AgentUpdateRoomStatus)
		agent.Get("/verifications", accessTokenVerifierMiddleware, utils.AgentOnlyMiddleware, routes.AgentListVerifications)
		agent.Get("/stats", accessTokenVerifierMiddleware, utils.AgentOnlyMiddleware, routes.AgentStats)
	}

	app.Post("/api/admin/auth/login", routes.AdminLogin)

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware)
	{
		admin.Get("/users", routes.AdminListUsers)
		admin.Get("/stats", routes.AdminStats)
		admin.Get("/agents", routes.AdminListAgents)
		admin.Put("/agents/{id:uint}/approve", routes.AdminApproveAgent)
		admin.Put("/agents/{id:uint}/verify", routes.AdminVerifyAgent)
		admin.Put("/agents/{id:uint}/reject", routes.AdminRejectAgent)
		admin.Put("/agents/{id:uint}/suspend", routes.AdminSuspendAgent)
		admin.Delete("/agents/{id:uint}", routes.AdminDeleteAgent)
		admin.Get("/rooms", routes.AdminListRooms)
		admin.Put("/rooms/{id:uint}/status", routes.AdminUpdateRoomStatus)
		admin.Get("/verifications", routes.AdminListVerifications)
		admin.Get("/verifications/{id:uint}", routes.AdminGetVerification)
		admin.Put("/verifications/{id:uint}/status", routes.AdminUpdateVerificationStatus)
	}

	app.Post("/api/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	addr := "0.0.0.0:" + port

	fmt.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}
