// file: internals/features/users/auth/route/auth_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "kostku_backend/internals/features/users/auth/controller"
	rateLimiter "kostku_backend/internals/middlewares"
	authMW "kostku_backend/internals/middlewares/auth"
)

func AuthRoutes(app *fiber.App, db *gorm.DB) {
	authController := controller.NewAuthController(db)

	// ==========================
	// PUBLIC — Base: /api/auth
	// ==========================
	baseAuth := app.Group("/api/auth")

	baseAuth.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)
	baseAuth.Post("/login-google", rateLimiter.LoginRateLimiter(), authController.LoginGoogle)
	baseAuth.Post("/register", rateLimiter.RegisterRateLimiter(), authController.Register)
	baseAuth.Post("/refresh-token", authController.RefreshToken)

	// ==========================
	// PROTECTED — Base: /api/auth
	// ==========================
	protectedAuth := app.Group("/api/auth", authMW.AuthMiddleware(db))

	protectedAuth.Post("/logout", authController.Logout)
	protectedAuth.Post("/change-password", authController.ChangePassword)
	protectedAuth.Get("/me", authController.Me)
}
