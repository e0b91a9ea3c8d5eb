package middlewares

import (
	"github.com/gofiber/fiber/v2"

	loggerMW "kostku_backend/internals/middlewares/logger"
)

// SetupMiddlewares memasang middleware dasar urut: recovery → cors → logger
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(loggerMW.LoggerMiddleware())
}
