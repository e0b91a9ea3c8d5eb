// file: internals/route/base_routes.go
package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// BaseRoutes: endpoint dasar untuk cek hidup & status DB
func BaseRoutes(app *fiber.App, db *gorm.DB) {
	app.Get("/api/status", func(c *fiber.Ctx) error {
		dbStatus := "ok"
		if sqlDB, err := db.DB(); err != nil {
			dbStatus = "error: " + err.Error()
		} else if err := sqlDB.Ping(); err != nil {
			dbStatus = "error: " + err.Error()
		}

		return c.JSON(fiber.Map{
			"service":  "kostku-backend",
			"database": dbStatus,
			"uptime":   time.Since(startTime).Round(time.Second).String(),
			"time":     time.Now().Format(time.RFC3339),
		})
	})
}
