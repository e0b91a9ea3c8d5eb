// file: internals/features/home/dashboard/route/dashboard_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kostku_backend/internals/features/home/dashboard/controller"
)

// DashboardAdminRoutes: statistik operasional (group /api/a)
func DashboardAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := controller.NewDashboardController(db)

	admin.Get("/stats", ctrl.GetStats)
}
