// file: internals/features/housing/tenants/route/tenant_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kostku_backend/internals/features/housing/tenants/controller"
)

// TenantAdminRoutes: manajemen tenant oleh admin (group /api/a)
func TenantAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := controller.NewTenantController(db)

	tenants := admin.Group("/tenants")
	tenants.Get("/", ctrl.GetApproved)
	tenants.Get("/pending", ctrl.GetPending)
	tenants.Put("/:id/approve", ctrl.Approve)
	tenants.Put("/:id/vacate", ctrl.Vacate)
	tenants.Delete("/:id", ctrl.Vacate) // check-out juga bisa lewat DELETE
}

// TenantUserRoutes: endpoint untuk tenant yang login (group /api/u)
func TenantUserRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := controller.NewTenantController(db)

	user.Get("/my-room", ctrl.GetMyRoom)
}
