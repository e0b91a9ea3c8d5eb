// file: internals/features/maintenance/tickets/route/ticket_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kostku_backend/internals/features/maintenance/tickets/controller"
)

// TicketAdminRoutes: semua tiket + penugasan petugas (group /api/a)
func TicketAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := controller.NewTicketController(db)

	tickets := admin.Group("/tickets")
	tickets.Get("/", ctrl.GetAll)
	tickets.Put("/:id/assign", ctrl.Assign)
}

// TicketTenantRoutes: tiket milik tenant yang login (group /api/u)
func TicketTenantRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := controller.NewTicketController(db)

	tickets := user.Group("/tickets")
	tickets.Post("/", ctrl.Create)
	tickets.Get("/", ctrl.GetMine)
}

// TicketAgentRoutes: tiket tugas petugas yang login (group /api/g)
func TicketAgentRoutes(agent fiber.Router, db *gorm.DB) {
	ctrl := controller.NewTicketController(db)

	tickets := agent.Group("/tickets")
	tickets.Get("/", ctrl.GetAssigned)
	tickets.Put("/:id/start", ctrl.Start)
	tickets.Put("/:id/resolve", ctrl.Resolve)
}
