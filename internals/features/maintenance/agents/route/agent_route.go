// file: internals/features/maintenance/agents/route/agent_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kostku_backend/internals/features/maintenance/agents/controller"
)

// AgentAdminRoutes: manajemen petugas servis oleh admin (group /api/a)
func AgentAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAgentController(db)

	agents := admin.Group("/agents")
	agents.Get("/", ctrl.GetAll)
	agents.Put("/:id/approve", ctrl.Approve)
}

// AgentSelfRoutes: endpoint untuk petugas yang login (group /api/g)
func AgentSelfRoutes(agent fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAgentController(db)

	agent.Put("/agents/availability", ctrl.UpdateAvailability)
}
