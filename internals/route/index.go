// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kostku_backend/internals/constants"
	paymentRoute "kostku_backend/internals/features/finance/payments/route"
	dashboardRoute "kostku_backend/internals/features/home/dashboard/route"
	roomRoute "kostku_backend/internals/features/housing/rooms/route"
	tenantRoute "kostku_backend/internals/features/housing/tenants/route"
	agentRoute "kostku_backend/internals/features/maintenance/agents/route"
	ticketRoute "kostku_backend/internals/features/maintenance/tickets/route"
	authRoute "kostku_backend/internals/features/users/auth/route"
	"kostku_backend/internals/middlewares"
	authMiddleware "kostku_backend/internals/middlewares/auth"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	app.Use(middlewares.GlobalRateLimiter())

	// ===================== AUTH =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	authRoute.AuthRoutes(app, db)

	// ===================== BASE =====================
	BaseRoutes(app, db)

	// ===================== WEBHOOK (tanpa auth) =====================
	// Path-nya juga terdaftar di skipPaths auth middleware.
	log.Println("[INFO] Setting up payment webhook...")
	api := app.Group("/api")
	paymentRoute.PaymentWebhookRoutes(api, db)

	// ===================== PUBLIC =====================
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")
	roomRoute.RoomPublicRoutes(public, db)

	// ===================== ADMIN (/api/a) =====================
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("manajemen kost"), constants.AdminOnly...),
	)
	roomRoute.RoomAdminRoutes(admin, db)
	tenantRoute.TenantAdminRoutes(admin, db)
	agentRoute.AgentAdminRoutes(admin, db)
	ticketRoute.TicketAdminRoutes(admin, db)
	paymentRoute.PaymentAdminRoutes(admin, db)
	dashboardRoute.DashboardAdminRoutes(admin, db)

	// ===================== TENANT (/api/u) =====================
	log.Println("[INFO] Setting up TENANT group...")
	tenant := app.Group("/api/u",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorTenant("penghuni"), constants.TenantOnly...),
	)
	tenantRoute.TenantUserRoutes(tenant, db)
	ticketRoute.TicketTenantRoutes(tenant, db)
	paymentRoute.PaymentUserRoutes(tenant, db)

	// ===================== AGENT (/api/g) =====================
	log.Println("[INFO] Setting up AGENT group...")
	agent := app.Group("/api/g",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorAgent("petugas servis"), constants.AgentOnly...),
	)
	agentRoute.AgentSelfRoutes(agent, db)
	ticketRoute.TicketAgentRoutes(agent, db)

	log.Println("✅ Semua route berhasil dipasang")
}
