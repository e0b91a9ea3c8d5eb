// file: internals/features/home/dashboard/controller/dashboard_controller.go
package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	paymentModel "kostku_backend/internals/features/finance/payments/model"
	roomModel "kostku_backend/internals/features/housing/rooms/model"
	tenantModel "kostku_backend/internals/features/housing/tenants/model"
	agentModel "kostku_backend/internals/features/maintenance/agents/model"
	ticketModel "kostku_backend/internals/features/maintenance/tickets/model"
	helpers "kostku_backend/internals/helpers"
)

type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

// GET /api/a/stats — ringkasan operasional untuk dashboard admin
func (ctrl *DashboardController) GetStats(c *fiber.Ctx) error {
	type counter struct {
		label string
		query *gorm.DB
		dest  *int64
	}

	var (
		totalRooms      int64
		occupiedRooms   int64
		availableRooms  int64
		pendingTenants  int64
		activeTenants   int64
		pendingAgents   int64
		openTickets     int64
		activeTickets   int64
		pendingPayments int64
	)

	counters := []counter{
		{"total kamar", ctrl.DB.Model(&roomModel.RoomModel{}), &totalRooms},
		{"kamar terisi", ctrl.DB.Model(&roomModel.RoomModel{}).
			Where("room_status = ?", roomModel.RoomStatusOccupied), &occupiedRooms},
		{"kamar tersedia", ctrl.DB.Model(&roomModel.RoomModel{}).
			Where("room_status IN ?", roomModel.AllocatableStatuses), &availableRooms},
		{"tenant pending", ctrl.DB.Model(&tenantModel.TenantModel{}).
			Where("tenant_is_approved = ?", false), &pendingTenants},
		{"tenant aktif", ctrl.DB.Model(&tenantModel.TenantModel{}).
			Where("tenant_is_approved = ? AND tenant_room_id IS NOT NULL", true), &activeTenants},
		{"petugas pending", ctrl.DB.Model(&agentModel.ServiceAgentModel{}).
			Where("agent_is_approved = ?", false), &pendingAgents},
		{"tiket open", ctrl.DB.Model(&ticketModel.TicketModel{}).
			Where("ticket_status = ?", ticketModel.TicketStatusOpen), &openTickets},
		{"tiket aktif", ctrl.DB.Model(&ticketModel.TicketModel{}).
			Where("ticket_status IN ?", []string{
				ticketModel.TicketStatusOpen,
				ticketModel.TicketStatusAssigned,
				ticketModel.TicketStatusInProgress,
			}), &activeTickets},
		{"pembayaran pending", ctrl.DB.Model(&paymentModel.PaymentModel{}).
			Where("payment_status = ?", paymentModel.PaymentStatusPending), &pendingPayments},
	}

	for _, cnt := range counters {
		if err := cnt.query.Count(cnt.dest).Error; err != nil {
			log.Printf("[ERROR] hitung %s gagal: %v", cnt.label, err)
			return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil statistik")
		}
	}

	return helpers.JsonOK(c, "Statistik dashboard", fiber.Map{
		"rooms": fiber.Map{
			"total":     totalRooms,
			"occupied":  occupiedRooms,
			"available": availableRooms,
		},
		"tenants": fiber.Map{
			"pending": pendingTenants,
			"active":  activeTenants,
		},
		"agents": fiber.Map{
			"pending": pendingAgents,
		},
		"tickets": fiber.Map{
			"open":   openTickets,
			"active": activeTickets,
		},
		"payments": fiber.Map{
			"pending": pendingPayments,
		},
	})
}
