// file: internals/features/maintenance/tickets/controller/ticket_controller.go
package controller

import (
	"encoding/json"
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	tenantModel "kostku_backend/internals/features/housing/tenants/model"
	agentModel "kostku_backend/internals/features/maintenance/agents/model"
	"kostku_backend/internals/features/maintenance/tickets/dto"
	ticketModel "kostku_backend/internals/features/maintenance/tickets/model"
	"kostku_backend/internals/features/maintenance/tickets/service"
	helpers "kostku_backend/internals/helpers"
)

var validate = validator.New()

type TicketController struct {
	DB *gorm.DB
}

func NewTicketController(db *gorm.DB) *TicketController {
	return &TicketController{DB: db}
}

// POST /api/u/tickets — tenant membuat komplain / request perbaikan
func (ctrl *TicketController) Create(c *fiber.Ctx) error {
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var body dto.CreateTicketRequest
	if err := c.BodyParser(&body); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if err := validate.Struct(&body); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Deskripsi & jenis layanan wajib diisi dengan benar")
	}

	photos := datatypes.JSON(`[]`)
	if len(body.PhotoURLs) > 0 {
		raw, _ := json.Marshal(body.PhotoURLs)
		photos = datatypes.JSON(raw)
	}

	ticket, err := service.CreateTicket(ctrl.DB, userID, service.CreateTicketInput{
		Description: body.Description,
		ServiceType: body.ServiceType,
		PhotoURLs:   photos,
	})
	if err != nil {
		if errors.Is(err, service.ErrTenantNotEligible) {
			return helpers.JsonError(c, fiber.StatusForbidden, "Hanya tenant yang sudah menempati kamar yang bisa membuat tiket")
		}
		log.Println("[ERROR] buat tiket gagal:", err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat tiket")
	}

	return helpers.JsonCreated(c, "Tiket berhasil dibuat", ticket)
}

// GET /api/a/tickets?status=open — semua tiket (admin)
func (ctrl *TicketController) GetAll(c *fiber.Ctx) error {
	params := helpers.ParseFiber(c, "ticket_created_at", "desc", helpers.AdminOpts)

	base := ctrl.DB.Model(&ticketModel.TicketModel{})
	if status := c.Query("status"); status != "" {
		base = base.Where("ticket_status = ?", status)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung tiket")
	}

	var tickets []ticketModel.TicketModel
	if err := base.Session(&gorm.Session{}).
		Order("ticket_created_at DESC").
		Limit(params.Limit()).Offset(params.Offset()).
		Find(&tickets).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil daftar tiket")
	}

	return helpers.JsonList(c, "Daftar tiket", tickets, helpers.BuildMeta(total, params))
}

// GET /api/u/tickets — tiket milik tenant yang login
func (ctrl *TicketController) GetMine(c *fiber.Ctx) error {
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var tenant tenantModel.TenantModel
	if err := ctrl.DB.First(&tenant, "tenant_user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.JsonError(c, fiber.StatusNotFound, "Profil tenant tidak ditemukan")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil profil tenant")
	}

	var tickets []ticketModel.TicketModel
	if err := ctrl.DB.
		Where("ticket_tenant_id = ?", tenant.TenantID).
		Order("ticket_created_at DESC").
		Find(&tickets).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil tiket Anda")
	}

	return helpers.JsonOK(c, "Tiket Anda", tickets)
}

// GET /api/g/tickets — tiket yang ditugaskan ke petugas yang login
func (ctrl *TicketController) GetAssigned(c *fiber.Ctx) error {
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var agent agentModel.ServiceAgentModel
	if err := ctrl.DB.First(&agent, "agent_user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.JsonError(c, fiber.StatusNotFound, "Profil petugas tidak ditemukan")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil profil petugas")
	}

	var tickets []ticketModel.TicketModel
	if err := ctrl.DB.
		Where("ticket_agent_id = ?", agent.AgentID).
		Order("ticket_created_at DESC").
		Find(&tickets).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil tiket tugas")
	}

	return helpers.JsonOK(c, "Tiket yang ditugaskan ke Anda", tickets)
}

// PUT /api/a/tickets/:id/assign
func (ctrl *TicketController) Assign(c *fiber.Ctx) error {
	ticketID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "ID tiket tidak valid")
	}

	var body dto.AssignTicketRequest
	if err := c.BodyParser(&body); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if body.AgentID == uuid.Nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Petugas harus dipilih")
	}

	ticket, err := service.AssignAgent(ctrl.DB, ticketID, body.AgentID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTicketNotFound):
			return helpers.JsonError(c, fiber.StatusNotFound, "Tiket tidak ditemukan")
		case errors.Is(err, service.ErrAgentNotFound):
			return helpers.JsonError(c, fiber.StatusNotFound, "Petugas tidak ditemukan")
		case errors.Is(err, service.ErrAgentNotApproved):
			return helpers.JsonError(c, fiber.StatusConflict, "Petugas belum di-approve")
		case errors.Is(err, service.ErrServiceTypeMismatch):
			return helpers.JsonError(c, fiber.StatusConflict, "Jenis layanan petugas tidak cocok dengan tiket")
		case errors.Is(err, service.ErrInvalidTransition):
			return helpers.JsonError(c, fiber.StatusConflict, "Tiket sudah ditugaskan atau sudah selesai")
		default:
			log.Println("[ERROR] assign tiket gagal:", err)
			return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal menugaskan petugas")
		}
	}

	return helpers.JsonUpdated(c, "Petugas berhasil ditugaskan", ticket)
}

func (ctrl *TicketController) agentTransition(c *fiber.Ctx, fn func(*gorm.DB, uuid.UUID, uuid.UUID) (*ticketModel.TicketModel, error), okMsg string) error {
	ticketID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "ID tiket tidak valid")
	}
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	ticket, err := fn(ctrl.DB, ticketID, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTicketNotFound):
			return helpers.JsonError(c, fiber.StatusNotFound, "Tiket tidak ditemukan")
		case errors.Is(err, service.ErrAgentNotFound):
			return helpers.JsonError(c, fiber.StatusNotFound, "Profil petugas tidak ditemukan")
		case errors.Is(err, service.ErrNotTicketAgent):
			return helpers.JsonError(c, fiber.StatusForbidden, "Tiket ini bukan tugas Anda")
		case errors.Is(err, service.ErrInvalidTransition):
			return helpers.JsonError(c, fiber.StatusConflict, "Status tiket tidak memungkinkan aksi ini")
		default:
			log.Println("[ERROR] transisi tiket gagal:", err)
			return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui status tiket")
		}
	}

	return helpers.JsonUpdated(c, okMsg, ticket)
}

// PUT /api/g/tickets/:id/start
func (ctrl *TicketController) Start(c *fiber.Ctx) error {
	return ctrl.agentTransition(c, service.StartWork, "Pengerjaan tiket dimulai")
}

// PUT /api/g/tickets/:id/resolve
func (ctrl *TicketController) Resolve(c *fiber.Ctx) error {
	return ctrl.agentTransition(c, service.Resolve, "Tiket selesai dikerjakan")
}
