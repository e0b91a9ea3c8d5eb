// file: internals/features/maintenance/agents/controller/agent_controller.go
package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"kostku_backend/internals/constants"
	"kostku_backend/internals/features/maintenance/agents/dto"
	agentModel "kostku_backend/internals/features/maintenance/agents/model"
	helpers "kostku_backend/internals/helpers"
)

var validate = validator.New()

type AgentController struct {
	DB *gorm.DB
}

func NewAgentController(db *gorm.DB) *AgentController {
	return &AgentController{DB: db}
}

// Row gabungan agent + identitas user
type agentWithUser struct {
	agentModel.ServiceAgentModel
	UserName string `json:"user_name"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

var agentSortColumns = map[string]string{
	"created_at": "service_agents.agent_created_at",
	"experience": "service_agents.agent_experience_years",
	"name":       "users.full_name",
}

// GET /api/a/agents?service_type=plumber&approved=true
func (ctrl *AgentController) GetAll(c *fiber.Ctx) error {
	params := helpers.ParseFiber(c, "created_at", "asc", helpers.AdminOpts)

	order, err := params.SafeOrderClause(agentSortColumns, "created_at")
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Kolom sort tidak dikenal")
	}

	base := ctrl.DB.Table("service_agents").
		Joins("JOIN users ON users.id = service_agents.agent_user_id")

	if st := c.Query("service_type"); st != "" {
		if !constants.IsValidServiceType(st) {
			return helpers.JsonError(c, fiber.StatusBadRequest, "Jenis layanan tidak dikenal")
		}
		base = base.Where("service_agents.agent_service_type = ?", st)
	}
	if approved := c.Query("approved"); approved != "" {
		base = base.Where("service_agents.agent_is_approved = ?", approved == "true")
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung petugas")
	}

	var rows []agentWithUser
	if err := base.Session(&gorm.Session{}).
		Select("service_agents.*, users.user_name, users.full_name, users.email, users.phone").
		Order(order).
		Limit(params.Limit()).Offset(params.Offset()).
		Scan(&rows).Error; err != nil {
		log.Println("[ERROR] gagal ambil daftar petugas:", err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil daftar petugas")
	}

	return helpers.JsonList(c, "Daftar petugas servis", rows, helpers.BuildMeta(total, params))
}

// PUT /api/a/agents/:id/approve
func (ctrl *AgentController) Approve(c *fiber.Ctx) error {
	agentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "ID petugas tidak valid")
	}

	var agent agentModel.ServiceAgentModel
	if err := ctrl.DB.First(&agent, "agent_id = ?", agentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.JsonError(c, fiber.StatusNotFound, "Petugas tidak ditemukan")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data petugas")
	}
	if agent.AgentIsApproved {
		return helpers.JsonError(c, fiber.StatusConflict, "Petugas sudah di-approve")
	}

	if err := ctrl.DB.Model(&agent).Update("agent_is_approved", true).Error; err != nil {
		log.Println("[ERROR] approve petugas gagal:", err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal approve petugas")
	}

	agent.AgentIsApproved = true
	return helpers.JsonUpdated(c, "Petugas berhasil di-approve", agent)
}

// PUT /api/g/availability — petugas update status ketersediaannya sendiri
func (ctrl *AgentController) UpdateAvailability(c *fiber.Ctx) error {
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var body dto.UpdateAvailabilityRequest
	if err := c.BodyParser(&body); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if err := validate.Struct(&body); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Status harus salah satu dari: available, busy, inactive")
	}

	res := ctrl.DB.Model(&agentModel.ServiceAgentModel{}).
		Where("agent_user_id = ?", userID).
		Update("agent_availability_status", body.Status)
	if res.Error != nil {
		log.Println("[ERROR] update availability gagal:", res.Error)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal update status ketersediaan")
	}
	if res.RowsAffected == 0 {
		return helpers.JsonError(c, fiber.StatusNotFound, "Profil petugas tidak ditemukan")
	}

	return helpers.JsonUpdated(c, "Status ketersediaan diperbarui", fiber.Map{"status": body.Status})
}
