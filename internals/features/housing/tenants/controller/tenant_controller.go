// file: internals/features/housing/tenants/controller/tenant_controller.go
package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"kostku_backend/internals/features/housing/tenants/dto"
	"kostku_backend/internals/features/housing/tenants/service"
	tenantModel "kostku_backend/internals/features/housing/tenants/model"
	roomModel "kostku_backend/internals/features/housing/rooms/model"
	helpers "kostku_backend/internals/helpers"
)

type TenantController struct {
	DB *gorm.DB
}

func NewTenantController(db *gorm.DB) *TenantController {
	return &TenantController{DB: db}
}

// Row gabungan tenant + identitas user, untuk listing admin.
type tenantWithUser struct {
	tenantModel.TenantModel
	UserName   string  `json:"user_name"`
	FullName   string  `json:"full_name"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone"`
	RoomNumber *string `json:"room_number,omitempty"`
}

// kolom yang boleh dipakai sort_by di listing admin
var tenantSortColumns = map[string]string{
	"created_at": "tenants.tenant_created_at",
	"check_in":   "tenants.tenant_check_in_date",
	"rent":       "tenants.tenant_rent_amount",
	"name":       "users.full_name",
}

func (ctrl *TenantController) listTenants(c *fiber.Ctx, approved bool) error {
	params := helpers.ParseFiber(c, "created_at", "asc", helpers.AdminOpts)

	order, err := params.SafeOrderClause(tenantSortColumns, "created_at")
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Kolom sort tidak dikenal")
	}

	base := ctrl.DB.Table("tenants").
		Joins("JOIN users ON users.id = tenants.tenant_user_id").
		Joins("LEFT JOIN rooms ON rooms.room_id = tenants.tenant_room_id").
		Where("tenants.tenant_deleted_at IS NULL AND tenants.tenant_is_approved = ?", approved)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung tenant")
	}

	var rows []tenantWithUser
	if err := base.Session(&gorm.Session{}).
		Select("tenants.*, users.user_name, users.full_name, users.email, users.phone, rooms.room_number").
		Order(order).
		Limit(params.Limit()).Offset(params.Offset()).
		Scan(&rows).Error; err != nil {
		log.Println("[ERROR] gagal ambil daftar tenant:", err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil daftar tenant")
	}

	label := "Daftar tenant"
	if !approved {
		label = "Daftar tenant menunggu approval"
	}
	return helpers.JsonList(c, label, rows, helpers.BuildMeta(total, params))
}

// GET /api/a/tenants/pending
func (ctrl *TenantController) GetPending(c *fiber.Ctx) error {
	return ctrl.listTenants(c, false)
}

// GET /api/a/tenants
func (ctrl *TenantController) GetApproved(c *fiber.Ctx) error {
	return ctrl.listTenants(c, true)
}

// PUT /api/a/tenants/:id/approve
// Approve sekaligus alokasi kamar — atomik di service.
func (ctrl *TenantController) Approve(c *fiber.Ctx) error {
	tenantID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "ID tenant tidak valid")
	}

	var body dto.ApproveTenantRequest
	if err := c.BodyParser(&body); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}

	tenant, err := service.ApproveTenant(ctrl.DB, tenantID, body.RoomID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoRoomSelected):
			return helpers.JsonError(c, fiber.StatusBadRequest, "Kamar harus dipilih")
		case errors.Is(err, service.ErrTenantNotFound):
			return helpers.JsonError(c, fiber.StatusNotFound, "Tenant tidak ditemukan")
		case errors.Is(err, service.ErrAlreadyApproved):
			return helpers.JsonError(c, fiber.StatusConflict, "Tenant sudah di-approve")
		case errors.Is(err, service.ErrRoomUnavailable):
			return helpers.JsonError(c, fiber.StatusConflict, "Kamar sudah terisi atau tidak tersedia")
		default:
			log.Println("[ERROR] approve tenant gagal:", err)
			return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal approve tenant")
		}
	}

	return helpers.JsonUpdated(c, "Tenant berhasil di-approve & kamar dialokasikan", tenant)
}

// PUT /api/a/tenants/:id/vacate
func (ctrl *TenantController) Vacate(c *fiber.Ctx) error {
	tenantID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "ID tenant tidak valid")
	}

	if err := service.VacateTenant(ctrl.DB, tenantID); err != nil {
		switch {
		case errors.Is(err, service.ErrTenantNotFound):
			return helpers.JsonError(c, fiber.StatusNotFound, "Tenant tidak ditemukan")
		case errors.Is(err, service.ErrNotAllocated):
			return helpers.JsonError(c, fiber.StatusConflict, "Tenant belum menempati kamar")
		default:
			log.Println("[ERROR] vacate tenant gagal:", err)
			return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal check-out tenant")
		}
	}

	return helpers.JsonUpdated(c, "Tenant berhasil check-out, kamar kembali tersedia", nil)
}

// GET /api/u/my-room — kamar yang ditempati tenant yang sedang login
func (ctrl *TenantController) GetMyRoom(c *fiber.Ctx) error {
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
	if tenant.TenantRoomID == nil {
		return helpers.JsonError(c, fiber.StatusNotFound, "Anda belum menempati kamar")
	}

	var room roomModel.RoomModel
	if err := ctrl.DB.First(&room, "room_id = ?", *tenant.TenantRoomID).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data kamar")
	}

	return helpers.JsonOK(c, "Berhasil mengambil kamar Anda", fiber.Map{
		"tenant": tenant,
		"room":   room,
	})
}
