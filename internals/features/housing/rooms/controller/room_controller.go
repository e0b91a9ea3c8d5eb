// file: internals/features/housing/rooms/controller/room_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"kostku_backend/internals/features/housing/rooms/dto"
	"kostku_backend/internals/features/housing/rooms/model"
	helpers "kostku_backend/internals/helpers"
)

var validate = validator.New()

type RoomController struct {
	DB *gorm.DB
}

func NewRoomController(db *gorm.DB) *RoomController {
	return &RoomController{DB: db}
}

// GetAll mengambil semua kamar, urut nomor kamar naik.
// GET /api/a/rooms?status=
func (ctrl *RoomController) GetAll(c *fiber.Ctx) error {
	p := helpers.ParseFiber(c, "room_number", "asc", helpers.AdminOpts)

	q := ctrl.DB.Model(&model.RoomModel{})
	if status := c.Query("status"); status != "" {
		q = q.Where("room_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal hitung data kamar")
	}

	var rooms []model.RoomModel
	if err := q.Order("room_number ASC").
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&rooms).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal ambil data kamar")
	}

	return helpers.JsonList(c, "Daftar kamar", rooms, helpers.BuildMeta(total, p))
}

// GetAvailable daftar kamar yang boleh ditempati (vacant/available).
// GET /api/public/rooms/available
func (ctrl *RoomController) GetAvailable(c *fiber.Ctx) error {
	var rooms []model.RoomModel
	if err := ctrl.DB.
		Where("room_status IN ?", model.AllocatableStatuses).
		Order("room_number ASC").
		Find(&rooms).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal ambil kamar tersedia")
	}
	return helpers.JsonOK(c, "Kamar tersedia", rooms)
}

// GetByID detail satu kamar.
// GET /api/a/rooms/:id
func (ctrl *RoomController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Room ID tidak valid")
	}

	var room model.RoomModel
	if err := ctrl.DB.First(&room, "room_id = ?", id).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusNotFound, "Kamar tidak ditemukan")
	}
	return helpers.JsonOK(c, "", room)
}

// Create menambah kamar baru.
// POST /api/a/rooms
func (ctrl *RoomController) Create(c *fiber.Ctx) error {
	var req dto.CreateRoomRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helpers.JsonValidationError(c, validationErrorsToMap(err))
	}

	room := req.ToModel()
	if err := ctrl.DB.Create(room).Error; err != nil {
		if isUniqueViolation(err) {
			return helpers.JsonError(c, fiber.StatusConflict, "Nomor kamar sudah dipakai")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat kamar")
	}
	return helpers.JsonCreated(c, "Kamar berhasil dibuat", room)
}

// Update mengubah atribut kamar.
// PUT /api/a/rooms/:id
func (ctrl *RoomController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Room ID tidak valid")
	}

	var room model.RoomModel
	if err := ctrl.DB.First(&room, "room_id = ?", id).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusNotFound, "Kamar tidak ditemukan")
	}

	var req dto.UpdateRoomRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helpers.JsonValidationError(c, validationErrorsToMap(err))
	}

	updates := map[string]interface{}{}
	if req.RoomNumber != nil {
		updates["room_number"] = *req.RoomNumber
	}
	if req.RoomFloor != nil {
		updates["room_floor"] = *req.RoomFloor
	}
	if req.RoomCapacity != nil {
		updates["room_capacity"] = *req.RoomCapacity
	}
	if req.RoomMonthlyRent != nil {
		updates["room_monthly_rent"] = *req.RoomMonthlyRent
	}
	if req.RoomStatus != nil {
		updates["room_status"] = *req.RoomStatus
	}
	if req.RoomFacilities != nil {
		updates["room_facilities"] = dto.FacilitiesJSON(*req.RoomFacilities)
	}
	if len(updates) == 0 {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Tidak ada field yang diupdate")
	}

	if err := ctrl.DB.Model(&room).Updates(updates).Error; err != nil {
		if isUniqueViolation(err) {
			return helpers.JsonError(c, fiber.StatusConflict, "Nomor kamar sudah dipakai")
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal update kamar")
	}
	return helpers.JsonUpdated(c, "Kamar berhasil diupdate", room)
}

// Delete soft-delete kamar; kamar occupied tidak boleh dihapus.
// DELETE /api/a/rooms/:id
func (ctrl *RoomController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Room ID tidak valid")
	}

	var room model.RoomModel
	if err := ctrl.DB.First(&room, "room_id = ?", id).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusNotFound, "Kamar tidak ditemukan")
	}
	if room.RoomStatus == model.RoomStatusOccupied {
		return helpers.JsonError(c, fiber.StatusConflict, "Kamar masih ditempati, tidak bisa dihapus")
	}

	if err := ctrl.DB.Delete(&room).Error; err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal hapus kamar")
	}
	return helpers.JsonDeleted(c, "Kamar berhasil dihapus", fiber.Map{"room_id": id})
}

/* ======== internal ======== */

func validationErrorsToMap(err error) map[string][]string {
	out := map[string][]string{}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			out[fe.Field()] = append(out[fe.Field()], fe.Tag())
		}
	}
	return out
}

func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
