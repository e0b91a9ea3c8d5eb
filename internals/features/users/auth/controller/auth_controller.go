// file: internals/features/users/auth/controller/auth_controller.go
package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kostku_backend/internals/constants"
	roomModel "kostku_backend/internals/features/housing/rooms/model"
	tenantModel "kostku_backend/internals/features/housing/tenants/model"
	agentModel "kostku_backend/internals/features/maintenance/agents/model"
	authRepo "kostku_backend/internals/features/users/auth/repository"
	authService "kostku_backend/internals/features/users/auth/service"
	helpers "kostku_backend/internals/helpers"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

func (ctrl *AuthController) Register(c *fiber.Ctx) error {
	return authService.Register(ctrl.DB, c)
}

func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	return authService.Login(ctrl.DB, c)
}

func (ctrl *AuthController) LoginGoogle(c *fiber.Ctx) error {
	return authService.LoginGoogle(ctrl.DB, c)
}

func (ctrl *AuthController) RefreshToken(c *fiber.Ctx) error {
	return authService.RefreshToken(ctrl.DB, c)
}

func (ctrl *AuthController) Logout(c *fiber.Ctx) error {
	return authService.Logout(ctrl.DB, c)
}

func (ctrl *AuthController) ChangePassword(c *fiber.Ctx) error {
	return authService.ChangePassword(ctrl.DB, c)
}

// Me mengembalikan identitas saat ini + info kamar (tenant) / profil petugas.
// GET /api/auth/me
func (ctrl *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	user, err := authRepo.FindUserByID(ctrl.DB, userID)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
	}

	resp := fiber.Map{"user": user}

	switch user.Role {
	case constants.RoleTenant:
		var tenant tenantModel.TenantModel
		if err := ctrl.DB.Where("tenant_user_id = ?", userID).First(&tenant).Error; err == nil {
			resp["tenant"] = tenant
			if tenant.TenantRoomID != nil {
				var room roomModel.RoomModel
				if err := ctrl.DB.First(&room, "room_id = ?", *tenant.TenantRoomID).Error; err == nil {
					resp["room"] = room
				}
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.JsonError(c, fiber.StatusInternalServerError, "DB error")
		}
	case constants.RoleServiceAgent:
		var agent agentModel.ServiceAgentModel
		if err := ctrl.DB.Where("agent_user_id = ?", userID).First(&agent).Error; err == nil {
			resp["agent"] = agent
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.JsonError(c, fiber.StatusInternalServerError, "DB error")
		}
	}

	return helpers.JsonOK(c, "ok", resp)
}
