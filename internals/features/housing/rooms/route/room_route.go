// file: internals/features/housing/rooms/route/room_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "kostku_backend/internals/features/housing/rooms/controller"
)

// RoomAdminRoutes — base: /api/a (sudah lewat auth + role admin)
func RoomAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := controller.NewRoomController(db)

	rooms := admin.Group("/rooms")
	rooms.Get("/", ctrl.GetAll)
	rooms.Get("/:id", ctrl.GetByID)
	rooms.Post("/", ctrl.Create)
	rooms.Put("/:id", ctrl.Update)
	rooms.Delete("/:id", ctrl.Delete)
}

// RoomPublicRoutes — base: /api/public (tanpa auth)
func RoomPublicRoutes(public fiber.Router, db *gorm.DB) {
	ctrl := controller.NewRoomController(db)

	public.Get("/rooms/available", ctrl.GetAvailable)
}
