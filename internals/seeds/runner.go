// file: internals/seeds/runner.go
package seeds

import (
	"errors"
	"log"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"kostku_backend/internals/configs"
	"kostku_backend/internals/constants"
	authHelper "kostku_backend/internals/features/users/auth/helper"
	roomModel "kostku_backend/internals/features/housing/rooms/model"
	userModel "kostku_backend/internals/features/users/user/model"
)

// Run: seed data awal (idempoten, aman dipanggil tiap start).
// Admin pertama + beberapa kamar contoh.
func Run(db *gorm.DB) {
	if err := seedAdmin(db); err != nil {
		log.Println("❌ [SEED] gagal seed admin:", err)
	}
	if err := seedRooms(db); err != nil {
		log.Println("❌ [SEED] gagal seed kamar:", err)
	}
}

func seedAdmin(db *gorm.DB) error {
	email := configs.GetEnv("SEED_ADMIN_EMAIL", "admin@kostku.local")

	var existing userModel.UserModel
	err := db.First(&existing, "email = ?", email).Error
	if err == nil {
		return nil // sudah ada
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	password := configs.GetEnv("SEED_ADMIN_PASSWORD", "gantiPasswordIni123")
	hashed, err := authHelper.HashPassword(password)
	if err != nil {
		return err
	}

	admin := userModel.UserModel{
		UserName: "admin",
		FullName: "Admin Kost",
		Email:    email,
		Password: hashed,
		Role:     constants.RoleAdmin,
		IsActive: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Println("✅ [SEED] admin dibuat:", email)
	return nil
}

func seedRooms(db *gorm.DB) error {
	var count int64
	if err := db.Model(&roomModel.RoomModel{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	rooms := []roomModel.RoomModel{
		{RoomNumber: "A-101", RoomFloor: 1, RoomCapacity: 1, RoomMonthlyRent: 1_200_000,
			RoomStatus: roomModel.RoomStatusAvailable, RoomFacilities: datatypes.JSON(`["kasur","lemari","AC"]`)},
		{RoomNumber: "A-102", RoomFloor: 1, RoomCapacity: 1, RoomMonthlyRent: 1_000_000,
			RoomStatus: roomModel.RoomStatusAvailable, RoomFacilities: datatypes.JSON(`["kasur","lemari"]`)},
		{RoomNumber: "B-201", RoomFloor: 2, RoomCapacity: 2, RoomMonthlyRent: 1_750_000,
			RoomStatus: roomModel.RoomStatusAvailable, RoomFacilities: datatypes.JSON(`["kasur","lemari","AC","kamar mandi dalam"]`)},
	}
	if err := db.Create(&rooms).Error; err != nil {
		return err
	}
	log.Printf("✅ [SEED] %d kamar contoh dibuat", len(rooms))
	return nil
}
