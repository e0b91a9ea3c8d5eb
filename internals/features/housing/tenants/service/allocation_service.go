// file: internals/features/housing/tenants/service/allocation_service.go
package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	roomModel "kostku_backend/internals/features/housing/rooms/model"
	tenantModel "kostku_backend/internals/features/housing/tenants/model"
)

// Error domain alokasi. Controller yang map ke status HTTP.
var (
	ErrNoRoomSelected  = errors.New("room belum dipilih")
	ErrRoomUnavailable = errors.New("kamar tidak tersedia")
	ErrTenantNotFound  = errors.New("tenant tidak ditemukan")
	ErrAlreadyApproved = errors.New("tenant sudah di-approve")
	ErrNotAllocated    = errors.New("tenant belum menempati kamar")
)

// ApproveTenant: approve + alokasi kamar dalam SATU transaksi.
//
// Klaim kamar pakai conditional update (WHERE room_status masih allocatable),
// jadi dua admin yang rebutan kamar yang sama: satu menang, satu dapat
// ErrRoomUnavailable — tidak pernah silent overwrite.
func ApproveTenant(db *gorm.DB, tenantID, roomID uuid.UUID) (*tenantModel.TenantModel, error) {
	if roomID == uuid.Nil {
		return nil, ErrNoRoomSelected
	}

	var tenant tenantModel.TenantModel
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&tenant, "tenant_id = ?", tenantID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTenantNotFound
			}
			return err
		}
		if tenant.TenantIsApproved {
			return ErrAlreadyApproved
		}

		// Klaim kamar: hanya berhasil kalau status masih allocatable.
		res := tx.Model(&roomModel.RoomModel{}).
			Where("room_id = ? AND room_status IN ?", roomID, roomModel.AllocatableStatuses).
			Update("room_status", roomModel.RoomStatusOccupied)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrRoomUnavailable
		}

		// Snapshot harga sewa saat alokasi.
		var room roomModel.RoomModel
		if err := tx.First(&room, "room_id = ?", roomID).Error; err != nil {
			return err
		}

		now := time.Now()
		updates := map[string]interface{}{
			"tenant_is_approved":   true,
			"tenant_room_id":       roomID,
			"tenant_rent_amount":   room.RoomMonthlyRent,
			"tenant_check_in_date": now,
		}
		if err := tx.Model(&tenant).Updates(updates).Error; err != nil {
			return err
		}

		tenant.TenantIsApproved = true
		tenant.TenantRoomID = &roomID
		tenant.TenantRentAmount = room.RoomMonthlyRent
		tenant.TenantCheckInDate = &now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

// VacateTenant: check-out tenant + kembalikan kamar jadi available,
// satu transaksi juga.
func VacateTenant(db *gorm.DB, tenantID uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var tenant tenantModel.TenantModel
		if err := tx.First(&tenant, "tenant_id = ?", tenantID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTenantNotFound
			}
			return err
		}
		if tenant.TenantRoomID == nil {
			return ErrNotAllocated
		}

		if err := tx.Model(&roomModel.RoomModel{}).
			Where("room_id = ?", *tenant.TenantRoomID).
			Update("room_status", roomModel.RoomStatusAvailable).Error; err != nil {
			return err
		}

		now := time.Now()
		return tx.Model(&tenant).Updates(map[string]interface{}{
			"tenant_room_id":        nil,
			"tenant_is_approved":    false,
			"tenant_check_out_date": now,
		}).Error
	})
}
