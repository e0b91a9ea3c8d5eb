// file: internals/features/housing/rooms/model/room_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Status kamar. vacant & available sama-sama boleh dialokasikan;
// occupied hanya lepas lewat proses check-out.
const (
	RoomStatusVacant      = "vacant"
	RoomStatusAvailable   = "available"
	RoomStatusOccupied    = "occupied"
	RoomStatusMaintenance = "maintenance"
)

// AllocatableStatuses dipakai conditional update saat approve tenant.
var AllocatableStatuses = []string{RoomStatusVacant, RoomStatusAvailable}

// RoomModel merepresentasikan tabel rooms
type RoomModel struct {
	RoomID       uuid.UUID `json:"room_id" gorm:"type:uuid;primaryKey;column:room_id"`
	RoomNumber   string    `json:"room_number" gorm:"type:varchar(20);not null;unique;column:room_number"`
	RoomFloor    int       `json:"room_floor" gorm:"not null;default:1;column:room_floor"`
	RoomCapacity int       `json:"room_capacity" gorm:"not null;default:1;column:room_capacity"`

	RoomMonthlyRent float64 `json:"room_monthly_rent" gorm:"not null;column:room_monthly_rent;check:room_monthly_rent >= 0"`
	RoomStatus      string  `json:"room_status" gorm:"type:varchar(20);not null;default:'available';column:room_status;index"`

	RoomFacilities datatypes.JSON `json:"room_facilities" gorm:"not null;default:'[]';column:room_facilities"`

	RoomCreatedAt time.Time      `json:"room_created_at" gorm:"column:room_created_at;autoCreateTime"`
	RoomUpdatedAt time.Time      `json:"room_updated_at" gorm:"column:room_updated_at;autoUpdateTime"`
	RoomDeletedAt gorm.DeletedAt `json:"room_deleted_at,omitempty" gorm:"column:room_deleted_at;index"`
}

// TableName mengikat model ke tabel rooms
func (RoomModel) TableName() string { return "rooms" }

func (r *RoomModel) BeforeCreate(tx *gorm.DB) error {
	if r.RoomID == uuid.Nil {
		r.RoomID = uuid.New()
	}
	return nil
}

// IsAllocatable: kamar boleh ditempati tenant baru
func (r *RoomModel) IsAllocatable() bool {
	return r.RoomStatus == RoomStatusVacant || r.RoomStatus == RoomStatusAvailable
}
