// file: internals/features/housing/rooms/dto/room_dto.go
package dto

import (
	"encoding/json"

	"gorm.io/datatypes"

	"kostku_backend/internals/features/housing/rooms/model"
)

type CreateRoomRequest struct {
	RoomNumber      string   `json:"room_number" validate:"required,min=1,max=20"`
	RoomFloor       int      `json:"room_floor" validate:"omitempty,min=0,max=50"`
	RoomCapacity    int      `json:"room_capacity" validate:"omitempty,min=1,max=10"`
	RoomMonthlyRent float64  `json:"room_monthly_rent" validate:"required,gt=0"`
	RoomStatus      string   `json:"room_status" validate:"omitempty,oneof=vacant available occupied maintenance"`
	RoomFacilities  []string `json:"room_facilities" validate:"omitempty,dive,min=1,max=50"`
}

type UpdateRoomRequest struct {
	RoomNumber      *string   `json:"room_number" validate:"omitempty,min=1,max=20"`
	RoomFloor       *int      `json:"room_floor" validate:"omitempty,min=0,max=50"`
	RoomCapacity    *int      `json:"room_capacity" validate:"omitempty,min=1,max=10"`
	RoomMonthlyRent *float64  `json:"room_monthly_rent" validate:"omitempty,gt=0"`
	RoomStatus      *string   `json:"room_status" validate:"omitempty,oneof=vacant available occupied maintenance"`
	RoomFacilities  *[]string `json:"room_facilities" validate:"omitempty,dive,min=1,max=50"`
}

// ToModel membangun RoomModel dari request create.
func (r *CreateRoomRequest) ToModel() *model.RoomModel {
	m := &model.RoomModel{
		RoomNumber:      r.RoomNumber,
		RoomFloor:       r.RoomFloor,
		RoomCapacity:    r.RoomCapacity,
		RoomMonthlyRent: r.RoomMonthlyRent,
		RoomStatus:      r.RoomStatus,
	}
	if m.RoomFloor == 0 {
		m.RoomFloor = 1
	}
	if m.RoomCapacity == 0 {
		m.RoomCapacity = 1
	}
	if m.RoomStatus == "" {
		m.RoomStatus = model.RoomStatusAvailable
	}
	m.RoomFacilities = FacilitiesJSON(r.RoomFacilities)
	return m
}

// FacilitiesJSON encode slice fasilitas ke kolom JSONB.
func FacilitiesJSON(facilities []string) datatypes.JSON {
	if facilities == nil {
		facilities = []string{}
	}
	b, _ := json.Marshal(facilities)
	return datatypes.JSON(b)
}
