// file: internals/features/housing/tenants/model/tenant_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TenantModel merepresentasikan tabel tenants (profil penghuni).
// Dibuat unapproved dengan tenant_room_id NULL; approve + alokasi kamar
// berjalan dalam satu transaksi (lihat service.ApproveTenant).
type TenantModel struct {
	TenantID     uuid.UUID  `json:"tenant_id" gorm:"type:uuid;primaryKey;column:tenant_id"`
	TenantUserID uuid.UUID  `json:"tenant_user_id" gorm:"type:uuid;not null;unique;column:tenant_user_id"`
	TenantRoomID *uuid.UUID `json:"tenant_room_id,omitempty" gorm:"type:uuid;column:tenant_room_id;index"`

	TenantIsApproved bool    `json:"tenant_is_approved" gorm:"not null;default:false;column:tenant_is_approved;index"`
	TenantRentAmount float64 `json:"tenant_rent_amount" gorm:"not null;default:0;column:tenant_rent_amount"`

	TenantCheckInDate  *time.Time `json:"tenant_check_in_date,omitempty" gorm:"column:tenant_check_in_date"`
	TenantCheckOutDate *time.Time `json:"tenant_check_out_date,omitempty" gorm:"column:tenant_check_out_date"`

	TenantCreatedAt time.Time      `json:"tenant_created_at" gorm:"column:tenant_created_at;autoCreateTime"`
	TenantUpdatedAt time.Time      `json:"tenant_updated_at" gorm:"column:tenant_updated_at;autoUpdateTime"`
	TenantDeletedAt gorm.DeletedAt `json:"tenant_deleted_at,omitempty" gorm:"column:tenant_deleted_at;index"`
}

// TableName mengikat model ke tabel tenants
func (TenantModel) TableName() string { return "tenants" }

func (t *TenantModel) BeforeCreate(tx *gorm.DB) error {
	if t.TenantID == uuid.Nil {
		t.TenantID = uuid.New()
	}
	return nil
}
