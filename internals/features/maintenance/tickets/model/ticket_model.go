// file: internals/features/maintenance/tickets/model/ticket_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Status tiket. Maju satu arah: open → assigned → in_progress → resolved.
const (
	TicketStatusOpen       = "open"
	TicketStatusAssigned   = "assigned"
	TicketStatusInProgress = "in_progress"
	TicketStatusResolved   = "resolved"
)

// TicketModel menyatukan komplain & maintenance request jadi satu entitas.
// ticket_agent_id terisi hanya saat status assigned/in_progress/resolved.
type TicketModel struct {
	TicketID       uuid.UUID  `json:"ticket_id" gorm:"type:uuid;primaryKey;column:ticket_id"`
	TicketTenantID uuid.UUID  `json:"ticket_tenant_id" gorm:"type:uuid;not null;column:ticket_tenant_id;index"`
	TicketRoomID   uuid.UUID  `json:"ticket_room_id" gorm:"type:uuid;not null;column:ticket_room_id"`
	TicketAgentID  *uuid.UUID `json:"ticket_agent_id,omitempty" gorm:"type:uuid;column:ticket_agent_id;index"`

	TicketDescription string `json:"ticket_description" gorm:"type:text;not null;column:ticket_description"`
	TicketServiceType string `json:"ticket_service_type" gorm:"type:varchar(20);not null;column:ticket_service_type"`
	TicketStatus      string `json:"ticket_status" gorm:"type:varchar(20);not null;default:'open';column:ticket_status;index"`

	TicketPhotoURLs datatypes.JSON `json:"ticket_photo_urls" gorm:"not null;default:'[]';column:ticket_photo_urls"`

	TicketCreatedAt time.Time `json:"ticket_created_at" gorm:"column:ticket_created_at;autoCreateTime"`
	TicketUpdatedAt time.Time `json:"ticket_updated_at" gorm:"column:ticket_updated_at;autoUpdateTime"`
}

// TableName mengikat model ke tabel tickets
func (TicketModel) TableName() string { return "tickets" }

func (t *TicketModel) BeforeCreate(tx *gorm.DB) error {
	if t.TicketID == uuid.Nil {
		t.TicketID = uuid.New()
	}
	return nil
}
