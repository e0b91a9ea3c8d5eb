// file: internals/features/maintenance/agents/model/agent_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AgentAvailable = "available"
	AgentBusy      = "busy"
	AgentInactive  = "inactive"
)

// ServiceAgentModel merepresentasikan tabel service_agents.
// Petugas hanya bisa ditugaskan ke tiket setelah di-approve admin
// dan jenis layanannya cocok dengan tiket.
type ServiceAgentModel struct {
	AgentID     uuid.UUID `json:"agent_id" gorm:"type:uuid;primaryKey;column:agent_id"`
	AgentUserID uuid.UUID `json:"agent_user_id" gorm:"type:uuid;not null;unique;column:agent_user_id"`

	AgentServiceType     string `json:"agent_service_type" gorm:"type:varchar(20);not null;column:agent_service_type;index"`
	AgentIsApproved      bool   `json:"agent_is_approved" gorm:"not null;default:false;column:agent_is_approved"`
	AgentExperienceYears int    `json:"agent_experience_years" gorm:"not null;default:0;column:agent_experience_years"`

	AgentAvailabilityStatus string `json:"agent_availability_status" gorm:"type:varchar(20);not null;default:'available';column:agent_availability_status"`

	AgentCreatedAt time.Time `json:"agent_created_at" gorm:"column:agent_created_at;autoCreateTime"`
	AgentUpdatedAt time.Time `json:"agent_updated_at" gorm:"column:agent_updated_at;autoUpdateTime"`
}

// TableName mengikat model ke tabel service_agents
func (ServiceAgentModel) TableName() string { return "service_agents" }

func (a *ServiceAgentModel) BeforeCreate(tx *gorm.DB) error {
	if a.AgentID == uuid.Nil {
		a.AgentID = uuid.New()
	}
	return nil
}
