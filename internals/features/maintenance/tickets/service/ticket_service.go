// file: internals/features/maintenance/tickets/service/ticket_service.go
package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	agentModel "kostku_backend/internals/features/maintenance/agents/model"
	ticketModel "kostku_backend/internals/features/maintenance/tickets/model"
	tenantModel "kostku_backend/internals/features/housing/tenants/model"
)

var (
	ErrTicketNotFound      = errors.New("tiket tidak ditemukan")
	ErrTenantNotEligible   = errors.New("tenant belum approved atau belum menempati kamar")
	ErrInvalidTransition   = errors.New("transisi status tiket tidak valid")
	ErrAgentNotFound       = errors.New("petugas tidak ditemukan")
	ErrAgentNotApproved    = errors.New("petugas belum di-approve")
	ErrServiceTypeMismatch = errors.New("jenis layanan petugas tidak cocok dengan tiket")
	ErrNotTicketAgent      = errors.New("tiket bukan milik petugas ini")
)

type CreateTicketInput struct {
	Description string
	ServiceType string
	PhotoURLs   datatypes.JSON
}

// CreateTicket: tenant yang sudah approved & menempati kamar membuat tiket.
// Room diambil dari alokasi tenant, bukan dari input.
func CreateTicket(db *gorm.DB, userID uuid.UUID, in CreateTicketInput) (*ticketModel.TicketModel, error) {
	var tenant tenantModel.TenantModel
	if err := db.First(&tenant, "tenant_user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenantNotEligible
		}
		return nil, err
	}
	if !tenant.TenantIsApproved || tenant.TenantRoomID == nil {
		return nil, ErrTenantNotEligible
	}

	photos := in.PhotoURLs
	if len(photos) == 0 {
		photos = datatypes.JSON(`[]`)
	}

	ticket := &ticketModel.TicketModel{
		TicketTenantID:    tenant.TenantID,
		TicketRoomID:      *tenant.TenantRoomID,
		TicketDescription: in.Description,
		TicketServiceType: in.ServiceType,
		TicketStatus:      ticketModel.TicketStatusOpen,
		TicketPhotoURLs:   photos,
	}
	if err := db.Create(ticket).Error; err != nil {
		return nil, err
	}
	return ticket, nil
}

// AssignAgent: admin menugaskan petugas ke tiket open.
// Syarat: petugas approved & jenis layanannya cocok. open → assigned.
func AssignAgent(db *gorm.DB, ticketID, agentID uuid.UUID) (*ticketModel.TicketModel, error) {
	var ticket ticketModel.TicketModel
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&ticket, "ticket_id = ?", ticketID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTicketNotFound
			}
			return err
		}

		var agent agentModel.ServiceAgentModel
		if err := tx.First(&agent, "agent_id = ?", agentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAgentNotFound
			}
			return err
		}
		if !agent.AgentIsApproved {
			return ErrAgentNotApproved
		}
		if agent.AgentServiceType != ticket.TicketServiceType {
			return ErrServiceTypeMismatch
		}

		// Conditional update: cuma tiket open yang bisa di-assign.
		res := tx.Model(&ticketModel.TicketModel{}).
			Where("ticket_id = ? AND ticket_status = ?", ticketID, ticketModel.TicketStatusOpen).
			Updates(map[string]interface{}{
				"ticket_agent_id": agentID,
				"ticket_status":   ticketModel.TicketStatusAssigned,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvalidTransition
		}

		ticket.TicketAgentID = &agentID
		ticket.TicketStatus = ticketModel.TicketStatusAssigned
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

// agentByUser: profil petugas dari user yang login
func agentByUser(db *gorm.DB, userID uuid.UUID) (*agentModel.ServiceAgentModel, error) {
	var agent agentModel.ServiceAgentModel
	if err := db.First(&agent, "agent_user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAgentNotFound
		}
		return nil, err
	}
	return &agent, nil
}

// transitionByAgent: maju satu langkah (from → to) oleh petugas yang ditugaskan.
func transitionByAgent(db *gorm.DB, ticketID, agentUserID uuid.UUID, from, to string) (*ticketModel.TicketModel, error) {
	agent, err := agentByUser(db, agentUserID)
	if err != nil {
		return nil, err
	}

	var ticket ticketModel.TicketModel
	if err := db.First(&ticket, "ticket_id = ?", ticketID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	if ticket.TicketAgentID == nil || *ticket.TicketAgentID != agent.AgentID {
		return nil, ErrNotTicketAgent
	}

	res := db.Model(&ticketModel.TicketModel{}).
		Where("ticket_id = ? AND ticket_status = ?", ticketID, from).
		Update("ticket_status", to)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrInvalidTransition
	}

	ticket.TicketStatus = to
	return &ticket, nil
}

// StartWork: assigned → in_progress, hanya oleh petugas yang ditugaskan.
func StartWork(db *gorm.DB, ticketID, agentUserID uuid.UUID) (*ticketModel.TicketModel, error) {
	return transitionByAgent(db, ticketID, agentUserID,
		ticketModel.TicketStatusAssigned, ticketModel.TicketStatusInProgress)
}

// Resolve: in_progress → resolved, hanya oleh petugas yang ditugaskan.
func Resolve(db *gorm.DB, ticketID, agentUserID uuid.UUID) (*ticketModel.TicketModel, error) {
	return transitionByAgent(db, ticketID, agentUserID,
		ticketModel.TicketStatusInProgress, ticketModel.TicketStatusResolved)
}
