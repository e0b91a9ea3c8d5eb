// file: internals/features/maintenance/tickets/dto/ticket_dto.go
package dto

import "github.com/google/uuid"

// Body untuk POST /api/u/tickets
type CreateTicketRequest struct {
	Description string   `json:"description" validate:"required,min=5"`
	ServiceType string   `json:"service_type" validate:"required,oneof=plumber electrician cleaner other"`
	PhotoURLs   []string `json:"photo_urls" validate:"omitempty,dive,url"`
}

// Body untuk PUT /api/a/tickets/:id/assign
type AssignTicketRequest struct {
	AgentID uuid.UUID `json:"agent_id" validate:"required"`
}
