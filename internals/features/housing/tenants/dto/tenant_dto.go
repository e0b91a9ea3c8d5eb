// file: internals/features/housing/tenants/dto/tenant_dto.go
package dto

import "github.com/google/uuid"

// Body untuk PUT /api/a/tenants/:id/approve
type ApproveTenantRequest struct {
	RoomID uuid.UUID `json:"room_id" validate:"required"`
}
