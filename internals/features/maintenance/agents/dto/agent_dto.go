// file: internals/features/maintenance/agents/dto/agent_dto.go
package dto

// Body untuk PUT /api/g/availability
type UpdateAvailabilityRequest struct {
	Status string `json:"status" validate:"required,oneof=available busy inactive"`
}
