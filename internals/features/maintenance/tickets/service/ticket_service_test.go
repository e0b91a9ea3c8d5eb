// file: internals/features/maintenance/tickets/service/ticket_service_test.go
package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"kostku_backend/internals/constants"
	roomModel "kostku_backend/internals/features/housing/rooms/model"
	tenantModel "kostku_backend/internals/features/housing/tenants/model"
	agentModel "kostku_backend/internals/features/maintenance/agents/model"
	ticketModel "kostku_backend/internals/features/maintenance/tickets/model"
)

func setupTicketDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&roomModel.RoomModel{},
		&tenantModel.TenantModel{},
		&agentModel.ServiceAgentModel{},
		&ticketModel.TicketModel{},
	))
	for _, table := range []string{"tickets", "service_agents", "tenants", "rooms"} {
		require.NoError(t, db.Exec("DELETE FROM "+table).Error)
	}
	return db
}

// tenant approved + sudah menempati kamar
func allocatedTenant(t *testing.T, db *gorm.DB) (*tenantModel.TenantModel, uuid.UUID) {
	t.Helper()
	room := &roomModel.RoomModel{
		RoomNumber:      "T-" + uuid.NewString()[:8],
		RoomMonthlyRent: 1_000_000,
		RoomStatus:      roomModel.RoomStatusOccupied,
		RoomFacilities:  datatypes.JSON(`[]`),
	}
	require.NoError(t, db.Create(room).Error)

	userID := uuid.New()
	tenant := &tenantModel.TenantModel{
		TenantUserID:     userID,
		TenantRoomID:     &room.RoomID,
		TenantIsApproved: true,
	}
	require.NoError(t, db.Create(tenant).Error)
	return tenant, userID
}

func makeAgent(t *testing.T, db *gorm.DB, serviceType string, approved bool) (*agentModel.ServiceAgentModel, uuid.UUID) {
	t.Helper()
	userID := uuid.New()
	agent := &agentModel.ServiceAgentModel{
		AgentUserID:      userID,
		AgentServiceType: serviceType,
		AgentIsApproved:  approved,
	}
	require.NoError(t, db.Create(agent).Error)
	return agent, userID
}

func openTicket(t *testing.T, db *gorm.DB, serviceType string) (*ticketModel.TicketModel, uuid.UUID) {
	t.Helper()
	_, tenantUserID := allocatedTenant(t, db)
	ticket, err := CreateTicket(db, tenantUserID, CreateTicketInput{
		Description: "Keran kamar mandi bocor",
		ServiceType: serviceType,
	})
	require.NoError(t, err)
	return ticket, tenantUserID
}

func TestCreateTicket_Success(t *testing.T) {
	db := setupTicketDB(t)
	tenant, userID := allocatedTenant(t, db)

	ticket, err := CreateTicket(db, userID, CreateTicketInput{
		Description: "Lampu kamar mati",
		ServiceType: constants.ServiceElectrician,
	})
	require.NoError(t, err)

	assert.Equal(t, ticketModel.TicketStatusOpen, ticket.TicketStatus)
	assert.Equal(t, tenant.TenantID, ticket.TicketTenantID)
	assert.Equal(t, *tenant.TenantRoomID, ticket.TicketRoomID)
	assert.Nil(t, ticket.TicketAgentID)
}

func TestCreateTicket_UnapprovedTenantRejected(t *testing.T) {
	db := setupTicketDB(t)
	userID := uuid.New()
	require.NoError(t, db.Create(&tenantModel.TenantModel{TenantUserID: userID}).Error)

	_, err := CreateTicket(db, userID, CreateTicketInput{
		Description: "apa saja",
		ServiceType: constants.ServiceOther,
	})
	assert.ErrorIs(t, err, ErrTenantNotEligible)
}

func TestAssignAgent_Success(t *testing.T) {
	db := setupTicketDB(t)
	ticket, _ := openTicket(t, db, constants.ServicePlumber)
	agent, _ := makeAgent(t, db, constants.ServicePlumber, true)

	got, err := AssignAgent(db, ticket.TicketID, agent.AgentID)
	require.NoError(t, err)
	assert.Equal(t, ticketModel.TicketStatusAssigned, got.TicketStatus)
	require.NotNil(t, got.TicketAgentID)
	assert.Equal(t, agent.AgentID, *got.TicketAgentID)
}

func TestAssignAgent_UnapprovedAgent(t *testing.T) {
	db := setupTicketDB(t)
	ticket, _ := openTicket(t, db, constants.ServicePlumber)
	agent, _ := makeAgent(t, db, constants.ServicePlumber, false)

	_, err := AssignAgent(db, ticket.TicketID, agent.AgentID)
	assert.ErrorIs(t, err, ErrAgentNotApproved)
}

func TestAssignAgent_ServiceTypeMismatch(t *testing.T) {
	db := setupTicketDB(t)
	ticket, _ := openTicket(t, db, constants.ServicePlumber)
	agent, _ := makeAgent(t, db, constants.ServiceCleaner, true)

	_, err := AssignAgent(db, ticket.TicketID, agent.AgentID)
	assert.ErrorIs(t, err, ErrServiceTypeMismatch)
}

func TestAssignAgent_OnlyFromOpen(t *testing.T) {
	db := setupTicketDB(t)
	ticket, _ := openTicket(t, db, constants.ServicePlumber)
	agentA, _ := makeAgent(t, db, constants.ServicePlumber, true)
	agentB, _ := makeAgent(t, db, constants.ServicePlumber, true)

	_, err := AssignAgent(db, ticket.TicketID, agentA.AgentID)
	require.NoError(t, err)

	// sudah assigned, tidak bisa di-assign ulang
	_, err = AssignAgent(db, ticket.TicketID, agentB.AgentID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTicketLifecycle_ForwardOnly(t *testing.T) {
	db := setupTicketDB(t)
	ticket, _ := openTicket(t, db, constants.ServiceElectrician)
	agent, agentUserID := makeAgent(t, db, constants.ServiceElectrician, true)

	_, err := AssignAgent(db, ticket.TicketID, agent.AgentID)
	require.NoError(t, err)

	// belum mulai: resolve langsung harus gagal
	_, err = Resolve(db, ticket.TicketID, agentUserID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	got, err := StartWork(db, ticket.TicketID, agentUserID)
	require.NoError(t, err)
	assert.Equal(t, ticketModel.TicketStatusInProgress, got.TicketStatus)

	// start dua kali tidak boleh
	_, err = StartWork(db, ticket.TicketID, agentUserID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	got, err = Resolve(db, ticket.TicketID, agentUserID)
	require.NoError(t, err)
	assert.Equal(t, ticketModel.TicketStatusResolved, got.TicketStatus)

	// resolved itu terminal
	_, err = StartWork(db, ticket.TicketID, agentUserID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestStartWork_OnlyAssignedAgent(t *testing.T) {
	db := setupTicketDB(t)
	ticket, _ := openTicket(t, db, constants.ServicePlumber)
	agent, _ := makeAgent(t, db, constants.ServicePlumber, true)
	_, otherUserID := makeAgent(t, db, constants.ServicePlumber, true)

	_, err := AssignAgent(db, ticket.TicketID, agent.AgentID)
	require.NoError(t, err)

	_, err = StartWork(db, ticket.TicketID, otherUserID)
	assert.ErrorIs(t, err, ErrNotTicketAgent)
}
