// file: internals/features/housing/tenants/service/allocation_service_test.go
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

	roomModel "kostku_backend/internals/features/housing/rooms/model"
	tenantModel "kostku_backend/internals/features/housing/tenants/model"
)

func setupAllocDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&roomModel.RoomModel{}, &tenantModel.TenantModel{}))

	// cache=shared bikin memory DB persist antar koneksi dalam satu proses;
	// bersihkan supaya tiap test mulai kosong.
	require.NoError(t, db.Exec("DELETE FROM tenants").Error)
	require.NoError(t, db.Exec("DELETE FROM rooms").Error)
	return db
}

func makeRoom(t *testing.T, db *gorm.DB, number, status string, rent float64) *roomModel.RoomModel {
	t.Helper()
	room := &roomModel.RoomModel{
		RoomNumber:      number,
		RoomMonthlyRent: rent,
		RoomStatus:      status,
		RoomFacilities:  datatypes.JSON(`[]`),
	}
	require.NoError(t, db.Create(room).Error)
	return room
}

func makeTenant(t *testing.T, db *gorm.DB) *tenantModel.TenantModel {
	t.Helper()
	tenant := &tenantModel.TenantModel{TenantUserID: uuid.New()}
	require.NoError(t, db.Create(tenant).Error)
	return tenant
}

func TestApproveTenant_Success(t *testing.T) {
	db := setupAllocDB(t)
	room := makeRoom(t, db, "A-101", roomModel.RoomStatusAvailable, 1_500_000)
	tenant := makeTenant(t, db)

	got, err := ApproveTenant(db, tenant.TenantID, room.RoomID)
	require.NoError(t, err)

	assert.True(t, got.TenantIsApproved)
	require.NotNil(t, got.TenantRoomID)
	assert.Equal(t, room.RoomID, *got.TenantRoomID)
	assert.Equal(t, 1_500_000.0, got.TenantRentAmount)
	assert.NotNil(t, got.TenantCheckInDate)

	var updatedRoom roomModel.RoomModel
	require.NoError(t, db.First(&updatedRoom, "room_id = ?", room.RoomID).Error)
	assert.Equal(t, roomModel.RoomStatusOccupied, updatedRoom.RoomStatus)
}

func TestApproveTenant_VacantRoomAlsoAllocatable(t *testing.T) {
	db := setupAllocDB(t)
	room := makeRoom(t, db, "A-102", roomModel.RoomStatusVacant, 900_000)
	tenant := makeTenant(t, db)

	_, err := ApproveTenant(db, tenant.TenantID, room.RoomID)
	require.NoError(t, err)
}

func TestApproveTenant_NoRoomSelected(t *testing.T) {
	db := setupAllocDB(t)
	tenant := makeTenant(t, db)

	_, err := ApproveTenant(db, tenant.TenantID, uuid.Nil)
	assert.ErrorIs(t, err, ErrNoRoomSelected)
}

func TestApproveTenant_TenantNotFound(t *testing.T) {
	db := setupAllocDB(t)
	room := makeRoom(t, db, "B-201", roomModel.RoomStatusAvailable, 1_000_000)

	_, err := ApproveTenant(db, uuid.New(), room.RoomID)
	assert.ErrorIs(t, err, ErrTenantNotFound)
}

func TestApproveTenant_RoomOccupied(t *testing.T) {
	db := setupAllocDB(t)
	room := makeRoom(t, db, "B-202", roomModel.RoomStatusOccupied, 1_000_000)
	tenant := makeTenant(t, db)

	_, err := ApproveTenant(db, tenant.TenantID, room.RoomID)
	assert.ErrorIs(t, err, ErrRoomUnavailable)

	// gagal alokasi = tenant tidak boleh berubah sama sekali
	var fresh tenantModel.TenantModel
	require.NoError(t, db.First(&fresh, "tenant_id = ?", tenant.TenantID).Error)
	assert.False(t, fresh.TenantIsApproved)
	assert.Nil(t, fresh.TenantRoomID)
}

func TestApproveTenant_RoomUnderMaintenance(t *testing.T) {
	db := setupAllocDB(t)
	room := makeRoom(t, db, "B-203", roomModel.RoomStatusMaintenance, 1_000_000)
	tenant := makeTenant(t, db)

	_, err := ApproveTenant(db, tenant.TenantID, room.RoomID)
	assert.ErrorIs(t, err, ErrRoomUnavailable)
}

func TestApproveTenant_AlreadyApproved(t *testing.T) {
	db := setupAllocDB(t)
	roomA := makeRoom(t, db, "C-301", roomModel.RoomStatusAvailable, 1_200_000)
	roomB := makeRoom(t, db, "C-302", roomModel.RoomStatusAvailable, 1_200_000)
	tenant := makeTenant(t, db)

	_, err := ApproveTenant(db, tenant.TenantID, roomA.RoomID)
	require.NoError(t, err)

	_, err = ApproveTenant(db, tenant.TenantID, roomB.RoomID)
	assert.ErrorIs(t, err, ErrAlreadyApproved)

	// kamar kedua tidak boleh ikut ter-klaim
	var fresh roomModel.RoomModel
	require.NoError(t, db.First(&fresh, "room_id = ?", roomB.RoomID).Error)
	assert.Equal(t, roomModel.RoomStatusAvailable, fresh.RoomStatus)
}

// Dua tenant rebutan satu kamar: yang kedua harus gagal, bukan overwrite.
func TestApproveTenant_SecondClaimerLoses(t *testing.T) {
	db := setupAllocDB(t)
	room := makeRoom(t, db, "D-401", roomModel.RoomStatusAvailable, 2_000_000)
	first := makeTenant(t, db)
	second := makeTenant(t, db)

	_, err := ApproveTenant(db, first.TenantID, room.RoomID)
	require.NoError(t, err)

	_, err = ApproveTenant(db, second.TenantID, room.RoomID)
	assert.ErrorIs(t, err, ErrRoomUnavailable)

	var fresh tenantModel.TenantModel
	require.NoError(t, db.First(&fresh, "tenant_id = ?", second.TenantID).Error)
	assert.False(t, fresh.TenantIsApproved)
}

func TestVacateTenant(t *testing.T) {
	db := setupAllocDB(t)
	room := makeRoom(t, db, "E-501", roomModel.RoomStatusAvailable, 1_750_000)
	tenant := makeTenant(t, db)

	_, err := ApproveTenant(db, tenant.TenantID, room.RoomID)
	require.NoError(t, err)

	require.NoError(t, VacateTenant(db, tenant.TenantID))

	var freshTenant tenantModel.TenantModel
	require.NoError(t, db.First(&freshTenant, "tenant_id = ?", tenant.TenantID).Error)
	assert.False(t, freshTenant.TenantIsApproved)
	assert.Nil(t, freshTenant.TenantRoomID)
	assert.NotNil(t, freshTenant.TenantCheckOutDate)

	var freshRoom roomModel.RoomModel
	require.NoError(t, db.First(&freshRoom, "room_id = ?", room.RoomID).Error)
	assert.Equal(t, roomModel.RoomStatusAvailable, freshRoom.RoomStatus)

	// kamar bekas langsung bisa dialokasikan lagi
	next := makeTenant(t, db)
	_, err = ApproveTenant(db, next.TenantID, room.RoomID)
	require.NoError(t, err)
}

func TestVacateTenant_NotAllocated(t *testing.T) {
	db := setupAllocDB(t)
	tenant := makeTenant(t, db)

	err := VacateTenant(db, tenant.TenantID)
	assert.ErrorIs(t, err, ErrNotAllocated)
}

func TestVacateTenant_NotFound(t *testing.T) {
	db := setupAllocDB(t)
	err := VacateTenant(db, uuid.New())
	assert.ErrorIs(t, err, ErrTenantNotFound)
}
