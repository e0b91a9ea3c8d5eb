// file: internals/features/housing/rooms/controller/room_controller_test.go
package controller

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"kostku_backend/internals/features/housing/rooms/model"
)

func setupRoomTest(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.RoomModel{}))
	require.NoError(t, db.Exec("DELETE FROM rooms").Error)

	ctrl := NewRoomController(db)
	app := fiber.New()
	app.Post("/rooms", ctrl.Create)
	return app, db
}

func postJSON(t *testing.T, app *fiber.App, path, body string) int {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestCreateRoom_DuplicateNumberConflict(t *testing.T) {
	app, db := setupRoomTest(t)

	body := `{"room_number":"Z-901","room_monthly_rent":1000000}`
	assert.Equal(t, fiber.StatusCreated, postJSON(t, app, "/rooms", body))

	// nomor kamar sama → harus 409, bukan 500
	assert.Equal(t, fiber.StatusConflict, postJSON(t, app, "/rooms", body))

	var count int64
	require.NoError(t, db.Model(&model.RoomModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestIsUniqueViolation(t *testing.T) {
	_, db := setupRoomTest(t)

	require.NoError(t, db.Create(&model.RoomModel{
		RoomNumber: "Z-902", RoomMonthlyRent: 900_000,
		RoomStatus: model.RoomStatusAvailable, RoomFacilities: datatypes.JSON(`[]`),
	}).Error)

	err := db.Create(&model.RoomModel{
		RoomNumber: "Z-902", RoomMonthlyRent: 900_000,
		RoomStatus: model.RoomStatusAvailable, RoomFacilities: datatypes.JSON(`[]`),
	}).Error
	require.Error(t, err)
	assert.True(t, isUniqueViolation(err))
}
