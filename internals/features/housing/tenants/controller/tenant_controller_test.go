// file: internals/features/housing/tenants/controller/tenant_controller_test.go
package controller

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	roomModel "kostku_backend/internals/features/housing/rooms/model"
	tenantModel "kostku_backend/internals/features/housing/tenants/model"
	userModel "kostku_backend/internals/features/users/user/model"
)

func setupTenantListTest(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&userModel.UserModel{},
		&tenantModel.TenantModel{},
		&roomModel.RoomModel{},
	))
	require.NoError(t, db.Exec("DELETE FROM tenants").Error)
	require.NoError(t, db.Exec("DELETE FROM rooms").Error)
	require.NoError(t, db.Exec("DELETE FROM users").Error)

	ctrl := NewTenantController(db)
	app := fiber.New()
	app.Get("/tenants", ctrl.GetApproved)
	return app, db
}

func seedApprovedTenant(t *testing.T, db *gorm.DB, name, email string, rent float64) {
	t.Helper()
	user := &userModel.UserModel{
		UserName: name,
		FullName: name,
		Email:    email,
		Password: "rahasia-banget",
	}
	require.NoError(t, db.Create(user).Error)
	tenant := &tenantModel.TenantModel{
		TenantUserID:     user.ID,
		TenantIsApproved: true,
		TenantRentAmount: rent,
	}
	require.NoError(t, db.Create(tenant).Error)
}

type tenantListBody struct {
	Success bool `json:"success"`
	Data    []struct {
		FullName         string  `json:"full_name"`
		TenantRentAmount float64 `json:"tenant_rent_amount"`
	} `json:"data"`
}

func getTenantList(t *testing.T, app *fiber.App, path string) tenantListBody {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body tenantListBody
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func TestListTenants_SortByRentDesc(t *testing.T) {
	app, db := setupTenantListTest(t)
	seedApprovedTenant(t, db, "budi", "budi@mail.test", 1_200_000)
	seedApprovedTenant(t, db, "sari", "sari@mail.test", 2_000_000)
	seedApprovedTenant(t, db, "tono", "tono@mail.test", 900_000)

	body := getTenantList(t, app, "/tenants?sort_by=rent&order=desc")
	require.Len(t, body.Data, 3)
	assert.Equal(t, "sari", body.Data[0].FullName)
	assert.Equal(t, "budi", body.Data[1].FullName)
	assert.Equal(t, "tono", body.Data[2].FullName)
}

func TestListTenants_UnknownSortFallsBackToCreatedAt(t *testing.T) {
	app, db := setupTenantListTest(t)
	seedApprovedTenant(t, db, "budi", "budi@mail.test", 1_200_000)
	seedApprovedTenant(t, db, "sari", "sari@mail.test", 2_000_000)

	// kolom liar tidak dipakai, urutan balik ke default (created_at asc)
	body := getTenantList(t, app, "/tenants?sort_by=no_such_column")
	require.Len(t, body.Data, 2)
	assert.Equal(t, "budi", body.Data[0].FullName)
	assert.Equal(t, "sari", body.Data[1].FullName)
}
