// file: internals/features/users/auth/service/auth_service_test.go
package service

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	tenantModel "kostku_backend/internals/features/housing/tenants/model"
	agentModel "kostku_backend/internals/features/maintenance/agents/model"
	authModel "kostku_backend/internals/features/users/auth/model"
	userModel "kostku_backend/internals/features/users/user/model"
)

func setupAuthTest(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_REFRESH_SECRET", "test-refresh-secret")

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&userModel.UserModel{},
		&authModel.RefreshToken{},
		&tenantModel.TenantModel{},
		&agentModel.ServiceAgentModel{},
	))
	for _, table := range []string{"refresh_tokens", "service_agents", "tenants", "users"} {
		require.NoError(t, db.Exec("DELETE FROM "+table).Error)
	}

	app := fiber.New()
	app.Post("/register", func(c *fiber.Ctx) error { return Register(db, c) })
	app.Post("/login", func(c *fiber.Ctx) error { return Login(db, c) })
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

func TestRegister_ShortPasswordRejected(t *testing.T) {
	app, db := setupAuthTest(t)

	status := postJSON(t, app, "/register",
		`{"user_name":"budi","email":"budi@mail.com","password":"x"}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)

	var count int64
	require.NoError(t, db.Model(&userModel.UserModel{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestRegister_ShortUserNameRejected(t *testing.T) {
	app, _ := setupAuthTest(t)

	status := postJSON(t, app, "/register",
		`{"user_name":"ab","email":"ab@mail.com","password":"rahasia-banget"}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
}

func TestRegister_AgentWithoutServiceTypeRejected(t *testing.T) {
	app, _ := setupAuthTest(t)

	status := postJSON(t, app, "/register",
		`{"user_name":"tukang","email":"tukang@mail.com","password":"rahasia-banget","role":"service_agent"}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
}

func TestRegister_TenantSuccess(t *testing.T) {
	app, db := setupAuthTest(t)

	status := postJSON(t, app, "/register",
		`{"user_name":"siti","full_name":"Siti Aminah","email":"siti@mail.com","password":"rahasia-banget"}`)
	require.Equal(t, fiber.StatusCreated, status)

	var user userModel.UserModel
	require.NoError(t, db.First(&user, "email = ?", "siti@mail.com").Error)
	assert.Equal(t, "tenant", user.Role)
	// password tersimpan sebagai hash, bukan plaintext
	assert.NotEqual(t, "rahasia-banget", user.Password)

	// profil tenant ikut dibuat, unapproved
	var tenant tenantModel.TenantModel
	require.NoError(t, db.First(&tenant, "tenant_user_id = ?", user.ID).Error)
	assert.False(t, tenant.TenantIsApproved)
}

func TestLogin_MalformedEmailRejected(t *testing.T) {
	app, _ := setupAuthTest(t)

	status := postJSON(t, app, "/login", `{"email":"bukan-email","password":"apapun"}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
}

func TestLogin_WrongPasswordUnauthorized(t *testing.T) {
	app, _ := setupAuthTest(t)

	require.Equal(t, fiber.StatusCreated, postJSON(t, app, "/register",
		`{"user_name":"joko","email":"joko@mail.com","password":"rahasia-banget"}`))

	status := postJSON(t, app, "/login", `{"email":"joko@mail.com","password":"salah-semua"}`)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}
