// file: internals/features/users/auth/service/auth_service.go
package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"log"
	"os"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"kostku_backend/internals/configs"
	"kostku_backend/internals/constants"
	tenantModel "kostku_backend/internals/features/housing/tenants/model"
	agentModel "kostku_backend/internals/features/maintenance/agents/model"
	authHelper "kostku_backend/internals/features/users/auth/helper"
	authModel "kostku_backend/internals/features/users/auth/model"
	authRepo "kostku_backend/internals/features/users/auth/repository"
	userModel "kostku_backend/internals/features/users/user/model"
	helpers "kostku_backend/internals/helpers"
)

/* ==========================
   Const & small helpers
========================== */

const (
	accessTTLDefault  = 24 * time.Hour
	refreshTTLDefault = 7 * 24 * time.Hour
)

func nowUTC() time.Time { return time.Now().UTC() }

var validate = validator.New()

// fieldErrorsFrom ubah error validator jadi map field → tag untuk envelope 422.
func fieldErrorsFrom(err error) map[string][]string {
	out := map[string][]string{}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			out[fe.Field()] = append(out[fe.Field()], fe.Tag())
		}
	}
	return out
}

func getJWTSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTSecret)
	if secret == "" {
		secret = strings.TrimSpace(os.Getenv("JWT_SECRET"))
	}
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_SECRET belum diset")
	}
	return secret, nil
}

func getRefreshSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTRefreshSecret)
	if secret == "" {
		secret = strings.TrimSpace(os.Getenv("JWT_REFRESH_SECRET"))
	}
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_REFRESH_SECRET belum diset")
	}
	return secret, nil
}

func strptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func computeRefreshHash(token, secret string) []byte {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write([]byte(token))
	return m.Sum(nil)
}

func buildAccessClaims(u userModel.UserModel, now time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"id":        u.ID.String(),
		"user_name": u.UserName,
		"role":      u.Role,
		"iat":       now.Unix(),
		"exp":       now.Add(accessTTLDefault).Unix(),
	}
}

func buildRefreshClaims(userID uuid.UUID, now time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"sub": userID.String(),
		"iat": now.Unix(),
		"exp": now.Add(refreshTTLDefault).Unix(),
	}
}

// issueTokens membuat access JWT + refresh token (hash disimpan di DB,
// plaintext masuk cookie httpOnly).
func issueTokens(db *gorm.DB, c *fiber.Ctx, u userModel.UserModel) (string, error) {
	jwtSecret, err := getJWTSecret()
	if err != nil {
		return "", err
	}
	refreshSecret, err := getRefreshSecret()
	if err != nil {
		return "", err
	}

	now := nowUTC()
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, buildAccessClaims(u, now)).
		SignedString([]byte(jwtSecret))
	if err != nil {
		return "", fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat access token")
	}
	refresh, err := jwt.NewWithClaims(jwt.SigningMethodHS256, buildRefreshClaims(u.ID, now)).
		SignedString([]byte(refreshSecret))
	if err != nil {
		return "", fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat refresh token")
	}

	if err := authRepo.CreateRefreshToken(db, &authModel.RefreshToken{
		UserID:    u.ID,
		TokenHash: computeRefreshHash(refresh, refreshSecret),
		ExpiresAt: now.Add(refreshTTLDefault),
		UserAgent: strptr(c.Get("User-Agent")),
		IP:        strptr(c.IP()),
	}); err != nil {
		return "", fiber.NewError(fiber.StatusInternalServerError, "Gagal simpan refresh token")
	}

	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refresh,
		Expires:  now.Add(refreshTTLDefault),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
		Path:     "/api/auth",
	})

	return access, nil
}

/* ==========================
   REGISTER
========================== */

type RegisterInput struct {
	UserName        string `json:"user_name" validate:"required,min=3,max=50"`
	FullName        string `json:"full_name" validate:"max=100"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	Phone           string `json:"phone" validate:"max=20"`
	Role            string `json:"role" validate:"omitempty,oneof=tenant service_agent"`
	ServiceType     string `json:"service_type" validate:"omitempty,oneof=plumber electrician cleaner other"`
	ExperienceYears int    `json:"experience_years" validate:"omitempty,min=0,max=60"`
}

// Register mendaftarkan tenant atau petugas servis (admin hanya via seeder).
// Profil tenant/agent dibuat unapproved dalam transaksi yang sama.
func Register(db *gorm.DB, c *fiber.Ctx) error {
	var in RegisterInput
	if err := c.BodyParser(&in); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if in.Role == "" {
		in.Role = constants.RoleTenant
	}
	// Validasi DTO dulu sebelum hash/DB (password pendek dkk. → 422)
	if err := validate.Struct(&in); err != nil {
		return helpers.JsonValidationError(c, fieldErrorsFrom(err))
	}
	if in.Role == constants.RoleServiceAgent && !constants.IsValidServiceType(in.ServiceType) {
		return helpers.JsonValidationError(c, map[string][]string{
			"service_type": {"jenis layanan wajib diisi untuk petugas servis"},
		})
	}

	hashed, err := authHelper.HashPassword(in.Password)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	user := userModel.UserModel{
		UserName: in.UserName,
		FullName: in.FullName,
		Email:    strings.ToLower(strings.TrimSpace(in.Email)),
		Password: hashed,
		Phone:    in.Phone,
		Role:     in.Role,
		IsActive: true,
	}
	if err := user.Validate(); err != nil {
		return helpers.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	// cek duplikat email dulu biar pesan error jelas
	if _, err := authRepo.FindUserByEmail(db, user.Email); err == nil {
		return helpers.JsonError(c, fiber.StatusConflict, "Email sudah terdaftar")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	// user + profil (tenant/agent) dibuat satu transaksi
	if err := db.Transaction(func(tx *gorm.DB) error {
		if err := authRepo.CreateUser(tx, &user); err != nil {
			return err
		}
		switch user.Role {
		case constants.RoleTenant:
			return tx.Create(&tenantModel.TenantModel{
				TenantUserID: user.ID,
			}).Error
		case constants.RoleServiceAgent:
			return tx.Create(&agentModel.ServiceAgentModel{
				AgentUserID:             user.ID,
				AgentServiceType:        in.ServiceType,
				AgentExperienceYears:    in.ExperienceYears,
				AgentAvailabilityStatus: agentModel.AgentAvailable,
			}).Error
		}
		return nil
	}); err != nil {
		log.Printf("[ERROR] Register gagal: %v", err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal mendaftarkan user")
	}

	access, err := issueTokens(db, c, user)
	if err != nil {
		return err
	}
	return helpers.JsonCreated(c, "Registrasi berhasil, menunggu approval admin", fiber.Map{
		"access_token": access,
		"token_type":   "bearer",
		"user":         user,
	})
}

/* ==========================
   LOGIN (email + password)
========================== */

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func Login(db *gorm.DB, c *fiber.Ctx) error {
	var in LoginInput
	if err := c.BodyParser(&in); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := validate.Struct(&in); err != nil {
		return helpers.JsonValidationError(c, fieldErrorsFrom(err))
	}

	user, err := authRepo.FindUserByEmail(db, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		// pesan sengaja sama dengan password salah
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Email atau password salah")
	}
	if err := authHelper.CheckPasswordHash(user.Password, in.Password); err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Email atau password salah")
	}
	if !user.IsActive {
		return helpers.JsonError(c, fiber.StatusForbidden, "Akun Anda telah dinonaktifkan")
	}

	access, err := issueTokens(db, c, *user)
	if err != nil {
		return err
	}
	return helpers.JsonOK(c, "Login berhasil", fiber.Map{
		"access_token": access,
		"token_type":   "bearer",
		"user":         user,
	})
}

/* ==========================
   LOGIN GOOGLE (binding identitas alternatif)
========================== */

type LoginGoogleInput struct {
	IDToken string `json:"id_token" validate:"required"`
}

func LoginGoogle(db *gorm.DB, c *fiber.Ctx) error {
	var in LoginGoogleInput
	if err := c.BodyParser(&in); err != nil || strings.TrimSpace(in.IDToken) == "" {
		return helpers.JsonError(c, fiber.StatusBadRequest, "id_token wajib diisi")
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(in.IDToken, []string{configs.GoogleClientID}); err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Google ID token tidak valid")
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(in.IDToken)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Gagal decode Google ID token")
	}

	// cari user by google_id, fallback email, terakhir buat baru sebagai tenant
	user, err := authRepo.FindUserByGoogleID(db, claimSet.Sub)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user, err = authRepo.FindUserByEmail(db, strings.ToLower(claimSet.Email))
		if err == nil && user.GoogleID == nil {
			_ = db.Model(user).Update("google_id", claimSet.Sub).Error
		}
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		randomPass, hashErr := authHelper.HashPassword(uuid.NewString())
		if hashErr != nil {
			return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
		}
		newUser := userModel.UserModel{
			UserName: claimSet.Name,
			FullName: claimSet.Name,
			Email:    strings.ToLower(claimSet.Email),
			Password: randomPass,
			GoogleID: strptr(claimSet.Sub),
			Role:     constants.RoleTenant,
			IsActive: true,
		}
		if txErr := db.Transaction(func(tx *gorm.DB) error {
			if err := authRepo.CreateUser(tx, &newUser); err != nil {
				return err
			}
			return tx.Create(&tenantModel.TenantModel{TenantUserID: newUser.ID}).Error
		}); txErr != nil {
			return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat user dari akun Google")
		}
		user = &newUser
	} else if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	if !user.IsActive {
		return helpers.JsonError(c, fiber.StatusForbidden, "Akun Anda telah dinonaktifkan")
	}

	access, err := issueTokens(db, c, *user)
	if err != nil {
		return err
	}
	return helpers.JsonOK(c, "Login Google berhasil", fiber.Map{
		"access_token": access,
		"token_type":   "bearer",
		"user":         user,
	})
}
