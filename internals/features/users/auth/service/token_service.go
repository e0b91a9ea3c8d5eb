// file: internals/features/users/auth/service/token_service.go
package service

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	authRepo "kostku_backend/internals/features/users/auth/repository"
	helpers "kostku_backend/internals/helpers"
)

// ========================== REFRESH TOKEN ==========================
// POST /api/auth/refresh-token
func RefreshToken(db *gorm.DB, c *fiber.Ctx) error {
	refreshCookie := strings.TrimSpace(c.Cookies("refresh_token"))
	if refreshCookie == "" {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Refresh token tidak ada")
	}

	refreshSecret, err := getRefreshSecret()
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	// Parse & validate refresh JWT
	tok, err := jwt.Parse(refreshCookie, func(t *jwt.Token) (any, error) {
		return []byte(refreshSecret), nil
	})
	if err != nil || !tok.Valid {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Refresh token invalid")
	}
	claims, _ := tok.Claims.(jwt.MapClaims)
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Refresh token invalid")
	}

	// Pastikan hash refresh ada di DB (belum dipakai/revoked)
	hash := computeRefreshHash(refreshCookie, refreshSecret)
	if _, err := authRepo.FindRefreshTokenByHash(db, hash); err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Refresh token tidak dikenal")
	}

	// Ambil user
	user, err := authRepo.FindUserByID(db, userID)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "User not found")
	}
	if !user.IsActive {
		return helpers.JsonError(c, fiber.StatusForbidden, "Akun dinonaktifkan")
	}

	// ROTATE: hapus token lama dulu
	if err := authRepo.DeleteRefreshTokenByHash(db, hash); err != nil {
		log.Printf("[refresh] delete old hash failed: %v", err)
	}

	access, err := issueTokens(db, c, *user)
	if err != nil {
		return err
	}
	return helpers.JsonOK(c, "Token diperbarui", fiber.Map{
		"access_token": access,
		"token_type":   "bearer",
	})
}

// ========================== LOGOUT ==========================
// POST /api/auth/logout
// Access token masuk blacklist sampai exp, refresh token dihapus.
func Logout(db *gorm.DB, c *fiber.Ctx) error {
	raw := helpers.GetRawAccessToken(c)
	if raw != "" {
		expiredAt := time.Now().Add(accessTTLDefault)
		// pakai exp asli kalau bisa dibaca, biar blacklist tidak kelamaan
		parser := jwt.Parser{SkipClaimsValidation: true}
		claims := jwt.MapClaims{}
		if _, err := parser.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
			secret, _ := getJWTSecret()
			return []byte(secret), nil
		}); err == nil {
			if exp, ok := claims["exp"].(float64); ok {
				expiredAt = time.Unix(int64(exp), 0)
			}
		}
		if err := authRepo.BlacklistToken(db, raw, expiredAt); err != nil {
			log.Printf("[logout] blacklist failed: %v", err)
		}
	}

	if refreshCookie := helpers.GetRefreshTokenFromCookie(c); refreshCookie != "" {
		if secret, err := getRefreshSecret(); err == nil {
			_ = authRepo.DeleteRefreshTokenByHash(db, computeRefreshHash(refreshCookie, secret))
		}
	}

	// clear cookies
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Path:     "/api/auth",
	})

	return helpers.JsonOK(c, "Logout berhasil", nil)
}
