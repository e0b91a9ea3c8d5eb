// file: internals/features/users/auth/repository/auth_repository.go
package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	authModel "kostku_backend/internals/features/users/auth/model"
	userModel "kostku_backend/internals/features/users/user/model"
)

/* ======== Users ======== */

func FindUserByEmail(db *gorm.DB, email string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByID(db *gorm.DB, id uuid.UUID) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByGoogleID(db *gorm.DB, googleID string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.Where("google_id = ?", googleID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func CreateUser(db *gorm.DB, user *userModel.UserModel) error {
	return db.Create(user).Error
}

func UpdateUserPassword(db *gorm.DB, id uuid.UUID, hashed string) error {
	return db.Model(&userModel.UserModel{}).
		Where("id = ?", id).
		Update("password", hashed).Error
}

/* ======== Refresh tokens ======== */

func CreateRefreshToken(db *gorm.DB, rt *authModel.RefreshToken) error {
	return db.Create(rt).Error
}

func FindRefreshTokenByHash(db *gorm.DB, hash []byte) (*authModel.RefreshToken, error) {
	var rt authModel.RefreshToken
	if err := db.Where("token_hash = ? AND revoked_at IS NULL AND expires_at > ?", hash, time.Now()).
		First(&rt).Error; err != nil {
		return nil, err
	}
	return &rt, nil
}

func DeleteRefreshTokenByHash(db *gorm.DB, hash []byte) error {
	return db.Where("token_hash = ?", hash).Delete(&authModel.RefreshToken{}).Error
}

func DeleteRefreshTokensByUser(db *gorm.DB, userID uuid.UUID) error {
	return db.Where("user_id = ?", userID).Delete(&authModel.RefreshToken{}).Error
}

/* ======== Blacklist ======== */

func BlacklistToken(db *gorm.DB, token string, expiredAt time.Time) error {
	return db.Create(&authModel.TokenBlacklist{
		Token:     token,
		ExpiredAt: expiredAt,
	}).Error
}
