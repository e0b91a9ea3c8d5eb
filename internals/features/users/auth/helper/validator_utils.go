package helper

import (
	"errors"
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

func isAlphaNumeric(s string) bool {
	hasLetter := regexp.MustCompile(`[A-Za-z]`).MatchString(s)
	hasNumber := regexp.MustCompile(`[0-9]`).MatchString(s)
	return hasLetter && hasNumber
}

// Validasi Email (regex simple)
func isValidEmail(email string) bool {
	re := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	return re.MatchString(email)
}

// ValidateResetPassword dipakai endpoint reset/change password.
func ValidateResetPassword(email, newPassword string) error {
	if !isValidEmail(email) {
		return errors.New("format email tidak valid")
	}
	if len(newPassword) < 8 {
		return errors.New("password baru minimal 8 karakter")
	}
	if !isAlphaNumeric(newPassword) {
		return errors.New("password baru harus kombinasi huruf dan angka")
	}
	return nil
}

// HashPassword membungkus bcrypt dengan default cost.
func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPasswordHash membandingkan hash dengan plaintext.
func CheckPasswordHash(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
