package auth

import (
	"bloodbridge_backend/pkg/apperrors"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword хеширует пароль с помощью bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword сравнивает пароль с хешем
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidatePassword - минимальная проверка сложности пароля
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return apperrors.ErrWeakPassword
	}
	return nil
}
