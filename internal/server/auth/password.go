package auth

import (
	"unicode"

	"github.com/tokomonggo/server/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plaintext password with bcrypt at the default cost.
func HashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}

// CheckPassword reports whether candidate matches the stored bcrypt hash.
func CheckPassword(hash []byte, candidate string) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(candidate)) == nil
}

// ValidatePassword enforces the signup password policy: at least 8
// characters and at least 3 of the 4 classes (upper, lower, digit, special).
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return common.ErrorValidation
	}

	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			special = true
		}
	}

	classes := 0
	for _, ok := range []bool{upper, lower, digit, special} {
		if ok {
			classes++
		}
	}
	if classes < 3 {
		return common.ErrorValidation
	}
	return nil
}
