package api

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the hashes created by earlier versions of the system.
// Tests lower it.
var bcryptCost = 12

// GeneratedPasswordLength is the length of passwords created for new users.
const GeneratedPasswordLength = 16

// Look-alike characters (I, O, l, o, 0, 1) are left out.
const (
	passwordUpper   = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	passwordLower   = "abcdefghjkmnpqrstuvwxyz"
	passwordDigits  = "23456789"
	passwordSpecial = "!@#$%&*"
)

// GeneratePassword returns a random password with at least one character
// of each class. length is raised to 4 if smaller.
func GeneratePassword(length int) (string, error) {
	classes := []string{passwordUpper, passwordLower, passwordDigits, passwordSpecial}
	all := passwordUpper + passwordLower + passwordDigits + passwordSpecial
	if length < len(classes) {
		length = len(classes)
	}

	out := make([]byte, 0, length)
	for _, class := range classes {
		c, err := randomChar(class)
		if err != nil {
			return "", err
		}
		out = append(out, c)
	}
	for len(out) < length {
		c, err := randomChar(all)
		if err != nil {
			return "", err
		}
		out = append(out, c)
	}

	// Fisher-Yates, so the guaranteed characters are not always up front
	for i := len(out) - 1; i > 0; i-- {
		j, err := randomInt(i + 1)
		if err != nil {
			return "", err
		}
		out[i], out[j] = out[j], out[i]
	}
	return string(out), nil
}

func randomChar(set string) (byte, error) {
	i, err := randomInt(len(set))
	if err != nil {
		return 0, err
	}
	return set[i], nil
}

func randomInt(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("random: %w", err)
	}
	return int(v.Int64()), nil
}

// HashPassword returns the bcrypt hash stored for a user.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
