package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost is the bcrypt cost for stored passwords
	DefaultCost = 12
	// SessionIDBytes is the entropy of a session identifier
	SessionIDBytes = 24
)

var (
	bcryptGenerateFromPassword = bcrypt.GenerateFromPassword
	randomRead                 = rand.Read
	hashCost                   = DefaultCost
)

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcryptGenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(bytes), nil
}

// CheckPassword compares a password with a hash
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// SetHashCost overrides the bcrypt cost and returns the previous value.
// Tests lower it to keep registration fast.
func SetHashCost(cost int) int {
	prev := hashCost
	hashCost = cost
	return prev
}

// GenerateRandomToken returns length random bytes, hex encoded
func GenerateRandomToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := randomRead(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// GenerateSessionID returns an opaque identifier for a server-side session
func GenerateSessionID() (string, error) {
	return GenerateRandomToken(SessionIDBytes)
}
