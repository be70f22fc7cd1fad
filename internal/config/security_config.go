package config

import (
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type SecurityConfig interface {
	GetJWTSecret() []byte
	GetTokenExpiry() time.Duration
	GetBcryptCost() int
}

type Security struct{}

var _ SecurityConfig = Security{}

func (Security) GetJWTSecret() []byte {
	return []byte(GetEnv("JWT_SECRET", "dev-only-secret"))
}

// GetTokenExpiry returns the session token validity window. Tokens remain
// revocable before expiry through the per-user allowlist.
func (Security) GetTokenExpiry() time.Duration {
	if v := GetEnv("TOKEN_EXPIRY", ""); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return time.Hour
}

func (Security) GetBcryptCost() int {
	if v := GetEnv("BCRYPT_COST", ""); v != "" {
		if cost, err := strconv.Atoi(v); err == nil && cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			return cost
		}
	}
	return bcrypt.DefaultCost
}
