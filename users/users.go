package users

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	UsernameMinLength = 3
	UsernameMaxLength = 50
	PasswordMinLength = 8
	AboutMinLength    = 10
	AboutMaxLength    = 100
)

type User struct {
	ID           string    `json:"id,omitempty"`       // Unique identifier for the user
	Username     string    `json:"username,omitempty"` // Unique username, stored lowercase
	Email        string    `json:"email,omitempty"`    // Unique email address, stored lowercase
	PasswordHash string    `json:"-"`                  // Hashed version of the user's password - never serialize
	Image        string    `json:"image,omitempty"`    // Durable URL of the profile image
	About        string    `json:"about,omitempty"`    // Optional bio, 10-100 characters when present
	Tokens       []string  `json:"-"`                  // Active session tokens (allowlist) - never serialize
	Following    []string  `json:"following,omitempty"`
	Followers    []string  `json:"followers,omitempty"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
}

// HashPassword applies a salted bcrypt hash with the given work factor.
// Equal plaintexts produce different stored values.
func HashPassword(password string, cost int) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(bytes), err
}

// CheckPasswordHash verifies a plaintext password against a stored hash.
// bcrypt's comparison is constant-time with respect to the hash contents.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// SetPassword is the only path that hashes a password onto a user. Saving a
// user without calling SetPassword never re-hashes the stored credential.
func (u *User) SetPassword(password string, cost int) error {
	if err := ValidatePassword(password); err != nil {
		return err
	}
	hash, err := HashPassword(password, cost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

// IsFollowing reports whether the user follows the given user ID.
func (u *User) IsFollowing(userID string) bool {
	for _, id := range u.Following {
		if id == userID {
			return true
		}
	}
	return false
}

// HasToken reports whether raw is still on the user's session allowlist.
func (u *User) HasToken(raw string) bool {
	for _, t := range u.Tokens {
		if t == raw {
			return true
		}
	}
	return false
}

// NormalizeUsername lowercases and trims a username before storage or lookup.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// NormalizeEmail lowercases and trims an email before storage or lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidateUsername(username string) error {
	if len(username) < UsernameMinLength || len(username) > UsernameMaxLength {
		return fmt.Errorf("username must be between %d and %d characters long", UsernameMinLength, UsernameMaxLength)
	}
	return nil
}

func ValidateEmail(email string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("must be a valid email address")
	}
	return nil
}

func ValidatePassword(password string) error {
	if len(password) < PasswordMinLength {
		return fmt.Errorf("password must be at least %d characters long", PasswordMinLength)
	}
	return nil
}

// ValidateAbout checks the optional bio. An empty about is allowed.
func ValidateAbout(about string) error {
	if about == "" {
		return nil
	}
	if len(about) < AboutMinLength || len(about) > AboutMaxLength {
		return fmt.Errorf("about must be between %d and %d characters long", AboutMinLength, AboutMaxLength)
	}
	return nil
}
