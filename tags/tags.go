package tags

import (
	"fmt"
	"strings"
)

const (
	NameMinLength = 2
	NameMaxLength = 32
)

type Tag struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"` // Unique, stored lowercase
}

func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func ValidateName(name string) error {
	if len(name) < NameMinLength || len(name) > NameMaxLength {
		return fmt.Errorf("tag name must be between %d and %d characters long", NameMinLength, NameMaxLength)
	}
	return nil
}
