package blogs

import (
	"fmt"
	"strings"
	"time"
)

const (
	TitleMinLength = 3
	TitleMaxLength = 160
	BodyMinLength  = 200
	BodyMaxLength  = 2000000

	// ExcerptWords is how many leading words of the body form the excerpt.
	ExcerptWords = 40
)

type Blog struct {
	ID        string    `json:"id,omitempty"`
	Title     string    `json:"title,omitempty"`   // Unique title
	Body      string    `json:"body,omitempty"`
	Excerpt   string    `json:"excerpt,omitempty"` // Derived from Body, never set by clients
	Image     string    `json:"image,omitempty"`   // Durable URL of the cover image
	TagIDs    []string  `json:"tags,omitempty"`
	PostedBy  string    `json:"posted_by,omitempty"` // Owning user ID, immutable after creation
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// MakeExcerpt returns the first ExcerptWords words of body, with an ellipsis
// when the body is longer.
func MakeExcerpt(body string) string {
	words := strings.Fields(body)
	if len(words) <= ExcerptWords {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:ExcerptWords], " ") + "..."
}

func ValidateTitle(title string) error {
	if len(title) < TitleMinLength || len(title) > TitleMaxLength {
		return fmt.Errorf("title must be between %d and %d characters long", TitleMinLength, TitleMaxLength)
	}
	return nil
}

func ValidateBody(body string) error {
	if len(body) < BodyMinLength || len(body) > BodyMaxLength {
		return fmt.Errorf("body must be between %d and %d characters long", BodyMinLength, BodyMaxLength)
	}
	return nil
}
