// Package assets uploads images to a remote object store and hands back the
// durable URL the rest of the system persists.
package assets

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

type Store interface {
	// Upload stores body under a generated key and returns its durable URL.
	Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error)
}

// StorageKey generates a date-bucketed object key so uploads never collide.
func StorageKey(filename string) string {
	d := time.Now()
	return fmt.Sprintf("uploads/%d/%d/%d/%s-%s", d.Year(), d.Month(), d.Day(), uuid.New(), filename)
}
