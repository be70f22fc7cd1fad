package server

import (
	"fmt"
	"mime"
	"net/http"
	"strings"

	apperrors "github.com/jrsteele09/go-blog-server/internal/errors"
	"github.com/pkg/errors"
)

// parseForm accepts both multipart and url-encoded bodies so profile edits
// work with or without an attached image.
func parseForm(r *http.Request) error {
	contentType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if strings.HasPrefix(contentType, "multipart/") {
		return r.ParseMultipartForm(maxUploadSize)
	}
	return r.ParseForm()
}

func hasFile(r *http.Request, field string) bool {
	if r.MultipartForm == nil {
		return false
	}
	return len(r.MultipartForm.File[field]) > 0
}

// uploadImage pushes the request's "image" file part to the asset store and
// returns the durable URL. With required set, a missing part is a
// validation failure; otherwise it returns empty.
func (s *Server) uploadImage(r *http.Request, required bool) (string, error) {
	file, header, err := r.FormFile("image")
	if err != nil {
		if required {
			return "", apperrors.Validation(fmt.Errorf("image is required"))
		}
		return "", nil
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := s.deps.Assets.Upload(r.Context(), header.Filename, contentType, file)
	if err != nil {
		return "", errors.Wrap(err, "[uploadImage] asset store")
	}
	return url, nil
}
