package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	apperrors "github.com/jrsteele09/go-blog-server/internal/errors"
	"github.com/jrsteele09/go-blog-server/users"
)

// ContactHandler forwards a contact-form submission to the configured
// recipient. No account is required.
func (s *Server) ContactHandler() http.HandlerFunc {
	type contactRequest struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Message string `json:"message"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req contactRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, apperrors.Validation(err))
			return
		}

		req.Name = strings.TrimSpace(req.Name)
		req.Message = strings.TrimSpace(req.Message)
		if req.Name == "" || req.Message == "" {
			writeError(w, apperrors.Validation(fmt.Errorf("name and message are required")))
			return
		}
		if err := users.ValidateEmail(users.NormalizeEmail(req.Email)); err != nil {
			writeError(w, apperrors.Validation(err))
			return
		}

		if err := s.deps.Mailer.SendContact(req.Name, req.Email, req.Message); err != nil {
			writeError(w, err)
			return
		}
		writeMessage(w, http.StatusOK, "message was sent successfully")
	}
}
