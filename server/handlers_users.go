package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	apperrors "github.com/jrsteele09/go-blog-server/internal/errors"
	"github.com/jrsteele09/go-blog-server/users"
)

const maxUploadSize = 32 << 20

// SignupHandler registers a new account. The profile image arrives as a
// multipart file part and is pushed to the asset store; only the returned
// URL is persisted.
func (s *Server) SignupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			writeError(w, apperrors.Validation(err))
			return
		}

		username := users.NormalizeUsername(r.FormValue("username"))
		email := users.NormalizeEmail(r.FormValue("email"))
		password := r.FormValue("password")
		about := r.FormValue("about")

		if err := firstErr(
			users.ValidateUsername(username),
			users.ValidateEmail(email),
			users.ValidatePassword(password),
			users.ValidateAbout(about),
		); err != nil {
			writeError(w, apperrors.Validation(err))
			return
		}

		imageURL, err := s.uploadImage(r, true)
		if err != nil {
			writeError(w, err)
			return
		}

		user := &users.User{
			Username: username,
			Email:    email,
			Image:    imageURL,
			About:    about,
		}
		if err := user.SetPassword(password, s.config.GetBcryptCost()); err != nil {
			writeError(w, apperrors.Validation(err))
			return
		}

		if err := s.deps.Users.Create(r.Context(), user); err != nil {
			writeError(w, err)
			return
		}

		token, err := s.auth.IssueToken(r.Context(), user)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, map[string]any{
			"message": "user was registered successfully",
			"user":    user,
			"token":   token,
		})
	}
}

// LoginHandler checks credentials and issues a fresh session token.
func (s *Server) LoginHandler() http.HandlerFunc {
	type loginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, apperrors.Validation(err))
			return
		}

		user, err := s.auth.Authenticate(r.Context(), req.Email, req.Password)
		if err != nil {
			writeError(w, err)
			return
		}

		token, err := s.auth.IssueToken(r.Context(), user)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"message": "logged in successfully",
			"user":    user,
			"token":   token,
		})
	}
}

// LogoutHandler revokes the session token the request authenticated with.
// Other sessions of the same account stay valid.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.auth.RevokeToken(r.Context(), requestUser(r), requestToken(r)); err != nil {
			writeError(w, err)
			return
		}
		writeMessage(w, http.StatusOK, "user was logged out successfully")
	}
}

// LogoutAllHandler revokes every session token of the account.
func (s *Server) LogoutAllHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.auth.RevokeAll(r.Context(), requestUser(r)); err != nil {
			writeError(w, err)
			return
		}
		writeMessage(w, http.StatusOK, "user was logged out from all sessions successfully")
	}
}

// MeHandler returns the private profile with the user's own blogs.
func (s *Server) MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := requestUser(r)
		userBlogs, _, err := s.deps.Blogs.ListByAuthors(r.Context(), []string{user.ID}, 0, -1)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"user": user, "blogs": userBlogs})
	}
}

// PublicProfileHandler returns any user's public profile with their blogs.
func (s *Server) PublicProfileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := users.NormalizeUsername(r.PathValue("username"))
		user, err := s.deps.Users.GetByUsername(r.Context(), username)
		if err != nil {
			writeError(w, err)
			return
		}
		user.Tokens = nil

		userBlogs, _, err := s.deps.Blogs.ListByAuthors(r.Context(), []string{user.ID}, 0, -1)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"user": user, "blogs": userBlogs})
	}
}

// UpdateMeHandler edits the profile. Only username, email, about and image
// may change; a password change goes through ChangePasswordHandler so the
// stored hash is never touched here.
func (s *Server) UpdateMeHandler() http.HandlerFunc {
	allowed := map[string]struct{}{"username": {}, "email": {}, "about": {}, "image": {}}

	return func(w http.ResponseWriter, r *http.Request) {
		if err := parseForm(r); err != nil {
			writeError(w, apperrors.Validation(err))
			return
		}

		if len(r.Form) == 0 && !hasFile(r, "image") {
			writeError(w, apperrors.Validation(fmt.Errorf("please send any fields to update")))
			return
		}
		for field := range r.Form {
			if _, ok := allowed[field]; !ok {
				writeError(w, apperrors.Validation(fmt.Errorf("invalid update field %q", field)))
				return
			}
		}

		user := requestUser(r)
		if v := r.FormValue("username"); v != "" {
			user.Username = users.NormalizeUsername(v)
		}
		if v := r.FormValue("email"); v != "" {
			user.Email = users.NormalizeEmail(v)
		}
		if v := r.FormValue("about"); v != "" {
			user.About = v
		}

		if err := firstErr(
			users.ValidateUsername(user.Username),
			users.ValidateEmail(user.Email),
			users.ValidateAbout(user.About),
		); err != nil {
			writeError(w, apperrors.Validation(err))
			return
		}

		if hasFile(r, "image") {
			imageURL, err := s.uploadImage(r, false)
			if err != nil {
				writeError(w, err)
				return
			}
			if imageURL != "" {
				user.Image = imageURL
			}
		}

		if err := s.deps.Users.Update(r.Context(), user); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"message": "user was updated successfully",
			"user":    user,
		})
	}
}

// ChangePasswordHandler re-checks the old password before storing a new
// hash. This is the only update path that re-hashes.
func (s *Server) ChangePasswordHandler() http.HandlerFunc {
	type changeRequest struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req changeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, apperrors.Validation(err))
			return
		}

		user, err := s.auth.Authenticate(r.Context(), requestUser(r).Email, req.OldPassword)
		if err != nil {
			writeError(w, err)
			return
		}
		if err := user.SetPassword(req.NewPassword, s.config.GetBcryptCost()); err != nil {
			writeError(w, apperrors.Validation(err))
			return
		}
		if err := s.deps.Users.Update(r.Context(), user); err != nil {
			writeError(w, err)
			return
		}
		writeMessage(w, http.StatusOK, "user password was updated successfully")
	}
}

// DeleteAccountHandler removes the account and cascades over its blogs.
// The password must be re-entered; a valid session token alone is not
// enough for an irreversible delete.
func (s *Server) DeleteAccountHandler() http.HandlerFunc {
	type deleteRequest struct {
		Password string `json:"password"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req deleteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, apperrors.Validation(err))
			return
		}

		if err := s.lifecycle.DeleteAccount(r.Context(), requestUser(r), req.Password); err != nil {
			writeError(w, err)
			return
		}
		writeMessage(w, http.StatusOK, "user was deleted successfully")
	}
}

// FollowHandler makes the authenticated user follow the named account.
func (s *Server) FollowHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		target, err := s.graph.Follow(r.Context(), requestUser(r), r.PathValue("username"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeMessage(w, http.StatusOK, fmt.Sprintf("you are now following %s", target.Username))
	}
}

// UnfollowHandler removes the follow relation towards the named account.
func (s *Server) UnfollowHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		target, err := s.graph.Unfollow(r.Context(), requestUser(r), r.PathValue("username"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeMessage(w, http.StatusOK, fmt.Sprintf("you are no longer following %s", target.Username))
	}
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
