package server

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/jrsteele09/go-blog-server/internal/errors"
	"github.com/jrsteele09/go-blog-server/tags"
)

// CreateTagHandler registers a new tag name. Names are stored lowercase and
// collide on the normalized form.
func (s *Server) CreateTagHandler() http.HandlerFunc {
	type createRequest struct {
		Name string `json:"name"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req createRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, apperrors.Validation(err))
			return
		}

		name := tags.NormalizeName(req.Name)
		if err := tags.ValidateName(name); err != nil {
			writeError(w, apperrors.Validation(err))
			return
		}

		tag := &tags.Tag{Name: name}
		if err := s.deps.Tags.Create(r.Context(), tag); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{
			"message": "tag was created successfully",
			"tag":     tag,
		})
	}
}

// ListTagsHandler returns every tag.
func (s *Server) ListTagsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		allTags, err := s.deps.Tags.List(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		if allTags == nil {
			allTags = []*tags.Tag{}
		}
		writeJSON(w, http.StatusOK, allTags)
	}
}

// TagBlogsHandler returns every blog carrying the named tag.
func (s *Server) TagBlogsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tag, err := s.deps.Tags.GetByName(r.Context(), tags.NormalizeName(r.PathValue("name")))
		if err != nil {
			writeError(w, err)
			return
		}

		tagged, err := s.deps.Blogs.ListByTag(r.Context(), tag.ID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"tag":   tag,
			"blogs": tagged,
		})
	}
}
