package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-blog-server/blogs"
	apperrors "github.com/jrsteele09/go-blog-server/internal/errors"
)

// CreateBlogHandler publishes a new blog owned by the authenticated user.
// The excerpt is always derived from the body, never taken from the client.
func (s *Server) CreateBlogHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			writeError(w, apperrors.Validation(err))
			return
		}

		title := strings.TrimSpace(r.FormValue("title"))
		body := strings.TrimSpace(r.FormValue("body"))
		tagIDs := splitTags(r.FormValue("tags"))

		if err := firstErr(
			blogs.ValidateTitle(title),
			blogs.ValidateBody(body),
		); err != nil {
			writeError(w, apperrors.Validation(err))
			return
		}
		if len(tagIDs) == 0 {
			writeError(w, apperrors.Validation(fmt.Errorf("at least one tag is required")))
			return
		}

		imageURL, err := s.uploadImage(r, true)
		if err != nil {
			writeError(w, err)
			return
		}

		blog := &blogs.Blog{
			Title:    title,
			Body:     body,
			Excerpt:  blogs.MakeExcerpt(body),
			Image:    imageURL,
			TagIDs:   tagIDs,
			PostedBy: requestUser(r).ID,
		}
		if err := s.deps.Blogs.Create(r.Context(), blog); err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, map[string]any{
			"message": "blog was created successfully",
			"blogId":  blog.ID,
		})
	}
}

// GetBlogHandler returns one blog by ID.
func (s *Server) GetBlogHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blog, err := s.deps.Blogs.GetByID(r.Context(), r.PathValue("id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, blog)
	}
}

// SearchBlogsHandler matches the search term against titles and bodies.
// Bodies and images are stripped from the response to keep it light.
func (s *Server) SearchBlogsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		term := r.URL.Query().Get("search")
		if term == "" {
			writeJSON(w, http.StatusOK, []*blogs.Blog{})
			return
		}

		matches, err := s.deps.Blogs.Search(r.Context(), term)
		if err != nil {
			writeError(w, err)
			return
		}
		for _, blog := range matches {
			blog.Body, blog.Image = "", ""
		}
		writeJSON(w, http.StatusOK, matches)
	}
}

// UpdateBlogHandler edits a blog the authenticated user owns. Ownership is
// enforced by the repo: the update targets the (id, postedBy) pair.
func (s *Server) UpdateBlogHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := parseForm(r); err != nil {
			writeError(w, apperrors.Validation(err))
			return
		}

		blog, err := s.deps.Blogs.GetByID(r.Context(), r.PathValue("id"))
		if err != nil {
			writeError(w, err)
			return
		}
		if blog.PostedBy != requestUser(r).ID {
			writeError(w, apperrors.ErrNotFound)
			return
		}

		if v := strings.TrimSpace(r.FormValue("title")); v != "" {
			blog.Title = v
		}
		if v := strings.TrimSpace(r.FormValue("body")); v != "" {
			blog.Body = v
			blog.Excerpt = blogs.MakeExcerpt(v)
		}
		if v := r.FormValue("tags"); v != "" {
			blog.TagIDs = splitTags(v)
		}

		if err := firstErr(
			blogs.ValidateTitle(blog.Title),
			blogs.ValidateBody(blog.Body),
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
				blog.Image = imageURL
			}
		}

		if err := s.deps.Blogs.Update(r.Context(), blog); err != nil {
			writeError(w, err)
			return
		}
		writeMessage(w, http.StatusOK, "blog was updated successfully")
	}
}

// DeleteBlogHandler removes one blog the authenticated user owns.
func (s *Server) DeleteBlogHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.deps.Blogs.Delete(r.Context(), r.PathValue("id"), requestUser(r).ID); err != nil {
			writeError(w, err)
			return
		}
		writeMessage(w, http.StatusOK, "blog was deleted successfully")
	}
}

func splitTags(value string) []string {
	if value == "" {
		return nil
	}
	var ids []string
	for _, id := range strings.Split(value, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
