package server

import (
	"net/http"
	"strconv"

	"github.com/jrsteele09/go-blog-server/blogs"
	"github.com/jrsteele09/go-blog-server/tags"
)

const defaultFeedLimit = 3

// GlobalFeedHandler returns one page of all blogs, newest first, with the
// total count and the tag list for the sidebar.
func (s *Server) GlobalFeedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skip, limit := pageParams(r)

		feedBlogs, total, err := s.feed.Global(r.Context(), skip, limit)
		if err != nil {
			writeError(w, err)
			return
		}
		s.writeFeed(w, r, feedBlogs, total)
	}
}

// FollowingFeedHandler returns one page of blogs authored by accounts the
// authenticated user follows.
func (s *Server) FollowingFeedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skip, limit := pageParams(r)

		feedBlogs, total, err := s.feed.ForUser(r.Context(), requestUser(r).ID, skip, limit)
		if err != nil {
			writeError(w, err)
			return
		}
		s.writeFeed(w, r, feedBlogs, total)
	}
}

func (s *Server) writeFeed(w http.ResponseWriter, r *http.Request, feedBlogs []*blogs.Blog, total int) {
	allTags, err := s.deps.Tags.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if feedBlogs == nil {
		feedBlogs = []*blogs.Blog{}
	}
	if allTags == nil {
		allTags = []*tags.Tag{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"blogs": feedBlogs,
		"count": total,
		"tags":  allTags,
	})
}

func pageParams(r *http.Request) (skip, limit int) {
	limit = defaultFeedLimit
	if v, err := strconv.Atoi(r.URL.Query().Get("skip")); err == nil && v > 0 {
		skip = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	return skip, limit
}
