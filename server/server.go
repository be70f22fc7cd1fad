package server

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-blog-server/assets"
	"github.com/jrsteele09/go-blog-server/auth"
	"github.com/jrsteele09/go-blog-server/blogs"
	"github.com/jrsteele09/go-blog-server/internal/config"
	"github.com/jrsteele09/go-blog-server/mailer"
	"github.com/jrsteele09/go-blog-server/social"
	"github.com/jrsteele09/go-blog-server/tags"
	"github.com/jrsteele09/go-blog-server/users"
	"github.com/pkg/errors"
)

// Deps holds all repository and collaborator dependencies for the Server.
type Deps struct {
	Users  users.UserRepo
	Blogs  blogs.Repo
	Tags   tags.Repo
	Assets assets.Store
	Mailer mailer.Mailer

	// TxRunner binds the account-deletion cascade to one transaction.
	// Nil means the repositories are applied sequentially (in-memory mode).
	TxRunner blogs.TxRunner
}

type Server struct {
	env    string
	mux    *http.ServeMux
	routes []string
	config config.Config
	deps   Deps

	auth      *auth.Service
	graph     *social.Graph
	feed      *social.Feed
	lifecycle *blogs.Lifecycle
}

func New(cfg config.Config, deps Deps) (*Server, error) {
	if deps.Users == nil || deps.Blogs == nil || deps.Tags == nil {
		return nil, errors.New("[Server New] user, blog and tag repos are required")
	}
	if deps.Assets == nil {
		return nil, errors.New("[Server New] asset store is required")
	}
	if deps.Mailer == nil {
		deps.Mailer = &mailer.NoopMailer{}
	}

	authService, err := auth.NewService(deps.Users, cfg.GetJWTSecret(), auth.WithTokenExpiry(cfg.GetTokenExpiry()))
	if err != nil {
		return nil, errors.Wrap(err, "[Server New] auth.NewService")
	}
	graph, err := social.NewGraph(deps.Users)
	if err != nil {
		return nil, errors.Wrap(err, "[Server New] social.NewGraph")
	}
	feed, err := social.NewFeed(deps.Users, deps.Blogs)
	if err != nil {
		return nil, errors.Wrap(err, "[Server New] social.NewFeed")
	}
	lifecycle, err := blogs.NewLifecycle(deps.Users, deps.Blogs, deps.TxRunner)
	if err != nil {
		return nil, errors.Wrap(err, "[Server New] blogs.NewLifecycle")
	}

	s := &Server{
		env:       cfg.GetEnv(),
		mux:       http.NewServeMux(),
		config:    cfg,
		deps:      deps,
		auth:      authService,
		graph:     graph,
		feed:      feed,
		lifecycle: lifecycle,
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)
		if len(parts) > 1 {
			log.Info().Str("method", parts[0]).Str("path", parts[1]).Msg("route")
		} else {
			log.Info().Str("path", parts[0]).Msg("route")
		}
	}
}
