package server

func (s *Server) initRoutes() {
	// Registration & sessions
	s.RegisterRouteHandler("POST "+RouteUserSignup, ChainMiddleware(s.SignupHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteUserLogin, ChainMiddleware(s.LoginHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteUserLogout, ChainMiddleware(s.LogoutHandler(), s.AuthAPIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteUserLogoutAll, ChainMiddleware(s.LogoutAllHandler(), s.AuthAPIMiddleware()...))

	// Profile
	s.RegisterRouteHandler("GET "+RouteUserMe, ChainMiddleware(s.MeHandler(), s.AuthAPIMiddleware()...))
	s.RegisterRouteHandler("PATCH "+RouteUserMe, ChainMiddleware(s.UpdateMeHandler(), s.AuthAPIMiddleware()...))
	s.RegisterRouteHandler("PATCH "+RouteUserMePassword, ChainMiddleware(s.ChangePasswordHandler(), s.AuthAPIMiddleware()...))
	s.RegisterRouteHandler("DELETE "+RouteUserDelete, ChainMiddleware(s.DeleteAccountHandler(), s.AuthAPIMiddleware()...))

	// Follow graph
	s.RegisterRouteHandler("PATCH "+RouteUserFollow, ChainMiddleware(s.FollowHandler(), s.AuthAPIMiddleware()...))
	s.RegisterRouteHandler("PATCH "+RouteUserUnfollow, ChainMiddleware(s.UnfollowHandler(), s.AuthAPIMiddleware()...))

	// Blogs
	s.RegisterRouteHandler("POST "+RouteBlogs, ChainMiddleware(s.CreateBlogHandler(), s.AuthAPIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteBlogsSearch, ChainMiddleware(s.SearchBlogsHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteBlogByID, ChainMiddleware(s.GetBlogHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("PUT "+RouteBlogByID, ChainMiddleware(s.UpdateBlogHandler(), s.AuthAPIMiddleware()...))
	s.RegisterRouteHandler("DELETE "+RouteBlogByID, ChainMiddleware(s.DeleteBlogHandler(), s.AuthAPIMiddleware()...))

	// Feeds
	s.RegisterRouteHandler("GET "+RouteFeeds, ChainMiddleware(s.GlobalFeedHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteFeedsMe, ChainMiddleware(s.FollowingFeedHandler(), s.AuthAPIMiddleware()...))

	// Tags
	s.RegisterRouteHandler("POST "+RouteTags, ChainMiddleware(s.CreateTagHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteTags, ChainMiddleware(s.ListTagsHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteTagByName, ChainMiddleware(s.TagBlogsHandler(), s.APIMiddleware()...))

	// Contact
	s.RegisterRouteHandler("POST "+RouteContact, ChainMiddleware(s.ContactHandler(), s.APIMiddleware()...))

	// Public profile last; the literal /users/* routes above take precedence
	s.RegisterRouteHandler("GET "+RouteUserProfile, ChainMiddleware(s.PublicProfileHandler(), s.APIMiddleware()...))
}
