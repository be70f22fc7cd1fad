package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// User routes - registration & sessions
	RouteUserSignup    = "/users/signup"
	RouteUserLogin     = "/users/login"
	RouteUserLogout    = "/users/logout"
	RouteUserLogoutAll = "/users/logoutAll"

	// User routes - profile
	RouteUserMe         = "/users/me"
	RouteUserMePassword = "/users/me/password"
	RouteUserDelete     = "/users"
	RouteUserProfile    = "/users/{username}"

	// User routes - follow graph
	RouteUserFollow   = "/users/follow/{username}"
	RouteUserUnfollow = "/users/unFollow/{username}"

	// Blog routes
	RouteBlogs       = "/blogs"
	RouteBlogsSearch = "/blogs/search"
	RouteBlogByID    = "/blogs/{id}"

	// Feed routes
	RouteFeeds   = "/feeds"
	RouteFeedsMe = "/feeds/me"

	// Tag routes
	RouteTags      = "/tags"
	RouteTagByName = "/tags/{name}"

	// Contact route
	RouteContact = "/contact"
)
