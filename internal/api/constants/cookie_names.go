package constants

// Cookie names used in the application
const (
	// CookieSession carries the visitor session id (HttpOnly)
	CookieSession = "apex_session"

	// Cookie paths
	CookiePathRoot = "/" // Root path for cookies available throughout the site
)
