package constants

// Context keys for values set by middleware
const (
	// ContextKeyRequestID holds the X-Request-ID of the current request
	ContextKeyRequestID = "RequestID"

	// ContextKeySessionID holds the visitor session id from the cookie
	ContextKeySessionID = "sessionID"

	// ContextKeyContact holds the bound contact form
	ContextKeyContact = "contact"

	// ContextKeyCarsQuery holds the validated catalog query
	ContextKeyCarsQuery = "carsQuery"
)
