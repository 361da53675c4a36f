package constants

// ContextKey is the type used for values stored in request contexts.
type ContextKey string

// Context Keys
const (
	ContextKeyRequestID ContextKey = "request_id"
	ContextKeyUserID    ContextKey = "user_id"
	ContextKeyUserEmail ContextKey = "user_email"
	ContextKeyUserType  ContextKey = "user_type"
	ContextKeyClientIP  ContextKey = "client_ip"
	ContextKeyUserAgent ContextKey = "user_agent"
	ContextKeyStartTime ContextKey = "start_time"
	ContextKeyModule    ContextKey = "module"
	ContextKeyFunction  ContextKey = "function"
)

// Gin context keys for authenticated request data.
const (
	GinKeyUserID    = "userID"
	GinKeyUserEmail = "userEmail"
	GinKeyUserType  = "userType"
	GinKeyClaims    = "claims"
)
