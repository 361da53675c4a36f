package constants

// HTTP Headers
const (
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderRequestID     = "X-Request-ID"
	HeaderUserAgent     = "User-Agent"
	HeaderForwardedFor  = "X-Forwarded-For"
)

// Content Types
const (
	ContentTypeJSON = "application/json"
)

// Authorization
const (
	BearerPrefix = "Bearer "
)

// Common Response Messages
const (
	MsgSuccess             = "success"
	MsgRegistered          = "Registration successful. Please check your email to verify your account."
	MsgLoginSuccess        = "Login successful"
	MsgLogoutSuccess       = "Logged out successfully"
	MsgTokenRefreshed      = "Token refreshed successfully"
	MsgEmailVerified       = "Email verified successfully"
	MsgAlreadyVerified     = "Email is already verified"
	MsgPasswordResetSent   = "If an account with that email exists, a password reset link has been sent."
	MsgVerificationResent  = "If an account with that email exists, a verification link has been sent."
	MsgPasswordReset       = "Password has been reset successfully"
	MsgPasswordChanged     = "Password changed successfully"
	MsgResetTokenValid     = "Reset token is valid"
	MsgProfileUpdated      = "Profile updated successfully"
	MsgInvalidRequestBody  = "Invalid request body"
	MsgValidationFailed    = "Validation failed"
	MsgInvalidCredentials  = "Invalid email or password"
	MsgEmailNotVerified    = "Please verify your email address before logging in"
	MsgEmailAlreadyExists  = "An account with this email already exists"
	MsgUnauthorized        = "Authentication required"
	MsgForbidden           = "You do not have permission to access this resource"
	MsgNotFound            = "Resource not found"
	MsgInternalServer      = "An internal error occurred"
	MsgTooManyRequests     = "Too many requests, please try again later"
	MsgInvalidOrExpired    = "Invalid or expired token"
	MsgTokenExpired        = "Access token has expired"
	MsgInvalidRefreshToken = "Invalid refresh token"
)
