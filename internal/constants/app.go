package constants

// Application Information
const (
	AppName    = "Daycare Directory Service"
	AppVersion = "1.0.0"
)

// Environment Types
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Default Application Settings
const (
	DefaultPort        = "8080"
	DefaultEnvironment = EnvDevelopment
)

// User Types
const (
	UserTypeParent   = "parent"
	UserTypeProvider = "provider"
	UserTypeEmployer = "employer"
	UserTypeEmployee = "employee"
)

// Cache Key Prefixes
const (
	CacheKeyPrefix   = "daycare:"
	CacheKeySearch   = CacheKeyPrefix + "search:"
	CacheKeyListing  = CacheKeyPrefix + "listing:"
	CacheKeyMetadata = CacheKeyPrefix + "meta:"
)

// Token Cookie Names
const (
	CookieAccessToken  = "access_token"
	CookieRefreshToken = "refresh_token"
)

// Log Levels
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
	LogLevelFatal = "fatal"
)
