package ctxutil

import (
	"context"
	"net/http"
	"time"

	"github.com/daycarehub/backend/internal/constants"
)

// ContextKey aliases the shared context key type.
type ContextKey = constants.ContextKey

// Context keys used across middleware, services and repositories.
const (
	RequestIDKey = constants.ContextKeyRequestID
	UserIDKey    = constants.ContextKeyUserID
	UserEmailKey = constants.ContextKeyUserEmail
	UserTypeKey  = constants.ContextKeyUserType
	ClientIPKey  = constants.ContextKeyClientIP
	UserAgentKey = constants.ContextKeyUserAgent
	StartTimeKey = constants.ContextKeyStartTime
	ModuleKey    = constants.ContextKeyModule
	FunctionKey  = constants.ContextKeyFunction
)

// WithValue adds a value to the context under a typed key.
func WithValue(ctx context.Context, key ContextKey, value interface{}) context.Context {
	return context.WithValue(ctx, key, value)
}

// WithUserID adds the authenticated user ID to the context.
func WithUserID(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// WithModule records the owning module name for log correlation.
func WithModule(ctx context.Context, module string) context.Context {
	return context.WithValue(ctx, ModuleKey, module)
}

// WithFunction records the current function name for log correlation.
func WithFunction(ctx context.Context, function string) context.Context {
	return context.WithValue(ctx, FunctionKey, function)
}

func GetRequestID(ctx context.Context) string {
	if val, ok := ctx.Value(RequestIDKey).(string); ok {
		return val
	}
	return ""
}

func GetClientIP(ctx context.Context) string {
	if val, ok := ctx.Value(ClientIPKey).(string); ok {
		return val
	}
	return ""
}

func GetUserAgent(ctx context.Context) string {
	if val, ok := ctx.Value(UserAgentKey).(string); ok {
		return val
	}
	return ""
}

func GetUserID(ctx context.Context) (uint, bool) {
	if val, ok := ctx.Value(UserIDKey).(uint); ok {
		return val, true
	}
	return 0, false
}

func GetUserEmail(ctx context.Context) string {
	if val, ok := ctx.Value(UserEmailKey).(string); ok {
		return val
	}
	return ""
}

func GetUserType(ctx context.Context) string {
	if val, ok := ctx.Value(UserTypeKey).(string); ok {
		return val
	}
	return ""
}

func GetModule(ctx context.Context) string {
	if val, ok := ctx.Value(ModuleKey).(string); ok {
		return val
	}
	return ""
}

func GetFunction(ctx context.Context) string {
	if val, ok := ctx.Value(FunctionKey).(string); ok {
		return val
	}
	return ""
}

func GetStartTime(ctx context.Context) time.Time {
	if val, ok := ctx.Value(StartTimeKey).(time.Time); ok {
		return val
	}
	return time.Time{}
}

// GetDuration calculates elapsed time from the recorded start time.
func GetDuration(ctx context.Context) time.Duration {
	startTime := GetStartTime(ctx)
	if !startTime.IsZero() {
		return time.Since(startTime)
	}
	return 0
}

// NewContext ensures the context carries a start time for duration tracking.
func NewContext(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if GetStartTime(ctx).IsZero() {
		ctx = context.WithValue(ctx, StartTimeKey, time.Now())
	}
	return ctx
}

// NewContextWithRequest annotates the context with request metadata and
// the current module/function for log correlation.
func NewContextWithRequest(ctx context.Context, r *http.Request, module, function string) context.Context {
	ctx = NewContext(ctx)
	ctx = context.WithValue(ctx, ModuleKey, module)
	ctx = context.WithValue(ctx, FunctionKey, function)
	if r != nil {
		if GetUserAgent(ctx) == "" {
			ctx = context.WithValue(ctx, UserAgentKey, r.UserAgent())
		}
		if GetClientIP(ctx) == "" {
			ctx = context.WithValue(ctx, ClientIPKey, r.RemoteAddr)
		}
	}
	return ctx
}
