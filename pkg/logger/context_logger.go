package logger

import (
	"context"

	ctxutil "github.com/daycarehub/backend/pkg/context"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newContextBuilder starts an entry that carries request correlation
// fields extracted from the context.
func newContextBuilder(ctx context.Context, level zapcore.Level, message string) *LogBuilder {
	lb := newBuilder(getCore(), level, message)
	if !lb.shouldLog || ctx == nil {
		return lb
	}

	if requestID := ctxutil.GetRequestID(ctx); requestID != "" {
		lb.fields = append(lb.fields, zap.String("request_id", requestID))
	}
	if clientIP := ctxutil.GetClientIP(ctx); clientIP != "" {
		lb.fields = append(lb.fields, zap.String("client_ip", clientIP))
	}
	if userAgent := ctxutil.GetUserAgent(ctx); userAgent != "" {
		lb.fields = append(lb.fields, zap.String("user_agent", userAgent))
	}
	if userID, ok := ctxutil.GetUserID(ctx); ok {
		lb.fields = append(lb.fields, zap.Uint("user_id", userID))
	}
	if module := ctxutil.GetModule(ctx); module != "" {
		lb.fields = append(lb.fields, zap.String("module", module))
	}
	if function := ctxutil.GetFunction(ctx); function != "" {
		lb.fields = append(lb.fields, zap.String("function", function))
	}
	if duration := ctxutil.GetDuration(ctx); duration > 0 {
		lb.fields = append(lb.fields, zap.Duration("elapsed", duration))
	}

	return lb
}

func InfoWithContext(ctx context.Context, message string) *LogBuilder {
	return newContextBuilder(ctx, zapcore.InfoLevel, message)
}

func WarnWithContext(ctx context.Context, message string) *LogBuilder {
	return newContextBuilder(ctx, zapcore.WarnLevel, message)
}

func ErrorWithContext(ctx context.Context, message string) *LogBuilder {
	return newContextBuilder(ctx, zapcore.ErrorLevel, message)
}

func DebugWithContext(ctx context.Context, message string) *LogBuilder {
	return newContextBuilder(ctx, zapcore.DebugLevel, message)
}
