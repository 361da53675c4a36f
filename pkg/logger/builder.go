package logger

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogBuilder accumulates fields for a single log entry. Field methods
// are no-ops once the entry has been filtered out by level or rate
// limiting, so chained calls stay cheap on suppressed entries.
type LogBuilder struct {
	core      *coreLogger
	level     zapcore.Level
	fields    []zap.Field
	message   string
	shouldLog bool
}

func newBuilder(c *coreLogger, level zapcore.Level, message string) *LogBuilder {
	return &LogBuilder{
		core:      c,
		level:     level,
		fields:    make([]zap.Field, 0, 8),
		message:   message,
		shouldLog: c.shouldLog(level),
	}
}

// Info starts an info-level log entry.
func Info(message string) *LogBuilder {
	return newBuilder(getCore(), zapcore.InfoLevel, message)
}

// Warn starts a warn-level log entry.
func Warn(message string) *LogBuilder {
	return newBuilder(getCore(), zapcore.WarnLevel, message)
}

// Error starts an error-level log entry.
func Error(message string) *LogBuilder {
	return newBuilder(getCore(), zapcore.ErrorLevel, message)
}

// Debug starts a debug-level log entry.
func Debug(message string) *LogBuilder {
	return newBuilder(getCore(), zapcore.DebugLevel, message)
}

func (lb *LogBuilder) String(key, value string) *LogBuilder {
	if lb.shouldLog {
		lb.fields = append(lb.fields, zap.String(key, value))
	}
	return lb
}

func (lb *LogBuilder) Int(key string, value int) *LogBuilder {
	if lb.shouldLog {
		lb.fields = append(lb.fields, zap.Int(key, value))
	}
	return lb
}

func (lb *LogBuilder) Int64(key string, value int64) *LogBuilder {
	if lb.shouldLog {
		lb.fields = append(lb.fields, zap.Int64(key, value))
	}
	return lb
}

func (lb *LogBuilder) Uint(key string, value uint) *LogBuilder {
	if lb.shouldLog {
		lb.fields = append(lb.fields, zap.Uint(key, value))
	}
	return lb
}

func (lb *LogBuilder) Bool(key string, value bool) *LogBuilder {
	if lb.shouldLog {
		lb.fields = append(lb.fields, zap.Bool(key, value))
	}
	return lb
}

func (lb *LogBuilder) Float64(key string, value float64) *LogBuilder {
	if lb.shouldLog {
		lb.fields = append(lb.fields, zap.Float64(key, value))
	}
	return lb
}

func (lb *LogBuilder) Duration(value time.Duration) *LogBuilder {
	if lb.shouldLog {
		lb.fields = append(lb.fields, zap.Duration("duration", value))
	}
	return lb
}

func (lb *LogBuilder) Err(err error) *LogBuilder {
	if lb.shouldLog && err != nil {
		lb.fields = append(lb.fields, zap.Error(err))
	}
	return lb
}

func (lb *LogBuilder) Any(key string, value interface{}) *LogBuilder {
	if lb.shouldLog {
		lb.fields = append(lb.fields, zap.Any(key, value))
	}
	return lb
}

func (lb *LogBuilder) Module(module string) *LogBuilder {
	if lb.shouldLog {
		lb.fields = append(lb.fields, zap.String("module", module))
	}
	return lb
}

func (lb *LogBuilder) Function(function string) *LogBuilder {
	if lb.shouldLog {
		lb.fields = append(lb.fields, zap.String("function", function))
	}
	return lb
}

func (lb *LogBuilder) Method(method string) *LogBuilder {
	if lb.shouldLog {
		lb.fields = append(lb.fields, zap.String("method", method))
	}
	return lb
}

func (lb *LogBuilder) Path(path string) *LogBuilder {
	if lb.shouldLog {
		lb.fields = append(lb.fields, zap.String("path", path))
	}
	return lb
}

func (lb *LogBuilder) StatusCode(code int) *LogBuilder {
	if lb.shouldLog {
		lb.fields = append(lb.fields, zap.Int("status_code", code))
	}
	return lb
}

func (lb *LogBuilder) UserID(id uint) *LogBuilder {
	if lb.shouldLog {
		lb.fields = append(lb.fields, zap.Uint("user_id", id))
	}
	return lb
}

func (lb *LogBuilder) ClientIP(ip string) *LogBuilder {
	if lb.shouldLog {
		lb.fields = append(lb.fields, zap.String("client_ip", ip))
	}
	return lb
}

// Log writes the accumulated entry.
func (lb *LogBuilder) Log() {
	if !lb.shouldLog {
		return
	}

	switch lb.level {
	case zapcore.DebugLevel:
		lb.core.logger.Debug(lb.message, lb.fields...)
	case zapcore.InfoLevel:
		lb.core.logger.Info(lb.message, lb.fields...)
	case zapcore.WarnLevel:
		lb.core.logger.Warn(lb.message, lb.fields...)
	case zapcore.ErrorLevel:
		lb.core.logger.Error(lb.message, lb.fields...)
	}
}
