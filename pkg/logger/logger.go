package logger

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/daycarehub/backend/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// coreLogger wraps the zap logger with level gating and an optional
// per-second log cap for noisy production paths.
type coreLogger struct {
	logger   *zap.Logger
	minLevel zapcore.Level
	limiter  *logLimiter
}

// logLimiter caps the number of log lines written per second.
type logLimiter struct {
	maxLogs   int
	current   int
	lastReset time.Time
	mu        sync.Mutex
}

func newLogLimiter(maxLogs int) *logLimiter {
	return &logLimiter{
		maxLogs:   maxLogs,
		lastReset: time.Now(),
	}
}

func (ll *logLimiter) allow() bool {
	ll.mu.Lock()
	defer ll.mu.Unlock()

	now := time.Now()
	if now.Sub(ll.lastReset) >= time.Second {
		ll.current = 0
		ll.lastReset = now
	}

	if ll.current >= ll.maxLogs {
		return false
	}

	ll.current++
	return true
}

func (cl *coreLogger) shouldLog(level zapcore.Level) bool {
	if level < cl.minLevel {
		return false
	}
	if cl.limiter != nil && !cl.limiter.allow() {
		return false
	}
	return true
}

var (
	core   *coreLogger
	coreMu sync.RWMutex
)

// Init initializes the global logger. Info and error output go to both
// files under LOGS_PATH and the process streams, mirroring how the
// service is run in containers.
func Init(cfg *config.Config) error {
	logsPath := getEnv("LOGS_PATH", "./logs")
	if err := os.MkdirAll(logsPath, 0755); err != nil {
		return err
	}

	var minLevel zapcore.Level
	var limiter *logLimiter
	switch cfg.App.Environment {
	case "production":
		minLevel = zapcore.InfoLevel
		limiter = newLogLimiter(1000)
	default:
		minLevel = zapcore.DebugLevel
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	infoFile, err := os.OpenFile(filepath.Join(logsPath, "info.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}

	errorFile, err := os.OpenFile(filepath.Join(logsPath, "error.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		infoFile.Close()
		return err
	}

	infoCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.NewMultiWriteSyncer(zapcore.AddSync(infoFile), zapcore.AddSync(os.Stdout)),
		minLevel,
	)

	errorCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.NewMultiWriteSyncer(zapcore.AddSync(errorFile), zapcore.AddSync(os.Stderr)),
		zapcore.ErrorLevel,
	)

	zapLogger := zap.New(
		zapcore.NewTee(infoCore, errorCore),
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)

	coreMu.Lock()
	core = &coreLogger{
		logger:   zapLogger,
		minLevel: minLevel,
		limiter:  limiter,
	}
	coreMu.Unlock()

	return nil
}

// getCore returns the initialized logger, falling back to a stderr
// development logger when Init has not been called (tests, tooling).
func getCore() *coreLogger {
	coreMu.RLock()
	c := core
	coreMu.RUnlock()
	if c != nil {
		return c
	}

	coreMu.Lock()
	defer coreMu.Unlock()
	if core == nil {
		zapLogger, _ := zap.NewDevelopment()
		core = &coreLogger{
			logger:   zapLogger,
			minLevel: zapcore.DebugLevel,
		}
	}
	return core
}

// GetLogger returns the underlying zap logger.
func GetLogger() *zap.Logger {
	return getCore().logger
}

// Sync flushes buffered log entries. Call before the process exits.
func Sync() {
	coreMu.RLock()
	defer coreMu.RUnlock()
	if core != nil {
		_ = core.logger.Sync()
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
