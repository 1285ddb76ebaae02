package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var Log *zap.Logger

// Config holds logger configuration
type Config struct {
	Level       string
	LogDir      string
	Environment string
	ServiceName string
}

// Initialize sets up the global logger. In development it logs colored
// console lines to stdout; otherwise it logs JSON to stdout and, when LogDir
// is set, to a size-rotated app.log in that directory.
func Initialize(cfg Config) error {
	level := zapcore.InfoLevel
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return fmt.Errorf("invalid log level %s: %w", cfg.Level, err)
	}

	var core zapcore.Core
	if cfg.Environment == "development" {
		encoderConfig := zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		core = zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig),
			zapcore.Lock(os.Stdout),
			level,
		)
	} else {
		encoderConfig := zap.NewProductionEncoderConfig()
		encoderConfig.TimeKey = "timestamp"
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

		sinks := []zapcore.WriteSyncer{zapcore.Lock(os.Stdout)}
		if cfg.LogDir != "" {
			if err := os.MkdirAll(cfg.LogDir, 0755); err != nil {
				return fmt.Errorf("failed to create log directory: %w", err)
			}
			sinks = append(sinks, zapcore.AddSync(&lumberjack.Logger{
				Filename:   filepath.Join(cfg.LogDir, "app.log"),
				MaxSize:    100, // megabytes
				MaxBackups: 5,
				MaxAge:     30, // days
				Compress:   true,
			}))
		}

		core = zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			zapcore.NewMultiWriteSyncer(sinks...),
			level,
		)
	}

	logger := zap.New(core,
		zap.AddCaller(),
		zap.AddCallerSkip(1),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
	if cfg.ServiceName != "" {
		logger = logger.With(zap.String("service", cfg.ServiceName))
	}

	Log = logger
	return nil
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	Log.Info(msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	Log.Debug(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	Log.Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	Log.Error(msg, fields...)
}

// Fatal logs a fatal message and exits
func Fatal(msg string, fields ...zap.Field) {
	Log.Fatal(msg, fields...)
}

// With creates a child logger with additional fields
func With(fields ...zap.Field) *zap.Logger {
	return Log.With(fields...)
}

// Sync flushes any buffered log entries
func Sync() {
	_ = Log.Sync()
}

// LogHTTPRequest logs an HTTP request with standard fields
func LogHTTPRequest(method, path string, statusCode int, duration float64, fields ...zap.Field) {
	baseFields := []zap.Field{
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", statusCode),
		zap.Float64("duration", duration),
	}
	baseFields = append(baseFields, fields...)

	if statusCode >= 500 {
		Error("HTTP request failed", baseFields...)
	} else if statusCode >= 400 {
		Warn("HTTP request client error", baseFields...)
	} else {
		Info("HTTP request", baseFields...)
	}
}

// LogAPICall logs a call to an external collaborator (the database)
func LogAPICall(service, operation, status string, duration float64, fields ...zap.Field) {
	baseFields := []zap.Field{
		zap.String("service", service),
		zap.String("operation", operation),
		zap.String("status", status),
		zap.Float64("duration", duration),
	}
	baseFields = append(baseFields, fields...)

	if status == "error" {
		Error("API call failed", baseFields...)
	} else {
		Info("API call", baseFields...)
	}
}
