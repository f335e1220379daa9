package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap.Logger with sanitization-pipeline-specific helpers.
type Logger struct {
	*zap.Logger
	allowDebugPII bool
}

// Config contains logger configuration.
type Config struct {
	Level         string
	Format        string // json or console
	File          *FileConfig
	AllowDebugPII bool
}

// FileConfig contains file logging configuration.
type FileConfig struct {
	Enabled  bool
	Path     string
	MaxSize  int
	MaxAge   int
	Compress bool
}

// New creates a new logger instance.
func New(config Config) (*Logger, error) {
	level, err := zapcore.ParseLevel(config.Level)
	if err != nil {
		return nil, err
	}

	var encoderConfig zapcore.EncoderConfig
	if config.Format == "console" {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		encoderConfig = zap.NewProductionEncoderConfig()
		encoderConfig.TimeKey = "timestamp"
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	var encoder zapcore.Encoder
	if config.Format == "console" {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	var cores []zapcore.Core

	consoleCore := zapcore.NewCore(
		encoder,
		zapcore.AddSync(os.Stderr),
		level,
	)
	cores = append(cores, consoleCore)

	if config.File != nil && config.File.Enabled {
		file, err := os.OpenFile(config.File.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, err
		}

		fileCore := zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(file),
			level,
		)
		cores = append(cores, fileCore)
	}

	core := zapcore.NewTee(cores...)
	zl := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))

	allowPII := config.AllowDebugPII || os.Getenv("QUIETLINE_ALLOW_DEBUG_PII") == "1"

	return &Logger{Logger: zl, allowDebugPII: allowPII}, nil
}

// WithComponent adds a component name to the logger context.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{Logger: l.Logger.With(zap.String("component", component)), allowDebugPII: l.allowDebugPII}
}

// LogRedaction logs a single redaction event. The original and sanitized
// text fields are only attached at debug level, and only when debug PII
// logging has been explicitly enabled; otherwise the event carries just
// the rule name and byte offsets.
func (l *Logger) LogRedaction(ruleName string, start, end int, original, sanitized string) {
	fields := []zap.Field{
		zap.String("rule_name", ruleName),
		zap.Int("start", start),
		zap.Int("end", end),
	}
	if l.allowDebugPII {
		fields = append(fields,
			zap.String("original", original),
			zap.String("sanitized", sanitized),
		)
		l.Debug("redaction applied", fields...)
		return
	}
	l.Debug("redaction applied", fields...)
}

// LogRunSummary logs the outcome of a complete sanitization run.
func (l *Logger) LogRunSummary(ruleCount, matchCount int, duration int64) {
	l.Info("sanitization run complete",
		zap.Int("active_rules", ruleCount),
		zap.Int("matches", matchCount),
		zap.Int64("duration_ms", duration),
	)
}
