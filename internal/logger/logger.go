// Package logger wraps zap with key/value redaction so credentials never
// reach a log file.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger struct {
	SugaredLogger *zap.SugaredLogger
}

// Options configures New.
type Options struct {
	// Level is a zap level name ("debug", "info", ...). Default "info".
	Level string
	// Path is the log file. Empty logs to stderr.
	Path string
	// JSON selects the production JSON encoder instead of the console one.
	JSON bool
}

func New(opts Options) (*Logger, error) {
	var cfg zap.Config
	if opts.JSON {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		cfg.Development = false
	}

	level := zapcore.InfoLevel
	if opts.Level != "" {
		l, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("parse log level %q: %w", opts.Level, err)
		}
		level = l
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.DisableStacktrace = true

	if opts.Path != "" {
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		cfg.OutputPaths = []string{opts.Path}
		cfg.ErrorOutputPaths = []string{opts.Path}
	} else {
		cfg.OutputPaths = []string{"stderr"}
		cfg.ErrorOutputPaths = []string{"stderr"}
	}

	zapLogger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{SugaredLogger: zapLogger.Sugar()}, nil
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// FromZap wraps an existing zap logger, e.g. one built on zaptest/observer.
func FromZap(z *zap.Logger) *Logger {
	return &Logger{SugaredLogger: z.Sugar()}
}

// DefaultPath returns $XDG_STATE_HOME/lkpd/lkpd.log, falling back to
// ~/.local/state/lkpd/lkpd.log.
func DefaultPath() (string, error) {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "lkpd", "lkpd.log"), nil
}

func (l *Logger) Sync() {
	_ = l.SugaredLogger.Sync()
}

func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.SugaredLogger.Debugw(msg, sanitizeKVs(keysAndValues)...)
}
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.SugaredLogger.Infow(msg, sanitizeKVs(keysAndValues)...)
}
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.SugaredLogger.Warnw(msg, sanitizeKVs(keysAndValues)...)
}
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.SugaredLogger.Errorw(msg, sanitizeKVs(keysAndValues)...)
}
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{SugaredLogger: l.SugaredLogger.With(sanitizeKVs(keysAndValues)...)}
}

func sanitizeKVs(kv []interface{}) []interface{} {
	if len(kv) == 0 {
		return kv
	}
	out := make([]interface{}, 0, len(kv))
	for i := 0; i < len(kv); i += 2 {
		if i == len(kv)-1 {
			out = append(out, kv[i])
			break
		}
		key := strings.TrimSpace(strings.ToLower(toString(kv[i])))
		out = append(out, toString(kv[i]), sanitizeValue(key, kv[i+1]))
	}
	return out
}

func sanitizeValue(key string, val interface{}) interface{} {
	if isRedactKey(key) {
		return "[REDACTED]"
	}
	switch v := val.(type) {
	case map[string]interface{}:
		return sanitizeMap(v)
	case string:
		return ScrubString(v)
	case error:
		return ScrubString(v.Error())
	default:
		return val
	}
}

func sanitizeMap(input map[string]interface{}) map[string]interface{} {
	if input == nil {
		return nil
	}
	out := make(map[string]interface{}, len(input))
	for k, v := range input {
		out[k] = sanitizeValue(strings.TrimSpace(strings.ToLower(k)), v)
	}
	return out
}

func isRedactKey(key string) bool {
	if key == "key" {
		return true
	}
	switch {
	case strings.Contains(key, "token") && !strings.Contains(key, "tokens"),
		strings.Contains(key, "authorization"),
		strings.Contains(key, "password"),
		strings.Contains(key, "secret"),
		strings.Contains(key, "api_key"),
		strings.Contains(key, "apikey"):
		return true
	default:
		return false
	}
}

var queryKey = regexp.MustCompile(`([?&](?:key|api_key)=)[^&\s"]+`)

// ScrubString masks credentials carried in URL query strings.
func ScrubString(s string) string {
	return queryKey.ReplaceAllString(s, "${1}[REDACTED]")
}

func toString(v interface{}) string {
	if v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
