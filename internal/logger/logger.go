package logger

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/sirupsen/logrus"
)

// Logger represents the application logger
type Logger struct {
	*logrus.Logger
	config LogConfig
	file   *os.File
}

// LogConfig contains logger configuration
type LogConfig struct {
	Level       string
	Format      string // "json", "text" or anything else for the console format
	LogToFile   bool
	LogFilePath string
}

// NewLogger creates a new logger instance
func NewLogger(config LogConfig) (*Logger, error) {
	log := logrus.New()

	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %s: %w", config.Level, err)
	}
	log.SetLevel(level)

	log.SetOutput(os.Stdout)

	switch strings.ToLower(config.Format) {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	case "text":
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05.000",
			DisableQuote:    true,
		})
	default:
		log.SetFormatter(&CustomFormatter{})
	}

	l := &Logger{
		Logger: log,
		config: config,
	}

	// Optionally also log to file (in addition to stdout)
	if config.LogToFile && config.LogFilePath != "" {
		logDir := filepath.Dir(config.LogFilePath)
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory %s: %w", logDir, err)
		}

		file, err := os.OpenFile(config.LogFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", config.LogFilePath, err)
		}
		l.file = file
		log.SetOutput(io.MultiWriter(os.Stdout, file))
	}

	return l, nil
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	l.SetOutput(os.Stdout)
	return err
}

// CustomFormatter provides a clean, timestamped format for console output
type CustomFormatter struct {
	DisableColors bool
}

func (f *CustomFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	timestamp := entry.Time.Format("2006-01-02 15:04:05.000")
	level := strings.ToUpper(entry.Level.String())

	var levelColor string
	switch entry.Level {
	case logrus.DebugLevel, logrus.TraceLevel:
		levelColor = "\033[36m" // Cyan
	case logrus.InfoLevel:
		levelColor = "\033[32m" // Green
	case logrus.WarnLevel:
		levelColor = "\033[33m" // Yellow
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		levelColor = "\033[31m" // Red
	default:
		levelColor = "\033[0m" // Reset
	}
	resetColor := "\033[0m"
	if f.DisableColors {
		levelColor, resetColor = "", ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s%s%s] %s", timestamp, levelColor, level, resetColor, entry.Message)

	if len(entry.Data) > 0 {
		keys := make([]string, 0, len(entry.Data))
		for key := range entry.Data {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		b.WriteString(" |")
		for _, key := range keys {
			fmt.Fprintf(&b, " %s=%v", key, entry.Data[key])
		}
	}

	b.WriteByte('\n')
	return []byte(b.String()), nil
}

// LogStartup logs application startup information
func (l *Logger) LogStartup(version, listenAddr string) {
	l.WithFields(logrus.Fields{
		"event":       "startup",
		"version":     version,
		"listen_addr": listenAddr,
		"log_format":  l.config.Format,
	}).Info("🚀 Wallet server starting up")
}

// LogShutdown logs application shutdown information
func (l *Logger) LogShutdown(reason string) {
	l.WithFields(logrus.Fields{
		"event":  "shutdown",
		"reason": reason,
	}).Info("🛑 Wallet server shutting down")
}

// LogRequest logs a completed HTTP request. Bodies are never logged since
// they may carry secret keys.
func (l *Logger) LogRequest(requestID, method, path string, status int, duration time.Duration) {
	entry := l.WithFields(logrus.Fields{
		"event":       "request",
		"request_id":  requestID,
		"method":      method,
		"path":        path,
		"status":      status,
		"duration_ms": duration.Milliseconds(),
	})
	if status >= 400 {
		entry.Warn("Request failed")
		return
	}
	entry.Info("Request served")
}

// LogError logs general errors with context
func (l *Logger) LogError(component, operation string, err error, fields logrus.Fields) {
	logFields := logrus.Fields{
		"event":     "error",
		"component": component,
		"operation": operation,
	}

	for k, v := range fields {
		logFields[k] = v
	}

	l.WithFields(logFields).WithError(err).Error("💥 Component error")
}

// WithComponent returns a logger with component context
func (l *Logger) WithComponent(component string) *logrus.Entry {
	return l.WithField("component", component)
}

// WithRequest returns a logger with request context
func (l *Logger) WithRequest(requestID string) *logrus.Entry {
	return l.WithField("request_id", requestID)
}

// LogInstruction logs a built instruction at debug level.
func (l *Logger) LogInstruction(requestID, kind string, ix solana.Instruction) {
	if !l.IsLevelEnabled(logrus.DebugLevel) {
		return
	}

	accounts := make([]string, 0, len(ix.Accounts()))
	for i, acc := range ix.Accounts() {
		accounts = append(accounts, fmt.Sprintf("%d:%s(s=%v,w=%v)", i, acc.PublicKey, acc.IsSigner, acc.IsWritable))
	}

	fields := logrus.Fields{
		"event":      "instruction",
		"request_id": requestID,
		"kind":       kind,
		"program_id": ix.ProgramID().String(),
		"accounts":   strings.Join(accounts, " "),
	}
	if data, err := ix.Data(); err != nil {
		fields["data_error"] = err.Error()
	} else {
		fields["data"] = hex.EncodeToString(data)
	}

	l.WithFields(fields).Debug("Instruction built")
}
