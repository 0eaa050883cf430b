package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"solana-wallet-server-go/internal/keys"
)

// Config represents the application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
	Keys    KeysConfig    `mapstructure:"keys" yaml:"keys"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	ListenAddr      string        `mapstructure:"listen_addr" yaml:"listen_addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout" yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes" yaml:"max_body_bytes"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	LogToFile   bool   `mapstructure:"log_to_file" yaml:"log_to_file"`
	LogFilePath string `mapstructure:"log_file_path" yaml:"log_file_path"`
}

// MetricsConfig contains Prometheus settings
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" yaml:"path"`
}

// KeysConfig contains mnemonic/derivation settings
type KeysConfig struct {
	DerivationPath      string `mapstructure:"derivation_path" yaml:"derivation_path"`
	MnemonicEntropyBits int    `mapstructure:"mnemonic_entropy_bits" yaml:"mnemonic_entropy_bits"`
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string, envPath string) (*Config, error) {
	if err := loadEnvFile(envPath); err != nil {
		logrus.WithError(err).Debug("No .env file loaded")
	}

	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("wallet-server")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.wallet-server")
		v.AddConfigPath("/etc/wallet-server/")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvVariables(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		logrus.Debug("Config file not found, using environment variables and defaults")
	} else {
		logrus.WithField("file", v.ConfigFileUsed()).Debug("Using config file")
	}

	processEnvSubstitution(v)

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// loadEnvFile loads environment variables from .env file.
// Variables already present in the environment win.
func loadEnvFile(envPath string) error {
	var envFiles []string
	if envPath != "" {
		envFiles = append(envFiles, envPath)
	}
	envFiles = append(envFiles, ".env", "configs/.env")

	var envFile string
	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			envFile = file
			break
		}
	}

	if envFile == "" {
		if envPath != "" {
			return fmt.Errorf("specified .env file not found: %s", envPath)
		}
		return fmt.Errorf(".env file not found in any of the expected locations: %v", envFiles)
	}

	file, err := os.Open(envFile)
	if err != nil {
		return fmt.Errorf("failed to open .env file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	loaded := 0

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		if len(value) >= 2 {
			if (strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"")) ||
				(strings.HasPrefix(value, "'") && strings.HasSuffix(value, "'")) {
				value = value[1 : len(value)-1]
			}
		}

		if _, exists := os.LookupEnv(key); exists {
			continue
		}
		if err := os.Setenv(key, value); err == nil {
			loaded++
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading .env file: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"file":   envFile,
		"loaded": loaded,
	}).Debug("Loaded .env file")
	return nil
}

// bindEnvVariables binds every defaulted key so Unmarshal sees env overrides
func bindEnvVariables(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		_ = v.BindEnv(key)
	}
}

// processEnvSubstitution processes ${VAR:-default} substitution in config values
func processEnvSubstitution(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		value, ok := v.Get(key).(string)
		if !ok || !strings.Contains(value, "${") {
			continue
		}
		v.Set(key, expandEnvVars(value))
	}
}

// expandEnvVars expands environment variables in the format ${VAR:-default}
func expandEnvVars(value string) string {
	if !strings.Contains(value, "${") {
		return value
	}

	result := value
	for {
		start := strings.Index(result, "${")
		if start == -1 {
			break
		}

		end := strings.Index(result[start:], "}")
		if end == -1 {
			break
		}
		end += start

		expr := result[start+2 : end]

		varName, defaultValue, _ := strings.Cut(expr, ":-")

		envValue := os.Getenv(varName)
		if envValue == "" {
			envValue = defaultValue
		}

		result = result[:start] + envValue + result[end+1:]
	}

	return result
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.listen_addr", DefaultListenAddr)
	v.SetDefault("server.read_timeout", DefaultReadTimeout)
	v.SetDefault("server.write_timeout", DefaultWriteTimeout)
	v.SetDefault("server.idle_timeout", DefaultIdleTimeout)
	v.SetDefault("server.shutdown_timeout", DefaultShutdownTimeout)
	v.SetDefault("server.max_body_bytes", DefaultMaxBodyBytes)

	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)
	v.SetDefault("logging.log_to_file", false)
	v.SetDefault("logging.log_file_path", DefaultLogFilePath)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", DefaultMetricsPath)

	v.SetDefault("keys.derivation_path", DefaultDerivationPath)
	v.SetDefault("keys.mnemonic_entropy_bits", DefaultMnemonicEntropyBits)
}

// validateConfig validates the configuration
func validateConfig(config *Config) error {
	if config.Server.ListenAddr == "" {
		return fmt.Errorf("server.listen_addr is required")
	}
	if config.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server.max_body_bytes must be positive, got %d", config.Server.MaxBodyBytes)
	}
	for name, d := range map[string]time.Duration{
		"read_timeout":     config.Server.ReadTimeout,
		"write_timeout":    config.Server.WriteTimeout,
		"idle_timeout":     config.Server.IdleTimeout,
		"shutdown_timeout": config.Server.ShutdownTimeout,
	} {
		if d <= 0 {
			return fmt.Errorf("server.%s must be positive, got %s", name, d)
		}
	}

	if _, err := logrus.ParseLevel(config.Logging.Level); err != nil {
		return fmt.Errorf("invalid logging.level: %w", err)
	}
	switch strings.ToLower(config.Logging.Format) {
	case "json", "text", "console":
	default:
		return fmt.Errorf("invalid logging.format %q (json, text or console)", config.Logging.Format)
	}

	if config.Metrics.Enabled && !strings.HasPrefix(config.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with '/', got %q", config.Metrics.Path)
	}

	bits := config.Keys.MnemonicEntropyBits
	if bits < 128 || bits > 256 || bits%32 != 0 {
		return fmt.Errorf("keys.mnemonic_entropy_bits must be 128..256 in steps of 32, got %d", bits)
	}
	// empty selects the legacy seed-only derivation
	if path := config.Keys.DerivationPath; path != "" {
		if err := keys.ValidateDerivationPath(path); err != nil {
			return fmt.Errorf("invalid keys.derivation_path: %w", err)
		}
	}

	return nil
}

// GetConfigFromEnv loads configuration from environment variables only
func GetConfigFromEnv(envPath string) *Config {
	if err := loadEnvFile(envPath); err != nil {
		logrus.WithError(err).Debug("No .env file loaded")
	}

	return &Config{
		Server: ServerConfig{
			ListenAddr:      getEnvString("WALLETD_SERVER_LISTEN_ADDR", DefaultListenAddr),
			ReadTimeout:     getEnvDuration("WALLETD_SERVER_READ_TIMEOUT", DefaultReadTimeout),
			WriteTimeout:    getEnvDuration("WALLETD_SERVER_WRITE_TIMEOUT", DefaultWriteTimeout),
			IdleTimeout:     getEnvDuration("WALLETD_SERVER_IDLE_TIMEOUT", DefaultIdleTimeout),
			ShutdownTimeout: getEnvDuration("WALLETD_SERVER_SHUTDOWN_TIMEOUT", DefaultShutdownTimeout),
			MaxBodyBytes:    getEnvInt64("WALLETD_SERVER_MAX_BODY_BYTES", DefaultMaxBodyBytes),
		},
		Logging: LoggingConfig{
			Level:       getEnvString("WALLETD_LOGGING_LEVEL", DefaultLogLevel),
			Format:      getEnvString("WALLETD_LOGGING_FORMAT", DefaultLogFormat),
			LogToFile:   getEnvBool("WALLETD_LOGGING_LOG_TO_FILE", false),
			LogFilePath: getEnvString("WALLETD_LOGGING_LOG_FILE_PATH", DefaultLogFilePath),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvBool("WALLETD_METRICS_ENABLED", true),
			Path:    getEnvString("WALLETD_METRICS_PATH", DefaultMetricsPath),
		},
		Keys: KeysConfig{
			DerivationPath:      getEnvString("WALLETD_KEYS_DERIVATION_PATH", DefaultDerivationPath),
			MnemonicEntropyBits: getEnvInt("WALLETD_KEYS_MNEMONIC_ENTROPY_BITS", DefaultMnemonicEntropyBits),
		},
	}
}

// Helper functions for environment variables
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}
