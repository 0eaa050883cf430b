package config

import (
	"time"

	"solana-wallet-server-go/internal/keys"
)

// Version is reported by /health and the startup log.
const Version = "0.1.0"

// Environment variable prefix; config keys map to WALLETD_<SECTION>_<KEY>.
const EnvPrefix = "WALLETD"

// Server defaults
const (
	DefaultListenAddr      = "0.0.0.0:3000"
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 10 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 15 * time.Second

	// Request bodies are tiny JSON objects; 64 KiB leaves room for long messages.
	DefaultMaxBodyBytes = 64 << 10
)

// Logging defaults
const (
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "console"
	DefaultLogFilePath = "logs/wallet-server.log"
)

// Metrics defaults
const (
	DefaultMetricsPath = "/metrics"
)

// Key derivation defaults
const (
	DefaultDerivationPath      = keys.DefaultDerivationPath
	DefaultMnemonicEntropyBits = 128
)
