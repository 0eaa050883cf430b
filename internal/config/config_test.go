package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solana-wallet-server-go/internal/keys"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := writeFile(t, "wallet-server.yaml", "# nothing set\n")

	cfg, err := LoadConfig(path, "")
	require.NoError(t, err)

	assert.Equal(t, DefaultListenAddr, cfg.Server.ListenAddr)
	assert.Equal(t, DefaultReadTimeout, cfg.Server.ReadTimeout)
	assert.Equal(t, DefaultShutdownTimeout, cfg.Server.ShutdownTimeout)
	assert.EqualValues(t, DefaultMaxBodyBytes, cfg.Server.MaxBodyBytes)
	assert.Equal(t, DefaultLogLevel, cfg.Logging.Level)
	assert.Equal(t, DefaultLogFormat, cfg.Logging.Format)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, DefaultMetricsPath, cfg.Metrics.Path)
	assert.Equal(t, DefaultDerivationPath, cfg.Keys.DerivationPath)
	assert.Equal(t, keys.DefaultDerivationPath, cfg.Keys.DerivationPath)
	assert.Equal(t, DefaultMnemonicEntropyBits, cfg.Keys.MnemonicEntropyBits)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	path := writeFile(t, "wallet-server.yaml", `
server:
  listen_addr: "127.0.0.1:8080"
  read_timeout: 3s
  max_body_bytes: 2048
logging:
  level: debug
  format: json
  log_file_path: "${WALLET_TEST_LOG_DIR:-/var/log}/wallet.log"
metrics:
  enabled: false
keys:
  mnemonic_entropy_bits: 256
`)

	t.Setenv("WALLETD_SERVER_LISTEN_ADDR", "127.0.0.1:9090")
	t.Setenv("WALLET_TEST_LOG_DIR", "/tmp/wallet")

	cfg, err := LoadConfig(path, "")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.Server.ListenAddr)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, DefaultWriteTimeout, cfg.Server.WriteTimeout)
	assert.EqualValues(t, 2048, cfg.Server.MaxBodyBytes)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "/tmp/wallet/wallet.log", cfg.Logging.LogFilePath)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, 256, cfg.Keys.MnemonicEntropyBits)
}

func TestLoadConfig_Invalid(t *testing.T) {
	for name, body := range map[string]string{
		"log level":    "logging:\n  level: loud\n",
		"log format":   "logging:\n  format: xml\n",
		"entropy":      "keys:\n  mnemonic_entropy_bits: 100\n",
		"body limit":   "server:\n  max_body_bytes: 0\n",
		"timeout":      "server:\n  idle_timeout: 0s\n",
		"metrics path": "metrics:\n  path: metrics\n",
		"listen":       "server:\n  listen_addr: \"\"\n",
		"broken yaml":  "server: [\n",
		"path":         "keys:\n  derivation_path: \"m/44'/501'/2147483648'/0'\"\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeFile(t, "wallet-server.yaml", body), "")
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"), "")
	assert.Error(t, err)
}

func TestLoadEnvFile(t *testing.T) {
	const key = "WALLETD_TEST_ENV_FILE_VALUE"
	const kept = "WALLETD_TEST_ENV_FILE_KEPT"
	t.Cleanup(func() { os.Unsetenv(key) })
	t.Setenv(kept, "from-env")

	path := writeFile(t, ".env", "# comment\n\nexport "+key+"=\"quoted value\"\n"+kept+"=from-file\nnot a pair\n")
	require.NoError(t, loadEnvFile(path))

	assert.Equal(t, "quoted value", os.Getenv(key))
	assert.Equal(t, "from-env", os.Getenv(kept))

	assert.Error(t, loadEnvFile(filepath.Join(t.TempDir(), "missing.env")))
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("WALLET_TEST_HOST", "example.org")

	for in, want := range map[string]string{
		"plain":                          "plain",
		"${WALLET_TEST_HOST}":            "example.org",
		"${WALLET_TEST_UNSET:-fallback}": "fallback",
		"${WALLET_TEST_UNSET}":           "",
		"${unterminated":                 "${unterminated",

		"${WALLET_TEST_HOST:-x}:${WALLET_TEST_UNSET:-3000}": "example.org:3000",
	} {
		assert.Equal(t, want, expandEnvVars(in), "input %q", in)
	}
}

func TestGetConfigFromEnv(t *testing.T) {
	t.Setenv("WALLETD_SERVER_LISTEN_ADDR", ":4000")
	t.Setenv("WALLETD_SERVER_READ_TIMEOUT", "2s")
	t.Setenv("WALLETD_METRICS_ENABLED", "false")
	t.Setenv("WALLETD_KEYS_MNEMONIC_ENTROPY_BITS", "not-a-number")

	cfg := GetConfigFromEnv(filepath.Join(t.TempDir(), "none.env"))
	assert.Equal(t, ":4000", cfg.Server.ListenAddr)
	assert.Equal(t, 2*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, DefaultIdleTimeout, cfg.Server.IdleTimeout)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, DefaultMnemonicEntropyBits, cfg.Keys.MnemonicEntropyBits)
	assert.NoError(t, validateConfig(cfg))
}
