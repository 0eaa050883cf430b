package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"solana-wallet-server-go/internal/api"
	"solana-wallet-server-go/internal/config"
	"solana-wallet-server-go/internal/keys"
	"solana-wallet-server-go/internal/logger"
	"solana-wallet-server-go/internal/metrics"
)

// CLI flags
var (
	configFile = flag.String("config", "", "Path to config file")
	envFile    = flag.String("env", "", "Path to .env file")
	listenAddr = flag.String("listen", "", "Listen address (host:port)")
	logLevel   = flag.String("log-level", "", "Log level (debug/info/warn/error)")
)

// App owns the HTTP server and its collaborators.
type App struct {
	config  *config.Config
	logger  *logger.Logger
	metrics *metrics.Metrics
	server  *http.Server
}

func main() {
	flag.Parse()

	cfg := loadConfigurationWithOverrides()
	log := initializeLogger(cfg)
	defer log.Close()

	app := NewApp(cfg, log)
	if err := app.Start(); err != nil {
		log.WithError(err).Fatal("Wallet server stopped with error")
	}
}

func loadConfigurationWithOverrides() *config.Config {
	cfg, err := config.LoadConfig(*configFile, *envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to load YAML config (%v), using environment variables only\n", err)
		cfg = config.GetConfigFromEnv(*envFile)
	}

	if *listenAddr != "" {
		cfg.Server.ListenAddr = *listenAddr
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	return cfg
}

func initializeLogger(cfg *config.Config) *logger.Logger {
	log, err := logger.NewLogger(logger.LogConfig{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		LogToFile:   cfg.Logging.LogToFile,
		LogFilePath: cfg.Logging.LogFilePath,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	return log
}

// NewApp builds the key service, metrics and router from cfg.
func NewApp(cfg *config.Config, log *logger.Logger) *App {
	var m *metrics.Metrics
	metricsPath := ""
	if cfg.Metrics.Enabled {
		m = metrics.New()
		metricsPath = cfg.Metrics.Path
	}

	srv := api.NewServer(keys.NewService(nil), log, m, api.Options{
		Version:             config.Version,
		MaxBodyBytes:        cfg.Server.MaxBodyBytes,
		DerivationPath:      cfg.Keys.DerivationPath,
		MnemonicEntropyBits: cfg.Keys.MnemonicEntropyBits,
		MetricsPath:         metricsPath,
	})

	return &App{
		config:  cfg,
		logger:  log,
		metrics: m,
		server: &http.Server{
			Addr:         cfg.Server.ListenAddr,
			Handler:      srv.Handler(),
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		},
	}
}

// Start serves until SIGINT/SIGTERM or a listener failure.
func (a *App) Start() error {
	a.logger.LogStartup(config.Version, a.config.Server.ListenAddr)

	errChan := make(chan error, 1)
	go func() {
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case sig := <-sigChan:
		a.logger.LogShutdown(sig.String())
		return a.shutdown()
	case err := <-errChan:
		if err != nil {
			a.logger.LogShutdown("listener error")
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	}
}

func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	a.logger.Info("✅ Shutdown complete")
	return nil
}
