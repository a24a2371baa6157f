package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sevlyar/go-daemon"
	"github.com/spf13/cobra"

	"chat-viewer/internal/devbackend"
	applog "chat-viewer/internal/log"
	"chat-viewer/internal/pkg/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("application run failed", "error", err)
		os.Exit(1)
	}
}

type options struct {
	configFile string
	seedFile   string
	daemonize  bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "devbackend",
		Short: "In-memory backend serving /procesar, /chats and /mensajes for local development",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&opts.configFile, "config", "", "path to the YAML config file (default config.yml)")
	cmd.Flags().StringVar(&opts.seedFile, "seed", "", "YAML file with chats to preload, overrides devbackend.seed_file")
	cmd.Flags().BoolVar(&opts.daemonize, "daemon", false, "detach from the terminal and write a PID file")
	return cmd
}

// run инкапсулирует всю логику инициализации и запуска dev-бэкенда.
func run(opts *options) error {
	// 1. Загрузка и валидация конфигурации
	cfg, err := config.LoadConfig(opts.configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.seedFile != "" {
		cfg.DevBackend.SeedFile = opts.seedFile
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	// 2. Отсоединение от терминала: родитель выходит, работу продолжает потомок
	if opts.daemonize {
		dctx := &daemon.Context{
			PidFileName: cfg.DevBackend.PIDFile,
			PidFilePerm: 0o644,
			LogFileName: cfg.DevBackend.LogFile,
			LogFilePerm: 0o640,
			WorkDir:     "./",
			Umask:       0o027,
		}
		child, err := dctx.Reborn()
		if err != nil {
			return fmt.Errorf("failed to daemonize: %w", err)
		}
		if child != nil {
			fmt.Printf("dev backend started in background, pid %d\n", child.Pid)
			return nil
		}
		defer dctx.Release()
	}

	// 3. Инициализация логгера
	logger := applog.New(os.Stdout, cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(logger)

	// 4. Инициализация хранилища
	store := devbackend.NewStore()
	if cfg.DevBackend.SeedFile != "" {
		n, err := devbackend.LoadSeed(cfg.DevBackend.SeedFile, store)
		if err != nil {
			return fmt.Errorf("failed to load seed: %w", err)
		}
		logger.Info("seed loaded", "file", cfg.DevBackend.SeedFile, "chats", n)
	}

	// 5. Запуск сервера и graceful shutdown
	srv := devbackend.New(cfg, store, logger)

	serverErr := make(chan error, 1)
	go func() {
		defer close(serverErr)
		logger.Info("Starting dev backend", "addr", cfg.Address())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err, ok := <-serverErr:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-quit:
	}

	logger.Info("Signal received, shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.DevBackend.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	<-serverErr
	logger.Info("Dev backend exited gracefully")
	return nil
}
