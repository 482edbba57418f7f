package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"fs-inspect-server/internal/config"
	"fs-inspect-server/internal/filesystem"
	"fs-inspect-server/internal/inspect"
	"fs-inspect-server/internal/lock"
	"fs-inspect-server/internal/transport"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(opts *rootOptions) *cobra.Command {
	var (
		transportName string
		port          int
		maxFileSizeMB int
		sharedLocks   bool
		lockTimeout   int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the inspection operations over stdio JSON-RPC or HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("transport") {
				cfg.Transport = transportName
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			if cmd.Flags().Changed("max-file-size") {
				cfg.MaxFileSizeMB = maxFileSizeMB
			}
			if cmd.Flags().Changed("shared-locks") {
				cfg.SharedLocks = sharedLocks
			}
			if cmd.Flags().Changed("lock-timeout") {
				cfg.LockTimeoutSec = lockTimeout
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			setupLogger(cfg.LogLevel)
			return runServe(cfg)
		},
	}

	cmd.Flags().StringVar(&transportName, "transport", "stdio", "transport protocol (stdio or http)")
	cmd.Flags().IntVar(&port, "port", 8080, "port for the HTTP transport")
	cmd.Flags().IntVar(&maxFileSizeMB, "max-file-size", 10, "maximum file size in MB (0 disables the cap)")
	cmd.Flags().BoolVar(&sharedLocks, "shared-locks", false, "take advisory shared locks on files while reading")
	cmd.Flags().IntVar(&lockTimeout, "lock-timeout", 5, "shared lock acquisition timeout in seconds")
	return cmd
}

func runServe(cfg *config.Config) error {
	logger := slog.Default()
	logger.Info("effective configuration",
		"root", cfg.Root,
		"transport", cfg.Transport,
		"port", cfg.Port,
		"max_file_size_mb", cfg.MaxFileSizeMB,
		"shared_locks", cfg.SharedLocks)

	inspector, err := buildInspector(cfg)
	if err != nil {
		return err
	}

	if cfg.Transport == "stdio" {
		handler := transport.NewStdioHandler(inspector, logger)
		return handler.Start(os.Stdin, os.Stdout)
	}

	handler := transport.NewHTTPHandler(inspector, logger)

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- handler.StartServer(cfg.Port)
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-shutdown:
		logger.Info("shutdown signal received", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := handler.Shutdown(ctx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
			return err
		}
		<-serverDone
		logger.Info("server stopped")
		return nil
	case err := <-serverDone:
		return err
	}
}

func buildInspector(cfg *config.Config) (*inspect.Inspector, error) {
	fsAdapter := filesystem.NewDefaultFileSystemAdapter()
	var locks lock.SharedLockManager
	if cfg.SharedLocks {
		locks = lock.NewFlockManager()
	}
	return inspect.New(fsAdapter, locks, cfg)
}
