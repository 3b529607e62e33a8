package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"interactive-calculator/internal/calculator"
	"interactive-calculator/internal/config"
	"interactive-calculator/internal/observability"
	"interactive-calculator/internal/server"
)

// openFile opens the --input file. It can be overridden in tests.
var openFile = func(name string) (io.ReadCloser, error) {
	return os.Open(name)
}

func runCalculator(cmd *cobra.Command, opts options) error {
	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return err
	}

	if err := observability.InitLogger(cfg.LogLevel, cmd.ErrOrStderr()); err != nil {
		return err
	}
	defer observability.SyncLogger()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := observability.SetupTelemetry(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("setup telemetry: %w", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			observability.Logger.Warn("telemetry shutdown failed", zap.Error(err))
		}
	}()

	in, err := openInput(cmd, cfg.Input)
	if err != nil {
		return err
	}
	closeInput := sync.OnceValue(in.Close)
	defer func() {
		if err := closeInput(); err != nil {
			observability.Logger.Warn("closing input failed", zap.Error(err))
		}
	}()

	// A read blocked on the input only returns once the stream is closed.
	sessionDone := make(chan struct{})
	defer close(sessionDone)
	go func() {
		select {
		case <-ctx.Done():
			_ = closeInput()
		case <-sessionDone:
		}
	}()

	session, err := calculator.NewSession(in, cmd.OutOrStdout(), calculator.WithBanner(cfg.Banner))
	if err != nil {
		return err
	}

	if cfg.StatusAddr != "" {
		srv, err := server.Start(cfg.StatusAddr, server.NewRouter(session))
		if err != nil {
			return err
		}
		defer func() {
			if err := srv.Stop(context.Background()); err != nil {
				observability.Logger.Warn("status server shutdown failed", zap.Error(err))
			}
		}()
	}

	runErr := session.Run(ctx)

	status := session.Status()
	observability.Logger.Info("session ended",
		zap.String("session_id", status.SessionID),
		zap.Uint64("operation_count", status.OperationCount),
		zap.Float64("last_result", status.LastResult),
	)

	if errors.Is(runErr, context.Canceled) {
		observability.Logger.Info("session interrupted", zap.String("session_id", status.SessionID))
		return nil
	}
	return runErr
}

// resolveConfig layers explicitly set flags over the file and environment
// configuration.
func resolveConfig(cmd *cobra.Command, opts options) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = strings.ToLower(opts.logLevel)
	}
	if flags.Changed("banner") {
		cfg.Banner = opts.banner
	}
	if flags.Changed("telemetry") {
		cfg.Telemetry = opts.telemetry
	}
	if flags.Changed("status-addr") {
		cfg.StatusAddr = opts.statusAddr
	}
	if flags.Changed("input") {
		cfg.Input = opts.input
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// openInput returns the session's input stream. The caller owns closing it.
func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == "" {
		in := cmd.InOrStdin()
		if rc, ok := in.(io.ReadCloser); ok {
			return rc, nil
		}
		return io.NopCloser(in), nil
	}

	f, err := openFile(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	return f, nil
}
