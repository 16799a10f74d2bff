package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/toyinlola/pdfsentry/pkg/scan"
	"github.com/toyinlola/pdfsentry/pkg/server"
	"github.com/toyinlola/pdfsentry/pkg/tools"
)

const shutdownTimeout = 10 * time.Second

var listenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP upload server",
	Long: `Serve exposes scanning over HTTP:

  GET  /healthz    liveness probe
  POST /v1/scan    multipart field "file" or a raw PDF body; returns the report
  POST /v1/score   pdfid.py text body; returns the risk assessment`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "listen", "", "address to listen on (default: server.listen)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	if listenAddr != "" {
		cfg.Server.Listen = listenAddr
	}

	level := zerolog.InfoLevel
	if verbose || cfg.Output.Verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Str("component", "pdfsentry").Logger()

	maxUpload := cfg.Server.MaxUploadMB << 20
	scanner, err := newScanner(cfg, tools.NewExecRunner(), scan.WithMaxBytes(maxUpload))
	if err != nil {
		return fmt.Errorf("serve: %w", err)
	}

	auditLogger, err := openAudit(cfg)
	if err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	defer auditLogger.Close()

	srv := server.New(scanner, newCalculator(cfg), logger,
		server.WithAuditLogger(auditLogger),
		server.WithMaxUpload(maxUpload),
	)

	httpServer := &http.Server{
		Addr:              cfg.Server.Listen,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       2 * time.Minute,
		WriteTimeout:      server.DefaultScanTimeout + time.Minute,
		IdleTimeout:       2 * time.Minute,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info().
			Str("listen", cfg.Server.Listen).
			Int64("max_upload_mb", cfg.Server.MaxUploadMB).
			Str("audit_log", cfg.Audit.Path).
			Msg("starting pdfsentry server")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("serve: shutdown: %w", err)
	}
	logger.Info().Msg("server stopped")
	return nil
}
