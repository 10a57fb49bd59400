package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/philipparndt/takeoff/pkg/tools"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the measurement tools over HTTP",
	Long: `Start an HTTP server exposing the tool registry:

  GET  /health
  GET  /tools
  POST /tools/{name}   JSON arguments in the body`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8080)")
}

func newRegistry() *tools.Registry {
	return tools.NewRegistry(tools.Options{
		Logger:             logger,
		Unit:               unit(),
		DominanceThreshold: cfg.DominanceThresholdPct,
		ParallelTolerance:  cfg.ParallelToleranceDeg,
		BaseDir:            cfg.ToolsBaseDir,
	})
}

func runServe(cmd *cobra.Command, _ []string) error {
	addr := cfg.HTTPAddr
	if serveAddr != "" {
		addr = serveAddr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              addr,
		Handler:           newRegistry().Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
