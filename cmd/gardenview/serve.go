package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fentz26/gardenview/internal/mcp"
	"github.com/fentz26/gardenview/internal/server"
	"github.com/spf13/cobra"
)

var (
	listenAddr string
	baseURL    string
	serveMCP   bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP garden viewer",
	Long: `Starts the web viewer. Pages read the garden and the viewport state from the
request URL; the server keeps no state between requests.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "listen", "", "Listen address (overrides config)")
	serveCmd.Flags().StringVar(&baseURL, "base-url", "", "Viewer address used in created links (overrides config)")
	serveCmd.Flags().BoolVar(&serveMCP, "mcp", true, "Serve MCP over streamable HTTP at /mcp")
}

func runServe(cmd *cobra.Command, args []string) error {
	if listenAddr != "" {
		cfg.Listen = listenAddr
	}
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	dec := newDecoder()
	opts := server.Options{
		Addr:           cfg.Listen,
		BaseURL:        cfg.BaseURL,
		Decoder:        dec,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Logger:         logger,
		Version:        Version,
	}
	if serveMCP {
		opts.MCP = mcp.NewServer(mcp.Options{
			Decoder: dec,
			BaseURL: cfg.BaseURL,
			Logger:  logger.With("component", "mcp"),
		}).HTTPHandler()
	}
	srv := server.NewServer(opts)

	// Set up signal handling for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	// Channel to receive server errors
	serverErr := make(chan error, 1)

	go func() {
		err := srv.Start()
		if err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case sig := <-sigCh:
		logger.Info("received signal, shutting down", "signal", sig.String())
	case err := <-serverErr:
		if err != nil {
			logger.Error("server error", "error", err)
			return err
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
	return nil
}
