package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fentz26/gardenview/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the gardenview MCP tools over stdio",
	Long: `Runs a Model Context Protocol server on stdin/stdout so planning agents can
create, read and check garden viewer links. Logs go to stderr.`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := mcp.NewServer(mcp.Options{
		Decoder: newDecoder(),
		BaseURL: cfg.BaseURL,
		Logger:  logger.With("component", "mcp"),
	})

	logger.Info("serving MCP over stdio", "server", mcp.ServerName, "version", mcp.ServerVersion)
	if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
