package main

import (
	"fmt"
	"runtime"

	"github.com/fentz26/gardenview/internal/mcp"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of gardenview",
	Run:   runVersion,
}

func runVersion(cmd *cobra.Command, args []string) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "gardenview version %s\n", Version)
	fmt.Fprintf(out, "  MCP server: %s %s\n", mcp.ServerName, mcp.ServerVersion)
	fmt.Fprintf(out, "  OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(out, "  Go version: %s\n", runtime.Version())
}
