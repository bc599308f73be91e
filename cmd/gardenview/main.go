package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fentz26/gardenview/internal/codec"
	"github.com/fentz26/gardenview/internal/config"
	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags.
var Version = "0.1.0-dev"

var rootCmd = &cobra.Command{
	Use:   "gardenview",
	Short: "gardenview - garden plan viewer",
	Long: `gardenview opens garden plans shared as viewer links. The whole plan travels
compressed in the link's data parameter; nothing is stored on a server.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
	// No RunE - defaults to showing help when no subcommand is provided
}

var (
	configPath string
	envFile    string
	logLevel   string
)

// Loaded once per invocation by setup.
var (
	cfg      *config.Config
	logger   *slog.Logger
	closeLog = func() error { return nil }
)

// tuiAnnotation marks commands that own the terminal, so they log to a file.
const tuiAnnotation = "tui"

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.gardenview/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Env file with GARDENVIEW_* overrides")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(tasksCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load(configPath, envFile)
	if err != nil {
		return err
	}
	if logLevel != "" {
		if _, err := config.ParseLevel(logLevel); err != nil {
			return err
		}
		c.Log.Level = logLevel
	}
	if cmd.Annotations[tuiAnnotation] == "true" && c.Log.File == "" {
		c.Log.File = filepath.Join(filepath.Dir(config.DefaultPath()), "gardenview.log")
	}

	l, closeFn, err := config.NewLogger(c.Log, os.Stderr)
	if err != nil {
		return err
	}
	cfg, logger, closeLog = c, l, closeFn
	return nil
}

func teardown(cmd *cobra.Command, args []string) error {
	return closeLog()
}

func newDecoder() *codec.Decoder {
	return codec.NewDecoder(cfg.MaxDecodedBytes)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
