package main

import (
	"fmt"

	"github.com/fentz26/gardenview/internal/store"
	"github.com/fentz26/gardenview/internal/tui"
	"github.com/spf13/cobra"
)

var viewCmd = &cobra.Command{
	Use:   "view [link|payload]",
	Short: "Open a garden link in the terminal viewer",
	Long: `Opens the interactive viewer. Without an argument, or with a link that does
not decode, the viewer starts on a screen where a link can be pasted.`,
	Args:        cobra.MaximumNArgs(1),
	Annotations: map[string]string{tuiAnnotation: "true"},
	RunE:        runView,
}

func runView(cmd *cobra.Command, args []string) error {
	link := ""
	if len(args) == 1 {
		l, err := readLinkArg(cmd, args[0])
		if err != nil {
			return err
		}
		link = l
	}
	return openViewer(link)
}

// openViewer runs the TUI. History problems are logged and never block
// viewing.
func openViewer(link string) error {
	opts := tui.Options{
		Decoder: newDecoder(),
		Logger:  logger,
	}
	if cfg.History.Enabled {
		st, err := store.New(cfg.History.Path)
		if err != nil {
			logger.Warn("history unavailable", "path", cfg.History.Path, "error", err)
		} else {
			defer st.Close()
			opts.Recorder = st
		}
	}

	app := tui.New(link, opts)
	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
